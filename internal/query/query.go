// Package query accumulates SQL predicates and their bound arguments so
// statements with optional filters never interpolate values into SQL text.
package query

import (
	"strconv"
	"strings"
)

// Query collects positional arguments together with row-level (WHERE)
// and post-aggregation (HAVING) predicates. The zero value is ready to use.
type Query struct {
	args   []any
	where  []string
	having []string
}

// Arg binds v as the next positional parameter and returns its placeholder ($1, $2, ...).
func (q *Query) Arg(v any) string {
	q.args = append(q.args, v)
	return "$" + strconv.Itoa(len(q.args))
}

// Where records a row-level predicate.
func (q *Query) Where(cond string) {
	q.where = append(q.where, cond)
}

// Having records a predicate evaluated after grouping.
func (q *Query) Having(cond string) {
	q.having = append(q.having, cond)
}

// Args returns the bound arguments in placeholder order.
func (q *Query) Args() []any {
	return q.args
}

// WhereClause renders "WHERE (a) AND (b)", or "" when no predicate was recorded.
func (q *Query) WhereClause() string {
	return render("WHERE", q.where)
}

// HavingClause renders "HAVING (a) AND (b)", or "" when no predicate was recorded.
func (q *Query) HavingClause() string {
	return render("HAVING", q.having)
}

func render(keyword string, conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return keyword + " (" + strings.Join(conds, ") AND (") + ")"
}
