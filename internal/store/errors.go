package store

import (
	"errors"
	"fmt"

	"lightbnb/internal/sqlerr"

	"github.com/jackc/pgx/v5"
)

// DefaultLimit caps list operations called with a non-positive limit.
const DefaultLimit = 10

// QueryExecutionError reports that the database rejected or failed a
// statement: connectivity, constraint violations, malformed SQL.
type QueryExecutionError struct {
	Op   string
	Code sqlerr.Code
	Err  error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

func queryError(op string, err error) error {
	return &QueryExecutionError{Op: op, Code: sqlerr.CodeOf(err), Err: err}
}

// IsCode reports whether err is a QueryExecutionError with the given code.
func IsCode(err error, code sqlerr.Code) bool {
	var qe *QueryExecutionError
	return errors.As(err, &qe) && qe.Code == code
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
