package database

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the data-access layer runs statements
// through. Each call borrows one pooled connection for its statement.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(context.Context) error
	Close()
}

// FakeDB implements DB with per-method hooks for tests. Unset hooks panic,
// except Close which is a no-op.
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

// Exec calls ExecFn, or panics when it is unset.
func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn != nil {
		return f.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

// Query calls QueryFn, or panics when it is unset.
func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn != nil {
		return f.QueryFn(ctx, sql, args...)
	}
	panic("unexpected Query")
}

// QueryRow calls QueryRowFn, or panics when it is unset.
func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn != nil {
		return f.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow")
}

// Ping calls PingFn, or panics when it is unset.
func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

// Close calls CloseFn when set.
func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}

// FakeRow implements pgx.Row. Scan copies Values into the destinations
// positionally, or returns Err.
type FakeRow struct {
	Values []any
	Err    error
}

func (r *FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(dest, r.Values)
}

// FakeRows implements pgx.Rows over in-memory rows.
type FakeRows struct {
	Data    [][]any
	ScanErr error
	IterErr error
	Closed  bool

	idx int
}

func (r *FakeRows) Close()                                       { r.Closed = true }
func (r *FakeRows) Err() error                                   { return r.IterErr }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) RawValues() [][]byte                          { return nil }
func (r *FakeRows) Conn() *pgx.Conn                              { return nil }

// Next advances to the following row until Data is exhausted or Close is called.
func (r *FakeRows) Next() bool {
	if r.Closed || r.idx >= len(r.Data) {
		return false
	}
	r.idx++
	return true
}

// Scan copies the current row, or returns ScanErr.
func (r *FakeRows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	return assign(dest, r.Data[r.idx-1])
}

// Values returns the current row as is.
func (r *FakeRows) Values() ([]any, error) {
	return r.Data[r.idx-1], nil
}

// assign sets *dest[i] = values[i]. A nil value zeroes the destination and
// a T value is accepted for a **T destination.
func assign(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("fake scan: %d values into %d destinations", len(values), len(dest))
	}
	for i, v := range values {
		d := reflect.ValueOf(dest[i])
		if d.Kind() != reflect.Pointer || d.IsNil() {
			return fmt.Errorf("fake scan: destination %d is not a pointer", i)
		}
		d = d.Elem()
		if v == nil {
			d.Set(reflect.Zero(d.Type()))
			continue
		}
		src := reflect.ValueOf(v)
		switch {
		case src.Type().AssignableTo(d.Type()):
			d.Set(src)
		case d.Kind() == reflect.Pointer && src.Type().AssignableTo(d.Type().Elem()):
			p := reflect.New(d.Type().Elem())
			p.Elem().Set(src)
			d.Set(p)
		default:
			return fmt.Errorf("fake scan: cannot assign %T to destination %d (%s)", v, i, d.Type())
		}
	}
	return nil
}
