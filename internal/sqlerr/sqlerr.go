// Package sqlerr classifies PostgreSQL driver errors into a small set of
// stable codes so callers can react without parsing messages.
package sqlerr

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code is the category of a database failure.
type Code string

const (
	Other               Code = "other"
	UniqueViolation     Code = "unique_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	NotNullViolation    Code = "not_null_violation"
	CheckViolation      Code = "check_violation"
	InvalidInput        Code = "invalid_input"
	SyntaxError         Code = "syntax_error"
	ConnectionFailure   Code = "connection_failure"
	Canceled            Code = "canceled"
)

// MapCode maps a SQLSTATE to a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "22P02", "22003", "22007", "22008":
		return InvalidInput
	case "42601", "42703", "42P01", "42883":
		return SyntaxError
	}
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return ConnectionFailure
	}
	return Other
}

// CodeOf reports the Code for err. Server errors are classified by
// SQLSTATE; context cancellation and network failures have their own codes.
func CodeOf(err error) Code {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Canceled
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ConnectionFailure
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return ConnectionFailure
	}
	return Other
}

// Constraint returns the violated constraint name, if the server reported one.
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
