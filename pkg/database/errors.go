package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// QueryError marks a failure raised by the driver or the server, as opposed
// to a domain error built by a repository.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string { return e.Err.Error() }
func (e *QueryError) Unwrap() error { return e.Err }

// Wrap marks err as a QueryError. A nil err stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Err: err}
}

func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}

// IsUniqueViolation reports whether err is a unique constraint failure,
// optionally on the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
