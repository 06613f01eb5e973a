package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert collides with a uniqueness
// constraint (duplicate username/slug, second review by the same
// author for the same title). The constraint lives in the database so
// concurrent inserts cannot race past an application-level check.
var ErrDuplicate = errors.New("duplicate record")

// ErrDuplicateEmail is the duplicate case where the colliding
// constraint is the users.email one, so callers report the right field
// even when the collision only surfaced at insert time.
var ErrDuplicateEmail = errors.New("duplicate email")

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// duplicateError maps a unique violation onto the matching sentinel,
// inspecting the constraint name for the email column. Nil when the
// error is not a unique violation.
func duplicateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return ErrDuplicateEmail
	}
	return ErrDuplicate
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
