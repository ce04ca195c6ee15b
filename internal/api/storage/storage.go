package storage

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/tuanphm/compliance-be/shared/postgresql"
)

// Storage bundles all org-scoped persistence operations. Every query filters
// by org_id; a row outside the caller's org is indistinguishable from a
// missing row.
type Storage struct {
	db *sqlx.DB
}

// NewStorage creates a Storage over an established database client.
func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.DB(),
	}
}

// Postgres error classes used to turn driver errors into user-facing
// per-row failure reasons in bulk contexts.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ConstraintMessage maps a constraint violation to a short reason, or ""
// when err is not a recognized constraint error.
func ConstraintMessage(err error) string {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ""
	}
	switch pqErr.Code {
	case pgUniqueViolation:
		return "a record with the same unique value already exists"
	case pgForeignKeyViolation:
		return "referenced record does not exist"
	default:
		return ""
	}
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}
