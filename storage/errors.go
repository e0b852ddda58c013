package storage

import (
	"errors"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/opsdesk/incidents/core/incident"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// classifyError converts a driver uniqueness violation into an
// *incident.IntegrityError. Any other error is returned unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return &incident.IntegrityError{Constraint: incident.UniqueConstraint, Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		constraint := pgErr.ConstraintName
		if constraint == "" {
			constraint = incident.UniqueConstraint
		}
		return &incident.IntegrityError{Constraint: constraint, Err: err}
	}

	if sqlgraph.IsUniqueConstraintError(err) {
		return &incident.IntegrityError{Constraint: incident.UniqueConstraint, Err: err}
	}

	return err
}
