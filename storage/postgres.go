package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewPostgresStore connects to the PostgreSQL database described by dsn.
func NewPostgresStore(dsn string, opts ...Option) (*SQLStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return newPostgresStore(db, redactDSN(dsn), opts), nil
}

// NewPostgresStoreFromConn builds a PostgreSQL store over an existing
// connection pool.
func NewPostgresStoreFromConn(db *sql.DB, opts ...Option) (*SQLStore, error) {
	return newPostgresStore(db, "postgres", opts), nil
}

var sizeQuery = fmt.Sprintf("SELECT pg_total_relation_size('%s')", incidentsTable)

func newPostgresStore(db *sql.DB, location string, opts []Option) *SQLStore {
	drv := entsql.OpenDB(dialect.Postgres, db)

	store := newSQLStore(drv, DriverPostgres, location, buildOptions(opts))
	store.sizeFn = func(ctx context.Context) int64 {
		var rows entsql.Rows
		if err := drv.Query(ctx, sizeQuery, []any{}, &rows); err != nil {
			return 0
		}
		defer rows.Close()

		size, err := entsql.ScanInt64(rows)
		if err != nil {
			return 0
		}
		return size
	}
	return store
}

// redactDSN hides the password of a URL style DSN. Key/value DSNs are
// reported only by driver name.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "postgres"
	}
	return u.Redacted()
}
