package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	_ "modernc.org/sqlite"
)

// NewSQLiteStore creates a new SQLite store at the given path.
func NewSQLiteStore(path string, opts ...Option) (*SQLStore, error) {
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// modernc.org/sqlite takes pragmas as _pragma params. Times are written
	// in the sqlite layout so they compare correctly as text.
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create ent driver from sql.DB
	drv := entsql.OpenDB(dialect.SQLite, db)

	store := newSQLStore(drv, DriverSQLite, path, buildOptions(opts))
	store.sizeFn = func(context.Context) int64 {
		if stat, err := os.Stat(path); err == nil {
			return stat.Size()
		}
		return 0
	}
	return store, nil
}
