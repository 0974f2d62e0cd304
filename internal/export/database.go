// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes element graphs and creation metadata into a
// relational schema and manages that schema's lifecycle.
package export

import (
	"database/sql"
	"fmt"

	"github.com/pdiddy/extract-geometry/pkg/types"
)

// Database is an export sink: a connection pool plus its dialect.
type Database struct {
	db      *sql.DB
	dialect Dialect
}

// Open opens the sink described by cfg. The DSN must be set.
func Open(cfg types.DatabaseConfig) (*Database, error) {
	d, err := ParseDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("no data source name configured for %s", d)
	}
	db, err := sql.Open(d.driverName(), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", d, err)
	}
	return &Database{db: db, dialect: d}, nil
}

// OpenDB wraps an existing pool.
func OpenDB(d Dialect, db *sql.DB) *Database {
	return &Database{db: db, dialect: d}
}

// Dialect returns the sink's dialect.
func (d *Database) Dialect() Dialect {
	return d.dialect
}

// DB returns the underlying pool.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Close releases the pool.
func (d *Database) Close() error {
	return d.db.Close()
}
