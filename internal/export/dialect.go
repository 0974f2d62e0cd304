// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"errors"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// ErrUnknownDialect is returned for an unsupported dialect name.
var ErrUnknownDialect = errors.New("unknown database dialect")

// Dialect names a database/sql driver and its SQL flavour.
type Dialect string

const (
	// SQLite3 is SQLite through the cgo driver (mattn/go-sqlite3).
	SQLite3 Dialect = "sqlite3"

	// SQLite is SQLite through the pure Go driver (modernc.org/sqlite).
	SQLite Dialect = "sqlite"

	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
)

// ParseDialect validates a dialect name. Empty selects SQLite3.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return SQLite3, nil
	case SQLite3, SQLite, Postgres, MySQL:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q (use sqlite3, sqlite, postgres, or mysql)", ErrUnknownDialect, s)
}

// driverName is the name the driver registers with database/sql.
func (d Dialect) driverName() string {
	return string(d)
}

func (d Dialect) quote(ident string) string {
	if d == MySQL {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}

func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

type colKind int

const (
	colInt colKind = iota
	colText
	colDouble
	colBool
)

func (d Dialect) columnType(k colKind) string {
	switch d {
	case Postgres:
		return [...]string{"BIGINT", "VARCHAR(255)", "DOUBLE PRECISION", "BOOLEAN"}[k]
	case MySQL:
		return [...]string{"BIGINT", "VARCHAR(255)", "DOUBLE", "BOOLEAN"}[k]
	}
	return [...]string{"INTEGER", "TEXT", "REAL", "BOOLEAN"}[k]
}

// tableExistsQuery returns a query taking the table name and yielding a count.
func (d Dialect) tableExistsQuery() string {
	switch d {
	case Postgres:
		return `SELECT count(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1`
	case MySQL:
		return `SELECT count(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?`
	}
	return `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
}
