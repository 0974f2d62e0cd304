// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"fmt"

	"github.com/pdiddy/extract-geometry/pkg/types"
)

// Schema manages the export tables of one sink.
type Schema struct {
	db     *Database
	tables []table
}

// Schema returns the schema manager for the four graph tables, plus
// ModelCreationInfo when creationInfo is set.
func (d *Database) Schema(creationInfo bool) *Schema {
	tables := append([]table(nil), coreTables...)
	if creationInfo {
		tables = append(tables, creationInfoTable)
	}
	return &Schema{db: d, tables: tables}
}

// Tables returns the managed table names in creation order.
func (s *Schema) Tables() []string {
	names := make([]string, len(s.tables))
	for i, t := range s.tables {
		names[i] = t.name
	}
	return names
}

// TableExists reports whether the named table is present in the sink.
func (s *Schema) TableExists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := s.db.db.QueryRowContext(ctx, s.db.dialect.tableExistsQuery(), name).Scan(&n); err != nil {
		return false, fmt.Errorf("checking table %s: %w", name, err)
	}
	return n > 0, nil
}

// CreateSchema creates every managed table that does not exist yet. A
// table that already exists is left untouched and reported as a
// SchemaStateError. It returns the names of the tables it created.
func (s *Schema) CreateSchema(ctx context.Context, diags *types.Diagnostics) ([]string, error) {
	var created []string
	for _, t := range s.tables {
		exists, err := s.TableExists(ctx, t.name)
		if err != nil {
			return created, err
		}
		if exists {
			diags.Add(types.SchemaStateError, types.InvalidElementID, "%s table already exists", t.name)
			continue
		}
		if _, err := s.db.db.ExecContext(ctx, s.db.dialect.createTableSQL(t)); err != nil {
			return created, fmt.Errorf("creating table %s: %w", t.name, err)
		}
		created = append(created, t.name)
	}
	return created, nil
}

// DropSchema drops the managed tables only when every one of them exists.
// Otherwise each missing table is reported as a SchemaStateError and
// nothing is dropped. It returns the names of the tables it dropped.
func (s *Schema) DropSchema(ctx context.Context, diags *types.Diagnostics) ([]string, error) {
	var missing []string
	for _, t := range s.tables {
		exists, err := s.TableExists(ctx, t.name)
		if err != nil {
			return nil, err
		}
		if !exists {
			missing = append(missing, t.name)
		}
	}
	if len(missing) > 0 {
		for _, name := range missing {
			diags.Add(types.SchemaStateError, types.InvalidElementID, "%s table does not exist", name)
		}
		return nil, nil
	}

	var dropped []string
	for _, t := range s.tables {
		if _, err := s.db.db.ExecContext(ctx, s.db.dialect.dropTableSQL(t)); err != nil {
			return dropped, fmt.Errorf("dropping table %s: %w", t.name, err)
		}
		dropped = append(dropped, t.name)
	}
	return dropped, nil
}
