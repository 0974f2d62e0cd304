// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strings"
)

// Table names of the export schema.
const (
	TableElements          = "Elements"
	TableVertexes          = "Vertexes"
	TableElementAndEdges   = "ElementAndEdges"
	TableEdgesAndVertexes  = "EdgesAndVertexes"
	TableModelCreationInfo = "ModelCreationInfo"
)

type column struct {
	name       string
	kind       colKind
	notNull    bool
	primaryKey bool
}

type table struct {
	name    string
	columns []column
}

var (
	elementsTable = table{TableElements, []column{
		{name: "Id", kind: colInt, notNull: true, primaryKey: true},
		{name: "UniqueId", kind: colText},
		{name: "TypeName", kind: colText},
		{name: "Category", kind: colText},
		{name: "Width", kind: colText},
	}}

	// Vertexes.Id is the position in the owning element's vertex list.
	vertexesTable = table{TableVertexes, []column{
		{name: "Id", kind: colInt},
		{name: "X", kind: colText, notNull: true},
		{name: "Y", kind: colText, notNull: true},
		{name: "Z", kind: colText, notNull: true},
	}}

	elementAndEdgesTable = table{TableElementAndEdges, []column{
		{name: "ElementId", kind: colInt},
		{name: "EdgeId", kind: colInt},
		{name: "IsAxisCurve", kind: colBool},
	}}

	edgesAndVerticesTable = table{TableEdgesAndVertexes, []column{
		{name: "VertexId", kind: colInt},
		{name: "EdgeId", kind: colInt},
		{name: "Status", kind: colText},
	}}

	creationInfoTable = table{TableModelCreationInfo, []column{
		{name: "ElementId", kind: colInt, notNull: true},
		{name: "LevelId", kind: colInt, notNull: true},
		{name: "WallTypeId", kind: colInt, notNull: true},
		{name: "Height", kind: colDouble},
		{name: "BaseOffset", kind: colDouble},
		{name: "Flip", kind: colBool},
		{name: "TopConstraint", kind: colInt, notNull: true},
		{name: "TopOffset", kind: colDouble},
		{name: "IsStructural", kind: colBool},
	}}
)

var coreTables = []table{elementsTable, vertexesTable, elementAndEdgesTable, edgesAndVerticesTable}

func (d Dialect) createTableSQL(t table) string {
	defs := make([]string, len(t.columns))
	for i, c := range t.columns {
		def := d.quote(c.name) + " " + d.columnType(c.kind)
		if c.notNull {
			def += " NOT NULL"
		}
		if c.primaryKey {
			def += " PRIMARY KEY"
		}
		defs[i] = def
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.quote(t.name), strings.Join(defs, ", "))
}

func (d Dialect) dropTableSQL(t table) string {
	return "DROP TABLE " + d.quote(t.name)
}

func (d Dialect) insertSQL(t table) string {
	names := make([]string, len(t.columns))
	marks := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = d.quote(c.name)
		marks[i] = d.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.quote(t.name), strings.Join(names, ", "), strings.Join(marks, ", "))
}

func (d Dialect) selectSQL(t table, where string, orderBy ...string) string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = d.quote(c.name)
	}
	q := fmt.Sprintf("SELECT %s FROM %s", strings.Join(names, ", "), d.quote(t.name))
	if where != "" {
		q += fmt.Sprintf(" WHERE %s = %s", d.quote(where), d.placeholder(1))
	}
	if len(orderBy) > 0 {
		quoted := make([]string, len(orderBy))
		for i, o := range orderBy {
			quoted[i] = d.quote(o)
		}
		q += " ORDER BY " + strings.Join(quoted, ", ")
	}
	return q
}
