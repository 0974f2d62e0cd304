// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/extract-geometry/internal/graph"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openSQLite(t *testing.T) *Database {
	t.Helper()
	db, err := Open(types.DatabaseConfig{
		Dialect: string(SQLite),
		DSN:     filepath.Join(t.TempDir(), "export.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func line(x0, y0, z0, x1, y1, z1 float64) types.Line {
	return types.Line{From: types.Point{X: x0, Y: y0, Z: z0}, To: types.Point{X: x1, Y: y1, Z: z1}}
}

func wallRecord(id types.ElementID) types.ElementRecord {
	edges := []types.Curve{
		line(0, 0, 0, 10, 0, 0),
		line(10, 0, 0, 10, 0, 3),
		line(10, 0, 3, 0, 0, 3),
		line(0, 0, 3, 0, 0, 0),
	}
	axis := line(0, 0.1, 0, 10, 0.1, 0)
	w := types.NewWallCreation()
	w.WallTypeID = 301
	w.TopConstraintID = 12
	w.Height = 3
	w.TopOffset = -0.25
	w.IsStructural = true
	return types.ElementRecord{
		ID:           id,
		UniqueID:     "b7a1c2d4-0000-0000-0000-00000000abcd",
		CategoryName: "Walls",
		TypeName:     "Basic Wall: Generic - 200mm",
		Width:        0.2,
		Graph:        graph.Normalize(edges, axis),
		Creation:     &types.CreationMetadata{Category: types.CategoryWall, LevelID: 11, Payload: w},
	}
}

func TestDialectSQL(t *testing.T) {
	assert.Equal(t,
		`INSERT INTO "Vertexes" ("Id", "X", "Y", "Z") VALUES (?, ?, ?, ?)`,
		SQLite3.insertSQL(vertexesTable))
	assert.Equal(t,
		`INSERT INTO "Vertexes" ("Id", "X", "Y", "Z") VALUES ($1, $2, $3, $4)`,
		Postgres.insertSQL(vertexesTable))
	assert.Equal(t,
		"INSERT INTO `Vertexes` (`Id`, `X`, `Y`, `Z`) VALUES (?, ?, ?, ?)",
		MySQL.insertSQL(vertexesTable))
	assert.Equal(t,
		`CREATE TABLE "Elements" ("Id" INTEGER NOT NULL PRIMARY KEY, "UniqueId" TEXT, "TypeName" TEXT, "Category" TEXT, "Width" TEXT)`,
		SQLite.createTableSQL(elementsTable))
	assert.Equal(t,
		`SELECT "ElementId", "EdgeId", "IsAxisCurve" FROM "ElementAndEdges" WHERE "ElementId" = $1 ORDER BY "EdgeId"`,
		Postgres.selectSQL(elementAndEdgesTable, "ElementId", "EdgeId"))
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("")
	require.NoError(t, err)
	assert.Equal(t, SQLite3, d)

	d, err = ParseDialect(" Postgres ")
	require.NoError(t, err)
	assert.Equal(t, Postgres, d)

	_, err = ParseDialect("oracle")
	assert.ErrorIs(t, err, ErrUnknownDialect)
}

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(types.DatabaseConfig{Dialect: "sqlite"})
	assert.Error(t, err)
}

func TestRowsWall(t *testing.T) {
	rows := Rows(wallRecord(1001))

	assert.Equal(t, ElementRow{
		ID:       1001,
		UniqueID: "b7a1c2d4-0000-0000-0000-00000000abcd",
		TypeName: "Basic Wall: Generic - 200mm",
		Category: "Walls",
		Width:    "0.2",
	}, rows.Element)
	require.Len(t, rows.Edges, 5)
	assert.True(t, rows.Edges[4].IsAxisCurve)
	assert.False(t, rows.Edges[0].IsAxisCurve)
	// Four rectangle corners plus two axis end points.
	require.Len(t, rows.Vertexes, 6)
	assert.Equal(t, VertexRow{ID: 4, X: "0", Y: "0.1", Z: "0"}, rows.Vertexes[4])
	require.Len(t, rows.EdgeVertexes, 10)
	assert.Equal(t, EdgeVertexRow{VertexID: 1, EdgeID: 1, Status: "Start Point"}, rows.EdgeVertexes[2])

	require.NotNil(t, rows.Creation)
	assert.Equal(t, int64(11), rows.Creation.LevelID)
	assert.Equal(t, int64(301), rows.Creation.WallTypeID)
	assert.Equal(t, int64(12), rows.Creation.TopConstraint)
	assert.Empty(t, rows.CreationSkipped)
}

func TestRowsWallMissingReferences(t *testing.T) {
	rec := wallRecord(7)
	rec.Creation.LevelID = types.InvalidElementID
	w, _ := rec.Creation.Wall()
	w.TopConstraintID = types.InvalidElementID

	rows := Rows(rec)
	assert.Nil(t, rows.Creation)
	assert.Equal(t, "missing level, top constraint", rows.CreationSkipped)
}

func TestRowsNonWallHasNoCreationRow(t *testing.T) {
	rec := types.ElementRecord{
		ID:           5,
		CategoryName: "Floors",
		Creation:     &types.CreationMetadata{Category: types.CategoryFloor, LevelID: 11, Payload: &types.FloorCreation{}},
	}
	rows := Rows(rec)
	assert.Nil(t, rows.Creation)
	assert.Empty(t, rows.CreationSkipped)
	assert.Empty(t, rows.Edges)
}

func TestReconstructRejectsDanglingEdge(t *testing.T) {
	rows := Rows(wallRecord(1))
	rows.Edges = rows.Edges[:1]
	_, err := Reconstruct(rows)
	assert.Error(t, err)
}

func TestCreateSchemaTwice(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		name         string
		creationInfo bool
		want         int
	}{
		{"core", false, 4},
		{"with creation info", true, 5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := openSQLite(t).Schema(tc.creationInfo)

			var diags types.Diagnostics
			created, err := s.CreateSchema(ctx, &diags)
			require.NoError(t, err)
			assert.Equal(t, s.Tables(), created)
			assert.Zero(t, diags.Len())

			created, err = s.CreateSchema(ctx, &diags)
			require.NoError(t, err)
			assert.Empty(t, created)
			assert.Len(t, diags.OfKind(types.SchemaStateError), tc.want)
			assert.Equal(t, tc.want, diags.Len())
		})
	}
}

func TestDropSchemaRequiresEveryTable(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	var diags types.Diagnostics
	_, err := db.Schema(false).CreateSchema(ctx, &diags)
	require.NoError(t, err)

	// ModelCreationInfo is missing, so nothing is dropped.
	dropped, err := db.Schema(true).DropSchema(ctx, &diags)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	require.Len(t, diags.All(), 1)
	assert.Contains(t, diags.All()[0].Message, TableModelCreationInfo)

	exists, err := db.Schema(false).TableExists(ctx, TableElements)
	require.NoError(t, err)
	assert.True(t, exists)

	dropped, err = db.Schema(false).DropSchema(ctx, &diags)
	require.NoError(t, err)
	assert.Len(t, dropped, 4)
	exists, err = db.Schema(false).TableExists(ctx, TableElements)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDropSchemaOnEmptySink(t *testing.T) {
	var diags types.Diagnostics
	dropped, err := openSQLite(t).Schema(false).DropSchema(context.Background(), &diags)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.Len(t, diags.OfKind(types.SchemaStateError), 4)
}

func TestExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	var diags types.Diagnostics
	_, err := db.Schema(true).CreateSchema(ctx, &diags)
	require.NoError(t, err)

	rec := wallRecord(1001)
	res, err := NewExporter(db, true, quietLogger()).Export(ctx, []types.ElementRecord{rec}, &diags)
	require.NoError(t, err)
	assert.Equal(t, Result{Elements: 1, Inserted: 1 + 5 + 6 + 10 + 1}, res)
	assert.Zero(t, diags.Len())

	rows, err := NewReader(db).ReadElement(ctx, 1001)
	require.NoError(t, err)
	assert.Equal(t, Rows(rec), rows)

	got, err := Reconstruct(rows)
	require.NoError(t, err)
	assert.Equal(t, rec.Graph.Vertices, got.Vertices)
	assert.Equal(t, graph.Endpoints(rec.Graph), got.Edges)

	_, err = NewReader(db).ReadElement(ctx, 42)
	assert.ErrorIs(t, err, ErrElementNotExported)
}

func TestSortEdgeVertexesClosingEdge(t *testing.T) {
	// Query order for a closing edge: end vertex 0 sorts before start vertex 3.
	evs := []EdgeVertexRow{
		{VertexID: 2, EdgeID: 2, Status: "End Point"},
		{VertexID: 1, EdgeID: 2, Status: "Start Point"},
		{VertexID: 0, EdgeID: 3, Status: "End Point"},
		{VertexID: 3, EdgeID: 3, Status: "Start Point"},
	}
	sortEdgeVertexes(evs)
	assert.Equal(t, []EdgeVertexRow{
		{VertexID: 1, EdgeID: 2, Status: "Start Point"},
		{VertexID: 2, EdgeID: 2, Status: "End Point"},
		{VertexID: 3, EdgeID: 3, Status: "Start Point"},
		{VertexID: 0, EdgeID: 3, Status: "End Point"},
	}, evs)
}

func TestExportReportsSkippedCreationInfo(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	var diags types.Diagnostics
	_, err := db.Schema(true).CreateSchema(ctx, &diags)
	require.NoError(t, err)

	rec := wallRecord(3)
	rec.Creation.LevelID = types.InvalidElementID
	res, err := NewExporter(db, true, quietLogger()).Export(ctx, []types.ElementRecord{rec}, &diags)
	require.NoError(t, err)
	assert.Zero(t, res.Failed)
	skipped := diags.OfKind(types.MetadataSkipped)
	require.Len(t, skipped, 1)
	assert.Equal(t, types.ElementID(3), skipped[0].ElementID)

	rows, err := NewReader(db).ReadElement(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, rows.Creation)
}

func TestExportContinuesAfterRowFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db := OpenDB(SQLite3, sqlDB)

	insert := regexp.QuoteMeta(SQLite3.insertSQL(elementsTable))
	mock.ExpectExec(insert).WithArgs(int64(1), "u-1", "", "Walls", "0").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WithArgs(int64(2), "u-2", "", "Walls", "0").
		WillReturnError(errors.New("UNIQUE constraint failed: Elements.Id"))
	mock.ExpectExec(insert).WithArgs(int64(3), "u-3", "", "Walls", "0").
		WillReturnResult(sqlmock.NewResult(0, 1))

	records := []types.ElementRecord{
		{ID: 1, UniqueID: "u-1", CategoryName: "Walls"},
		{ID: 2, UniqueID: "u-2", CategoryName: "Walls"},
		{ID: 3, UniqueID: "u-3", CategoryName: "Walls"},
	}
	var diags types.Diagnostics
	res, err := NewExporter(db, false, quietLogger()).Export(context.Background(), records, &diags)
	require.NoError(t, err)
	assert.Equal(t, Result{Elements: 3, Inserted: 2, Failed: 1}, res)

	failed := diags.OfKind(types.RowExportError)
	require.Len(t, failed, 1)
	assert.Equal(t, types.ElementID(2), failed[0].ElementID)
	assert.Contains(t, failed[0].Message, TableElements)
	require.NoError(t, mock.ExpectationsWereMet())
}
