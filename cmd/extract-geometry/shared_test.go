package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/extract-geometry/internal/host/memory"
	"github.com/pdiddy/extract-geometry/pkg/types"
)

func TestCategoriesFrom(t *testing.T) {
	all, err := categoriesFrom(nil)
	require.NoError(t, err)
	assert.Equal(t, types.Categories, all)

	got, err := categoriesFrom([]string{"Walls", "framing"})
	require.NoError(t, err)
	assert.Equal(t, []types.Category{types.CategoryWall, types.CategoryStructuralFraming}, got)

	_, err = categoriesFrom([]string{"roofs"})
	assert.ErrorIs(t, err, types.ErrUnknownCategory)
}

func TestElementIDs(t *testing.T) {
	ids, err := elementIDs([]string{"1001", "2001"})
	require.NoError(t, err)
	assert.Equal(t, []types.ElementID{1001, 2001}, ids)

	_, err = elementIDs([]string{"12a"})
	assert.Error(t, err)
}

func TestOpenSinkUsesSecretDSN(t *testing.T) {
	saved, savedSecrets := cfg, loadedSecrets
	t.Cleanup(func() { cfg, loadedSecrets = saved, savedSecrets })

	cfg = types.Config{Database: types.DatabaseConfig{Dialect: "sqlite"}}
	loadedSecrets = map[string]string{"database-dsn": t.TempDir() + "/sink.db"}
	db, err := openSink()
	require.NoError(t, err)
	require.NoError(t, db.Close())

	loadedSecrets = nil
	_, err = openSink()
	assert.Error(t, err)
}

func heightDisplay(t *testing.T, m *memory.Model) string {
	t.Helper()
	params, err := m.Parameters(1001)
	require.NoError(t, err)
	for _, p := range params {
		if p.Name == "Unconnected Height" {
			return p.Display
		}
	}
	t.Fatal("no Unconnected Height parameter")
	return ""
}

func TestOpenModelKeepsFileDisplay(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })

	path := filepath.Join("..", "..", "internal", "pipeline", "testdata", "model.yaml")
	ref, err := memory.LoadFile(path)
	require.NoError(t, err)
	want := heightDisplay(t, ref)

	cfg = types.Config{Model: types.ModelConfig{Path: path}}
	m, err := openModel()
	require.NoError(t, err)
	assert.Equal(t, want, heightDisplay(t, m))

	cfg.Model.LengthUnit = "m"
	cfg.Model.Precision = 2
	m, err = openModel()
	require.NoError(t, err)
	assert.NotEqual(t, want, heightDisplay(t, m))
}

func TestWriteVersion(t *testing.T) {
	var b strings.Builder
	require.NoError(t, writeVersion(&b, false))
	assert.Equal(t, "extract-geometry "+version+"\n", b.String())

	b.Reset()
	require.NoError(t, writeVersion(&b, true))
	assert.Contains(t, b.String(), "dialects:   sqlite3, sqlite, postgres, mysql\n")
	assert.Contains(t, b.String(), "categories: wall,")
}
