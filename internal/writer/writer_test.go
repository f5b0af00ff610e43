package writer

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteTree(t *testing.T) {
	dir := t.TempDir()
	w := New(dir)

	err := w.WriteTree(context.Background(), map[string]any{
		"meta.json":            map[string]any{"total": 2},
		"companies/all.json":   []string{"a", "b"},
		"companies/alpha.json": map[string]any{"name": "Alpha & Co"},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"total\": 2\n}\n", string(data))

	// HTML escaping is off: ampersands survive as-is.
	data, err = os.ReadFile(filepath.Join(dir, "companies", "alpha.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alpha & Co")

	var all []string
	data, err = os.ReadFile(filepath.Join(dir, "companies", "all.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &all))
	assert.Equal(t, []string{"a", "b"}, all)
}

func TestWriter_ClearsGeneratedDirs(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "companies", "stale.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0o644))

	// Root-level files outside the generated dirs survive a rewrite.
	kept := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(kept, []byte("keep me"), 0o644))

	w := New(dir)
	err := w.WriteTree(context.Background(), map[string]any{
		"companies/fresh.json": map[string]any{},
	})
	require.NoError(t, err)

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "companies", "fresh.json"))
	assert.NoError(t, err)
	_, err = os.Stat(kept)
	assert.NoError(t, err)
}
