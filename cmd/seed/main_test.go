package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectCSVFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2024"), 0o755))
	for _, name := range []string{"pallets.csv", "notes.txt", filepath.Join("2024", "items.csv")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("data\n"), 0o644))
	}

	files, err := collectCSVFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "2024", "items.csv"),
		filepath.Join(dir, "pallets.csv"),
	}, files)
}

func TestCollectCSVFilesMissingRoot(t *testing.T) {
	_, err := collectCSVFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestObjectRelativePath(t *testing.T) {
	assert.Equal(t, "pallets.csv", objectRelativePath("backups/ledger", "backups/ledger/pallets.csv"))
	assert.Equal(t, "2024/items.csv", objectRelativePath("backups/ledger/", "backups/ledger/2024/items.csv"))
	assert.Equal(t, "pallets.csv", objectRelativePath("", "pallets.csv"))
	assert.Equal(t, "ledger", objectRelativePath("backups/ledger", "backups/ledger/"))
}
