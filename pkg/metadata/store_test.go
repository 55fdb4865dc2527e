package metadata_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/shipstep/pkg/metadata"
)

func writeMetadata(t *testing.T, content string) *metadata.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return metadata.NewStore(path)
}

func TestStore_Read(t *testing.T) {
	store := writeMetadata(t, `
name: opennem
version: 1.2.0-prerelease.3
extras:
  postgres:
    - psycopg2
`)

	f, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "opennem", f.Name)
	assert.Equal(t, "1.2.0-prerelease.3", f.Version)
	assert.Equal(t, []string{"psycopg2"}, f.Extras["postgres"])
}

func TestStore_Read_MissingVersion(t *testing.T) {
	store := writeMetadata(t, "name: opennem\n")

	_, err := store.Read()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no version field")
}

func TestStore_Read_MissingFile(t *testing.T) {
	store := metadata.NewStore(filepath.Join(t.TempDir(), "nope.yml"))

	_, err := store.ReadVersion()
	assert.Error(t, err)
}

func TestStore_WriteVersion(t *testing.T) {
	store := writeMetadata(t, `
name: opennem
version: 1.2.0
description: a project
extras:
  postgres:
    - psycopg2
`)

	require.NoError(t, store.WriteVersion("1.2.1-prerelease.0"))

	got, err := store.ReadVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.2.1-prerelease.0", got)

	// Everything except the version field survives the rewrite
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: opennem")
	assert.Contains(t, string(data), "description: a project")
	assert.Contains(t, string(data), "psycopg2")
}

func TestStore_WriteVersion_Errors(t *testing.T) {
	store := writeMetadata(t, "name: opennem\nversion: 1.0.0\n")

	assert.Error(t, store.WriteVersion(""))

	noVersion := writeMetadata(t, "name: opennem\n")
	err := noVersion.WriteVersion("1.0.1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no version field")
}
