package collection_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varstack/varstack/collection"
)

func TestOpen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	coll, err := collection.Open(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Base(dir), coll.Name())
	assert.Equal(t, dir, coll.Path())
}

func TestOpenNotADirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("not a collection"), 0644))

	_, err := collection.Open(path)
	assert.ErrorIs(t, err, collection.ErrNotACollection)
}

func TestParsePaths(t *testing.T) {
	t.Parallel()

	first := t.TempDir()
	second := t.TempDir()

	collections, err := collection.ParsePaths(strings.Join([]string{first, second}, string(os.PathListSeparator)))
	require.NoError(t, err)
	require.Len(t, collections, 2)

	assert.Equal(t, first, collections[0].Path())
	assert.Equal(t, second, collections[1].Path())
}

func TestDefaultVariables(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	defaultsDir := filepath.Join(dir, "vars_defaults", "hdfs")
	require.NoError(t, os.MkdirAll(defaultsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(defaultsDir, "hdfs.yml"), []byte("a: 1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(defaultsDir, "hdfs_datanode.yml"), []byte("b: 2\n"), 0644))

	coll, err := collection.Open(dir)
	require.NoError(t, err)

	entries, err := coll.DefaultVariables("hdfs")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "hdfs.yml", entries[0].Filename)
	assert.Equal(t, filepath.Join(defaultsDir, "hdfs.yml"), entries[0].Path)
	assert.Equal(t, "hdfs_datanode.yml", entries[1].Filename)
}

func TestDefaultVariablesNoDefaults(t *testing.T) {
	t.Parallel()

	coll, err := collection.Open(t.TempDir())
	require.NoError(t, err)

	entries, err := coll.DefaultVariables("hdfs")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGraphFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	graphDir := filepath.Join(dir, "graph")
	require.NoError(t, os.MkdirAll(graphDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(graphDir, "b.yml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(graphDir, "a.yml"), []byte(""), 0644))

	coll, err := collection.Open(dir)
	require.NoError(t, err)

	files, err := coll.GraphFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "a.yml", filepath.Base(files[0]))
	assert.Equal(t, "b.yml", filepath.Base(files[1]))
}
