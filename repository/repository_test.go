package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varstack/varstack/repository"
	"github.com/varstack/varstack/vars"
)

func TestInitIsIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	repo, err := repository.Init(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Path())

	again, err := repository.Init(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, again.Path())
}

func TestCurrentRevisionOnFreshRepository(t *testing.T) {
	t.Parallel()

	repo, err := repository.Init(t.TempDir())
	require.NoError(t, err)

	_, ok, err := repo.CurrentRevision()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTransactionCommitCreatesOneRevision(t *testing.T) {
	t.Parallel()

	repo, err := repository.Init(t.TempDir())
	require.NoError(t, err)

	rev := commitFile(t, repo, "service.yml", vars.Variables{"a": 1}, "service: initial commit")

	current, ok, err := repo.CurrentRevision()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, rev, current)

	clean, err := repo.IsClean()
	require.NoError(t, err)
	assert.True(t, clean)

	loaded, err := vars.Load(filepath.Join(repo.Path(), "service.yml"))
	require.NoError(t, err)
	assert.Equal(t, 1, loaded["a"])
}

func TestTransactionAbortLeavesNothing(t *testing.T) {
	t.Parallel()

	repo, err := repository.Init(t.TempDir())
	require.NoError(t, err)

	tx, err := repo.Begin("service: initial commit")
	require.NoError(t, err)

	_, err = tx.OpenVarFile("service.yml")
	require.NoError(t, err)

	require.NoError(t, tx.Abort())

	_, ok, err := repo.CurrentRevision()
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoFileExists(t, filepath.Join(repo.Path(), "service.yml"))
}

func TestTransactionAbortAfterCommitIsNoop(t *testing.T) {
	t.Parallel()

	repo, err := repository.Init(t.TempDir())
	require.NoError(t, err)

	tx, err := repo.Begin("service: initial commit")
	require.NoError(t, err)

	file, err := tx.OpenVarFile("service.yml")
	require.NoError(t, err)
	require.NoError(t, file.Update(vars.Variables{"a": 1}))

	rev, err := tx.Commit()
	require.NoError(t, err)
	require.NoError(t, tx.Abort())

	current, ok, err := repo.CurrentRevision()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, rev, current)
}

func TestOnlyOneOpenTransaction(t *testing.T) {
	t.Parallel()

	repo, err := repository.Init(t.TempDir())
	require.NoError(t, err)

	tx, err := repo.Begin("first")
	require.NoError(t, err)

	_, err = repo.Begin("second")
	assert.ErrorIs(t, err, repository.ErrTransactionOpen)

	require.NoError(t, tx.Abort())

	next, err := repo.Begin("third")
	require.NoError(t, err)
	require.NoError(t, next.Abort())
}

func TestFilesChangedSince(t *testing.T) {
	t.Parallel()

	repo, err := repository.Init(t.TempDir())
	require.NoError(t, err)

	rev := commitFile(t, repo, "hdfs.yml", vars.Variables{"a": 1}, "hdfs: initial commit")

	files, err := repo.FilesChangedSince(rev)
	require.NoError(t, err)
	assert.Empty(t, files)

	commitFile(t, repo, "hdfs_datanode.yml", vars.Variables{"b": 2}, "hdfs: add datanode vars")

	files, err = repo.FilesChangedSince(rev)
	require.NoError(t, err)
	assert.Equal(t, []string{"hdfs_datanode.yml"}, files)
}

func TestFilesChangedSinceIncludesUncommitted(t *testing.T) {
	t.Parallel()

	repo, err := repository.Init(t.TempDir())
	require.NoError(t, err)

	rev := commitFile(t, repo, "hdfs.yml", vars.Variables{"a": 1}, "hdfs: initial commit")

	require.NoError(t, os.WriteFile(filepath.Join(repo.Path(), "hdfs_namenode.yml"), []byte("c: 3\n"), 0644))

	files, err := repo.FilesChangedSince(rev)
	require.NoError(t, err)
	assert.Equal(t, []string{"hdfs_namenode.yml"}, files)
}

func TestFilesChangedSinceUnknownRevision(t *testing.T) {
	t.Parallel()

	repo, err := repository.Init(t.TempDir())
	require.NoError(t, err)

	commitFile(t, repo, "hdfs.yml", vars.Variables{"a": 1}, "hdfs: initial commit")

	_, err = repo.FilesChangedSince("0000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, repository.ErrUnknownRevision)
}

func commitFile(t *testing.T, repo *repository.GitRepository, name string, content vars.Variables, message string) repository.Revision {
	t.Helper()

	tx, err := repo.Begin(message)
	require.NoError(t, err)
	defer tx.Abort() //nolint:errcheck

	file, err := tx.OpenVarFile(name)
	require.NoError(t, err)
	require.NoError(t, file.Update(content))

	rev, err := tx.Commit()
	require.NoError(t, err)

	return rev
}
