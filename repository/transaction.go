package repository

import (
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"

	"github.com/varstack/varstack/internal/errors"
	"github.com/varstack/varstack/vars"
)

const (
	committerName  = "varstack"
	committerEmail = "varstack@localhost"
)

// Transaction is an atomic batch of variable file writes against one
// repository. Files are buffered in memory until Commit, which writes,
// stages and commits them as exactly one new revision. Abort discards all
// buffered writes and anything a failed Commit left in the working tree.
//
// Callers are expected to `defer tx.Abort()` right after Begin; Abort after a
// successful Commit is a no-op.
type Transaction struct {
	repo     *GitRepository
	worktree *git.Worktree
	message  string
	files    []*vars.File
	done     bool
}

// Message returns the commit message the transaction commits with.
func (tx *Transaction) Message() string {
	return tx.message
}

// OpenVarFile opens the variable file with the given name for writing within
// the transaction. Existing on-disk content is loaded into the handle.
func (tx *Transaction) OpenVarFile(name string) (*vars.File, error) {
	if tx.done {
		return nil, errors.New("transaction is already closed")
	}

	file, err := vars.OpenFile(tx.repo.Path(), name)
	if err != nil {
		return nil, err
	}

	tx.files = append(tx.files, file)

	return file, nil
}

// Commit writes every opened file to the working tree, stages them, and
// commits them as one new revision. On failure nothing is committed and the
// working tree is rolled back to its pre-transaction state.
func (tx *Transaction) Commit() (Revision, error) {
	if tx.done {
		return "", errors.New("transaction is already closed")
	}

	rev, err := tx.commit()
	if err != nil {
		tx.rollback()
	}

	tx.close()

	return rev, err
}

// Abort discards the transaction. If Commit already succeeded, Abort does
// nothing.
func (tx *Transaction) Abort() error {
	if tx.done {
		return nil
	}

	err := tx.rollback()
	tx.close()

	return err
}

func (tx *Transaction) commit() (Revision, error) {
	for _, file := range tx.files {
		if err := file.Save(); err != nil {
			return "", err
		}

		if _, err := tx.worktree.Add(file.Name()); err != nil {
			return "", errors.WithStackTrace(err)
		}
	}

	hash, err := tx.worktree.Commit(tx.message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  committerName,
			Email: committerEmail,
			When:  time.Now(),
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		return "", errors.WithStackTrace(err)
	}

	return Revision(hash.String()), nil
}

// rollback restores the working tree to the last committed state, or removes
// the buffered files entirely when the repository has no revision yet.
func (tx *Transaction) rollback() error {
	_, ok, err := tx.repo.CurrentRevision()
	if err != nil {
		return err
	}

	if !ok {
		for _, file := range tx.files {
			_ = tx.worktree.Filesystem.Remove(file.Name())
		}

		return nil
	}

	if err := tx.worktree.Reset(&git.ResetOptions{Mode: git.HardReset}); err != nil {
		return errors.WithStackTrace(err)
	}

	return nil
}

func (tx *Transaction) close() {
	tx.done = true
	tx.files = nil
	tx.repo.tx = nil
}
