// Package repository implements the version-controlled directory that backs a
// service's variable files. Every service directory is a plain git working
// tree; each transaction against it becomes exactly one commit.
package repository

import (
	"sort"

	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/storage/filesystem"

	"github.com/varstack/varstack/internal/errors"
)

var (
	// ErrUnknownRevision is returned when a revision is not part of the
	// repository history.
	ErrUnknownRevision = errors.New("unknown revision")

	// ErrTransactionOpen is returned when a transaction is begun while
	// another one is still open on the same repository.
	ErrTransactionOpen = errors.New("a transaction is already open on this repository")
)

// Revision is an opaque commit identifier. Revisions compare only for
// equality and history membership, never by value.
type Revision string

// String implements fmt.Stringer.
func (rev Revision) String() string {
	return string(rev)
}

// GitRepository is a git working tree holding the variable files of one
// service. It assumes exclusive single-writer access to the directory.
type GitRepository struct {
	path string
	repo *git.Repository
	tx   *Transaction
}

// Init initializes a git repository at the given path, or opens the existing
// one if the path is already a repository.
func Init(path string) (*GitRepository, error) {
	if _, err := git.PlainInit(path, false); err != nil && !errors.Is(err, git.ErrTargetDirNotEmpty) {
		return nil, errors.WithStackTraceAndPrefix(err, "initializing repository at %s", path)
	}

	return Open(path)
}

// Open opens the existing git repository at the given path.
func Open(path string) (*GitRepository, error) {
	worktree := osfs.New(path)

	dotgit, err := worktree.Chroot(git.GitDirName)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	storage := filesystem.NewStorage(dotgit, cache.NewObjectLRUDefault())

	repo, err := git.Open(storage, worktree)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "opening repository at %s", path)
	}

	return &GitRepository{
		path: path,
		repo: repo,
	}, nil
}

// Path returns the working tree directory of the repository.
func (r *GitRepository) Path() string {
	return r.path
}

// CurrentRevision returns the revision the repository is currently at. The
// boolean is false if the repository has never been committed; that absence
// is a first-class state, not an error.
func (r *GitRepository) CurrentRevision() (Revision, bool, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", false, nil
		}

		return "", false, errors.WithStackTrace(err)
	}

	return Revision(head.Hash().String()), true, nil
}

// IsClean returns true if the working tree has no uncommitted modifications.
func (r *GitRepository) IsClean() (bool, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return false, errors.WithStackTrace(err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, errors.WithStackTrace(err)
	}

	return status.IsClean(), nil
}

// Begin opens a transaction on the repository. All variable files opened on
// the transaction are committed as exactly one new revision labeled with the
// given message, or discarded on abort. At most one transaction may be open
// at a time.
func (r *GitRepository) Begin(message string) (*Transaction, error) {
	if r.tx != nil {
		return nil, errors.Errorf("%w: %s", ErrTransactionOpen, r.path)
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	r.tx = &Transaction{
		repo:     r,
		worktree: worktree,
		message:  message,
	}

	return r.tx, nil
}

// FilesChangedSince returns the names of the files modified between the given
// revision and the current state of the working tree, sorted. It returns
// ErrUnknownRevision if the revision is not part of the repository history.
func (r *GitRepository) FilesChangedSince(rev Revision) ([]string, error) {
	since, err := r.commitTree(rev)
	if err != nil {
		return nil, err
	}

	head, ok, err := r.CurrentRevision()
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, errors.Errorf("%w: %s: repository has no revision yet", ErrUnknownRevision, rev)
	}

	current, err := r.commitTree(head)
	if err != nil {
		return nil, err
	}

	changed := map[string]bool{}

	changes, err := object.DiffTree(since, current)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	for _, change := range changes {
		if name := change.To.Name; name != "" {
			changed[name] = true
		} else {
			changed[change.From.Name] = true
		}
	}

	// Uncommitted modifications in the working tree count as changed too.
	worktree, err := r.repo.Worktree()
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	for name, fileStatus := range status {
		if fileStatus.Worktree != git.Unmodified || fileStatus.Staging != git.Unmodified {
			changed[name] = true
		}
	}

	files := make([]string, 0, len(changed))
	for name := range changed {
		files = append(files, name)
	}

	sort.Strings(files)

	return files, nil
}

func (r *GitRepository) commitTree(rev Revision) (*object.Tree, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrUnknownRevision, rev)
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, errors.Errorf("%w: %s", ErrUnknownRevision, rev)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	return tree, nil
}
