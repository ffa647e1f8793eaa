package services

import (
	"os"
	"path/filepath"

	"github.com/varstack/varstack/collection"
	"github.com/varstack/varstack/dag"
	"github.com/varstack/varstack/internal/errors"
	"github.com/varstack/varstack/options"
	"github.com/varstack/varstack/repository"
)

// ErrNotADirectory is returned when a service directory path is occupied by a
// non-directory filesystem entry.
var ErrNotADirectory = errors.New("service path is not a directory")

const serviceDirMode = os.FileMode(0755)

// InitializeManagers bootstraps a manager for every service in the graph:
// the service directory and its repository are created if absent, and
// services whose repository has no revision yet get their default variables
// initialized from the given collections. Already-initialized services are
// left untouched.
func InitializeManagers(graph *dag.Dag, collections []*collection.Collection, opts *options.Options) (map[string]*Manager, error) {
	managers := map[string]*Manager{}

	for _, service := range graph.Services() {
		dir := filepath.Join(opts.VarsDir, service)

		if err := ensureDirectory(dir, opts); err != nil {
			return nil, err
		}

		repo, err := repository.Init(dir)
		if err != nil {
			return nil, err
		}

		manager, err := NewManager(service, repo, graph, opts.Logger)
		if err != nil {
			return nil, err
		}

		rev, ok, err := manager.CurrentRevision()
		if err != nil {
			return nil, err
		}

		if ok {
			opts.Logger.Infof("%s is already initialized at %s", service, rev)
		} else if err := manager.InitializeVariables(collections); err != nil {
			return nil, err
		}

		managers[service] = manager
	}

	return managers, nil
}

// LoadManagers returns a manager for every service in the graph, bound to its
// assumed already-initialized repository. It performs no writes.
func LoadManagers(graph *dag.Dag, opts *options.Options) (map[string]*Manager, error) {
	managers := map[string]*Manager{}

	for _, service := range graph.Services() {
		repo, err := repository.Open(filepath.Join(opts.VarsDir, service))
		if err != nil {
			return nil, err
		}

		manager, err := NewManager(service, repo, graph, opts.Logger)
		if err != nil {
			return nil, err
		}

		managers[service] = manager
	}

	return managers, nil
}

func ensureDirectory(dir string, opts *options.Options) error {
	info, err := os.Stat(dir)

	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, serviceDirMode); err != nil {
			return errors.WithStackTrace(err)
		}

		opts.Logger.Infof("%s does not exist, created", dir)
	case err != nil:
		return errors.WithStackTrace(err)
	case !info.IsDir():
		return errors.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	return nil
}
