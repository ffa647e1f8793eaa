// Package services implements the per-service manager that initializes
// variable repositories from collection defaults and resolves which graph
// components a set of file changes affects.
package services

import (
	"path/filepath"
	"strings"

	"github.com/varstack/varstack/collection"
	"github.com/varstack/varstack/dag"
	"github.com/varstack/varstack/pkg/log"
	"github.com/varstack/varstack/repository"
	"github.com/varstack/varstack/vars"
)

// Manager orchestrates the variable repository of one service. It holds a
// read-only reference to the shared dependency graph.
type Manager struct {
	name   string
	repo   *repository.GitRepository
	graph  *dag.Dag
	logger log.Logger
}

// NewManager returns a manager for the given service, bound to its repository
// and the shared graph.
func NewManager(name string, repo *repository.GitRepository, graph *dag.Dag, logger log.Logger) (*Manager, error) {
	if err := dag.ValidateServiceName(name); err != nil {
		return nil, err
	}

	return &Manager{
		name:   name,
		repo:   repo,
		graph:  graph,
		logger: logger.WithField("service", name),
	}, nil
}

// Name returns the service name.
func (m *Manager) Name() string {
	return m.name
}

// Repository returns the variable repository of the service.
func (m *Manager) Repository() *repository.GitRepository {
	return m.repo
}

// Path returns the variable directory of the service.
func (m *Manager) Path() string {
	return m.repo.Path()
}

// CurrentRevision returns the revision the service repository is at, with a
// false boolean if it has never been committed.
func (m *Manager) CurrentRevision() (repository.Revision, bool, error) {
	return m.repo.CurrentRevision()
}

// IsClean returns true if the service repository has no uncommitted changes.
func (m *Manager) IsClean() (bool, error) {
	return m.repo.IsClean()
}

// InitializeVariables populates the service repository with default variables
// drawn from the given collections and commits them as a single initial
// revision.
//
// Defaults are grouped by target filename, preserving collection order within
// each group, and each group is folded into one mapping with later sources
// winning on conflicting leaves. A service without any defaults still gets one
// empty "<service>.yml" file committed, so its initialized state is observable
// and uniform with services that do have defaults.
//
// The operation is all-or-nothing: any failure, a malformed source included,
// aborts the whole transaction and no revision is created.
func (m *Manager) InitializeVariables(collections []*collection.Collection) error {
	filenames, sources, err := m.collectDefaults(collections)
	if err != nil {
		return err
	}

	tx, err := m.repo.Begin(m.name + ": initial commit")
	if err != nil {
		return err
	}
	defer tx.Abort() //nolint:errcheck

	for _, filename := range filenames {
		file, err := tx.OpenVarFile(filename)
		if err != nil {
			return err
		}

		paths := sources[filename]
		if len(paths) == 0 {
			m.logger.Infof("initializing %s without variables", filename)
			continue
		}

		m.logger.Infof("initializing %s with defaults from %s", filename, strings.Join(paths, ", "))

		merged := vars.Variables{}

		for _, path := range paths {
			defaults, err := vars.Load(path)
			if err != nil {
				return err
			}

			if merged, err = vars.Merge(merged, defaults); err != nil {
				return err
			}
		}

		if err := file.Update(merged); err != nil {
			return err
		}
	}

	rev, err := tx.Commit()
	if err != nil {
		return err
	}

	m.logger.Infof("initialized at %s", rev)

	return nil
}

// collectDefaults queries every collection in order for this service's
// default variables and groups the source paths by target filename. The
// returned filename slice preserves first-seen order; a service without any
// defaults gets a single synthesized "<service>.yml" target with no sources.
func (m *Manager) collectDefaults(collections []*collection.Collection) ([]string, map[string][]string, error) {
	var filenames []string

	sources := map[string][]string{}

	for _, coll := range collections {
		entries, err := coll.DefaultVariables(m.name)
		if err != nil {
			return nil, nil, err
		}

		for _, entry := range entries {
			if _, ok := sources[entry.Filename]; !ok {
				filenames = append(filenames, entry.Filename)
			}

			sources[entry.Filename] = append(sources[entry.Filename], entry.Path)
		}
	}

	if len(filenames) == 0 {
		filenames = append(filenames, m.name+vars.Extension)
	}

	return filenames, sources, nil
}

// ComponentsModified resolves the graph components affected by the file
// changes between the given revision and the current state of the service
// repository.
//
// A changed file maps to the configuration component of whatever its basename
// stem names. A service-level file expands to every configuration component
// of that service, since a shared service-wide default affects all of its
// units. Results are deduplicated; a changed file whose owning service is not
// part of the graph fails with dag.ErrUnknownComponent.
func (m *Manager) ComponentsModified(rev repository.Revision) ([]dag.Component, error) {
	files, err := m.repo.FilesChangedSince(rev)
	if err != nil {
		return nil, err
	}

	modified := map[dag.Component]bool{}

	for _, file := range files {
		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		candidate := dag.NewComponent(stem, dag.ActionConfig)

		if _, err := m.graph.ServiceOf(candidate); err != nil {
			return nil, err
		}

		if !candidate.IsServiceLevel() {
			modified[candidate] = true
			continue
		}

		for _, component := range m.graph.ComponentsOf(candidate.Service) {
			if component.Action == dag.ActionConfig {
				modified[component] = true
			}
		}
	}

	components := make([]dag.Component, 0, len(modified))
	for component := range modified {
		components = append(components, component)
	}

	return components, nil
}
