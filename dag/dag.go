// Package dag models the dependency graph of services and components that
// collections declare. The graph is loaded once at startup and shared
// read-only by every service manager.
package dag

import (
	"sort"

	"github.com/varstack/varstack/collection"
	"github.com/varstack/varstack/internal/errors"
	"github.com/varstack/varstack/vars"
)

// ErrUnknownComponent is returned when a component's owning service is not
// part of the graph.
var ErrUnknownComponent = errors.New("unknown component")

// Dag is the immutable dependency graph: every known component grouped by
// owning service, plus the declared dependencies between components.
type Dag struct {
	services     []string
	components   map[string][]Component
	dependencies map[Component][]string
}

// Load builds the graph from the declaration files of the given collections,
// queried in order. A later collection overrides the dependency list a
// previous one declared for the same component.
func Load(collections []*collection.Collection) (*Dag, error) {
	dependencies := map[Component][]string{}
	components := map[string][]Component{}

	for _, coll := range collections {
		files, err := coll.GraphFiles()
		if err != nil {
			return nil, err
		}

		for _, file := range files {
			declarations, err := vars.Load(file)
			if err != nil {
				return nil, err
			}

			for name, deps := range declarations {
				component, err := ParseComponentName(name)
				if err != nil {
					return nil, err
				}

				if err := ValidateServiceName(component.Service); err != nil {
					return nil, err
				}

				if _, ok := dependencies[component]; !ok {
					components[component.Service] = append(components[component.Service], component)
				}

				dependencies[component], err = dependencyNames(name, deps)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	services := make([]string, 0, len(components))
	for service, comps := range components {
		services = append(services, service)

		sort.Slice(comps, func(i, j int) bool { return comps[i].Name() < comps[j].Name() })
	}

	sort.Strings(services)

	return &Dag{
		services:     services,
		components:   components,
		dependencies: dependencies,
	}, nil
}

// Services returns the names of all services in the graph, sorted.
func (d *Dag) Services() []string {
	return d.services
}

// HasService returns true if the given service is part of the graph.
func (d *Dag) HasService(name string) bool {
	_, ok := d.components[name]
	return ok
}

// ComponentsOf returns the components of the given service, sorted by name.
// An unknown service has no components.
func (d *Dag) ComponentsOf(service string) []Component {
	return d.components[service]
}

// Has returns true if the given component is declared in the graph.
func (d *Dag) Has(component Component) bool {
	_, ok := d.dependencies[component]
	return ok
}

// ServiceOf returns the owning service of the given component, or
// ErrUnknownComponent if that service is not part of the graph.
func (d *Dag) ServiceOf(component Component) (string, error) {
	if !d.HasService(component.Service) {
		return "", errors.Errorf("%w: %s", ErrUnknownComponent, component)
	}

	return component.Service, nil
}

// DependenciesOf returns the names of the components the given component
// depends on.
func (d *Dag) DependenciesOf(component Component) []string {
	return d.dependencies[component]
}

func dependencyNames(component string, deps any) ([]string, error) {
	if deps == nil {
		return nil, nil
	}

	list, ok := deps.([]any)
	if !ok {
		return nil, errors.Errorf("%w: dependencies of %s must be a list", ErrMalformedComponent, component)
	}

	names := make([]string, 0, len(list))

	for _, dep := range list {
		name, ok := dep.(string)
		if !ok {
			return nil, errors.Errorf("%w: dependencies of %s must be a list of component names", ErrMalformedComponent, component)
		}

		names = append(names, name)
	}

	return names, nil
}
