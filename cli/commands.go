package cli

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/varstack/varstack/dag"
	"github.com/varstack/varstack/options"
	"github.com/varstack/varstack/services"
)

// NewInitCommand returns the command that bootstraps the variable repository
// of every service declared by the collections, initializing defaults for
// services that have no revision yet.
func NewInitCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create and initialize the variable repositories of all services.",
		Action: func(ctx *cli.Context) error {
			collections, err := openCollections(opts)
			if err != nil {
				return err
			}

			graph, err := dag.Load(collections)
			if err != nil {
				return err
			}

			managers, err := services.InitializeManagers(graph, collections, opts)
			if err != nil {
				return err
			}

			return printManagers(opts, managers)
		},
	}
}

// NewStatusCommand returns the command that reports the current revision and
// cleanliness of every service repository, performing no writes.
func NewStatusCommand(opts *options.Options) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the current revision of every service's variable repository.",
		Action: func(ctx *cli.Context) error {
			collections, err := openCollections(opts)
			if err != nil {
				return err
			}

			graph, err := dag.Load(collections)
			if err != nil {
				return err
			}

			managers, err := services.LoadManagers(graph, opts)
			if err != nil {
				return err
			}

			return printManagers(opts, managers)
		},
	}
}

func printManagers(opts *options.Options, managers map[string]*services.Manager) error {
	names := make([]string, 0, len(managers))
	for name := range managers {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		manager := managers[name]

		rev, ok, err := manager.CurrentRevision()
		if err != nil {
			return err
		}

		if !ok {
			fmt.Fprintf(opts.Writer, "%s: no revision yet\n", name)
			continue
		}

		clean, err := manager.IsClean()
		if err != nil {
			return err
		}

		state := "clean"
		if !clean {
			state = "dirty"
		}

		fmt.Fprintf(opts.Writer, "%s: %s (%s)\n", name, rev, state)
	}

	return nil
}
