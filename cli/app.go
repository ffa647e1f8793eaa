// Package cli wires the varstack commands. Command-line glue only; all of the
// behavior lives in the services, dag and repository packages.
package cli

import (
	"github.com/urfave/cli/v2"

	"github.com/varstack/varstack/collection"
	"github.com/varstack/varstack/options"
	"github.com/varstack/varstack/util"
)

const (
	flagVars           = "vars"
	flagCollectionPath = "collection-path"
	flagLogLevel       = "log-level"
)

// NewApp creates the varstack CLI app.
func NewApp(opts *options.Options) *cli.App {
	app := cli.NewApp()
	app.Name = "varstack"
	app.Usage = "Manage versioned, mergeable configuration variables for interdependent services."
	app.Writer = opts.Writer
	app.ErrWriter = opts.ErrWriter
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    flagVars,
			Usage:   "Root directory of the per-service variable repositories.",
			EnvVars: []string{"VARSTACK_VARS"},
		},
		&cli.StringSliceFlag{
			Name:    flagCollectionPath,
			Usage:   "Collection directories in priority order, each entry optionally an OS path-list separated string. Later collections override earlier ones.",
			EnvVars: []string{"VARSTACK_COLLECTION_PATH"},
		},
		&cli.StringFlag{
			Name:    flagLogLevel,
			Usage:   "Log level: trace, debug, info, warn, error.",
			EnvVars: []string{"VARSTACK_LOG_LEVEL"},
		},
	}
	app.Before = applyFlags(opts)
	app.Commands = []*cli.Command{
		NewInitCommand(opts),
		NewStatusCommand(opts),
	}

	return app
}

func applyFlags(opts *options.Options) cli.BeforeFunc {
	return func(ctx *cli.Context) error {
		if vars := ctx.String(flagVars); vars != "" {
			opts.VarsDir = vars
		}

		if paths := ctx.StringSlice(flagCollectionPath); len(paths) > 0 {
			opts.CollectionPaths = paths
		}

		if level := ctx.String(flagLogLevel); level != "" {
			if err := opts.Logger.SetLevel(level); err != nil {
				return err
			}
		}

		return nil
	}
}

// openCollections opens every configured collection, preserving priority
// order. Each configured value may itself be an OS path-list separated string,
// so a single environment variable can carry several collections. A path
// given more than once only counts the first time.
func openCollections(opts *options.Options) ([]*collection.Collection, error) {
	var collections []*collection.Collection

	for _, path := range util.RemoveDuplicatesFromList(opts.CollectionPaths) {
		colls, err := collection.ParsePaths(path)
		if err != nil {
			return nil, err
		}

		collections = append(collections, colls...)
	}

	return collections, nil
}
