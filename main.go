package main

import (
	"os"

	"github.com/varstack/varstack/cli"
	"github.com/varstack/varstack/internal/errors"
	"github.com/varstack/varstack/options"
)

// The main entrypoint for varstack.
func main() {
	opts := options.NewOptions()

	defer errors.Recover(exitOnError(opts))

	app := cli.NewApp(opts)
	err := app.Run(os.Args)

	exitOnError(opts)(err)
}

// exitOnError displays the given error along with its stack trace at trace
// level and exits with a non-zero exit code. A nil error exits 0.
func exitOnError(opts *options.Options) func(error) {
	return func(err error) {
		if err == nil {
			os.Exit(0)
		}

		opts.Logger.Error(err.Error())

		if errStack := errors.ErrorStack(err); errStack != "" {
			opts.Logger.Tracef("%s", errStack)
		}

		os.Exit(1)
	}
}
