// Package options provides the set of options that configure the behavior of
// the varstack program.
package options

import (
	"io"
	"os"
	"path/filepath"

	"github.com/varstack/varstack/pkg/log"
)

// DefaultVarsDirName is the directory holding the per-service variable
// repositories when no explicit location is given.
const DefaultVarsDirName = "vars"

// Options configures a varstack run. It is built once by the CLI layer and
// passed down explicitly.
type Options struct {
	// WorkingDir is the directory varstack resolves relative paths against.
	WorkingDir string

	// VarsDir is the root directory under which each service gets its own
	// version-controlled variable directory.
	VarsDir string

	// CollectionPaths are the collection directories, in priority order.
	// Defaults from later collections override defaults from earlier ones.
	CollectionPaths []string

	// Logger is the logger all components log through.
	Logger log.Logger

	// Writer is the destination for user-facing output.
	Writer io.Writer

	// ErrWriter is the destination for error output.
	ErrWriter io.Writer
}

// NewOptions returns Options with defaults for the current process.
func NewOptions() *Options {
	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}

	return &Options{
		WorkingDir: workingDir,
		VarsDir:    filepath.Join(workingDir, DefaultVarsDirName),
		Logger:     log.New(log.WithOutput(os.Stderr)),
		Writer:     os.Stdout,
		ErrWriter:  os.Stderr,
	}
}
