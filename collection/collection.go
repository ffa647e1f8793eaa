// Package collection implements the on-disk collections that contribute
// dependency-graph declarations and default variables for services.
//
// A collection is a directory with the following layout:
//
//	<collection>/
//	  graph/            component declarations, one or more YAML files
//	  vars_defaults/
//	    <service>/      default variable files for one service
//	      <name>.yml
//
// Collections are queried in a fixed priority order determined by the caller;
// defaults from later collections override defaults from earlier ones.
package collection

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	zglob "github.com/mattn/go-zglob"

	"github.com/varstack/varstack/internal/errors"
	"github.com/varstack/varstack/util"
	"github.com/varstack/varstack/vars"
)

const (
	graphDirName    = "graph"
	defaultsDirName = "vars_defaults"
)

// ErrNotACollection is returned when a collection path does not point to a directory.
var ErrNotACollection = errors.New("collection path is not a directory")

// DefaultVarsEntry locates one default variable file contributed by a
// collection: the filename it targets inside the service directory, and the
// source path the defaults are read from.
type DefaultVarsEntry struct {
	Filename string
	Path     string
}

// Collection is a read-only handle over one collection directory.
type Collection struct {
	name string
	path string
}

// Open returns a Collection rooted at the given directory.
func Open(path string) (*Collection, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	if !util.IsDir(absPath) {
		return nil, errors.Errorf("%w: %s", ErrNotACollection, absPath)
	}

	return &Collection{
		name: filepath.Base(absPath),
		path: absPath,
	}, nil
}

// ParsePaths opens a collection per entry of an OS path-list separated string,
// preserving the declaration order.
func ParsePaths(str string) ([]*Collection, error) {
	var collections []*Collection

	for _, path := range strings.Split(str, string(os.PathListSeparator)) {
		if path == "" {
			continue
		}

		coll, err := Open(path)
		if err != nil {
			return nil, err
		}

		collections = append(collections, coll)
	}

	return collections, nil
}

// Name returns the collection name, which is its directory basename.
func (coll *Collection) Name() string {
	return coll.name
}

// Path returns the collection root directory.
func (coll *Collection) Path() string {
	return coll.path
}

// GraphFiles returns the component declaration files of the collection in
// lexical order. A collection without a graph directory contributes nothing.
func (coll *Collection) GraphFiles() ([]string, error) {
	return coll.globSorted(filepath.Join(coll.path, graphDirName), "*"+vars.Extension)
}

// DefaultVariables returns the default variable files this collection holds
// for the given service, in lexical order. The returned entries map each
// source file to the target filename of the same name inside the service
// directory.
func (coll *Collection) DefaultVariables(service string) ([]DefaultVarsEntry, error) {
	paths, err := coll.globSorted(filepath.Join(coll.path, defaultsDirName, service), "*"+vars.Extension)
	if err != nil {
		return nil, err
	}

	entries := make([]DefaultVarsEntry, 0, len(paths))
	for _, path := range paths {
		entries = append(entries, DefaultVarsEntry{
			Filename: filepath.Base(path),
			Path:     path,
		})
	}

	return entries, nil
}

func (coll *Collection) globSorted(dir string, pattern string) ([]string, error) {
	if !util.IsDir(dir) {
		return nil, nil
	}

	paths, err := zglob.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	sort.Strings(paths)

	return paths, nil
}
