package vars

import (
	"os"
	"path/filepath"

	"github.com/varstack/varstack/internal/errors"
	"github.com/varstack/varstack/util"
)

const varFileMode = os.FileMode(0644)

// File is a handle over one variable file inside a service directory.
// It buffers content in memory; nothing touches the filesystem until Save.
type File struct {
	name    string
	dir     string
	content Variables
}

// OpenFile returns a handle for the variable file with the given name inside
// dir. If the file already exists on disk its content is loaded, otherwise the
// handle starts out empty.
func OpenFile(dir string, name string) (*File, error) {
	file := &File{
		name:    name,
		dir:     dir,
		content: Variables{},
	}

	if util.IsFile(file.Path()) {
		content, err := Load(file.Path())
		if err != nil {
			return nil, err
		}

		file.content = content
	}

	return file, nil
}

// Name returns the filename of the variable file.
func (file *File) Name() string {
	return file.name
}

// Path returns the absolute location of the variable file on disk.
func (file *File) Path() string {
	return filepath.Join(file.dir, file.name)
}

// Content returns the current in-memory variables of the file.
func (file *File) Content() Variables {
	return file.content
}

// Update merges the given variables into the file content, with the given
// variables winning on conflicting leaves.
func (file *File) Update(variables Variables) error {
	merged, err := Merge(file.content, variables)
	if err != nil {
		return err
	}

	file.content = merged

	return nil
}

// Save writes the file content back to disk.
func (file *File) Save() error {
	content, err := Serialize(file.content)
	if err != nil {
		return err
	}

	if err := os.WriteFile(file.Path(), content, varFileMode); err != nil {
		return errors.WithStackTrace(err)
	}

	return nil
}
