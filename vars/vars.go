// Package vars implements the structured variable files that hold service
// configuration, and the merge semantics used to combine defaults drawn from
// multiple sources.
package vars

import (
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/varstack/varstack/internal/errors"
)

// Extension is the file extension used for variable files.
const Extension = ".yml"

// ErrMalformedSource is returned when a variables source file cannot be parsed.
var ErrMalformedSource = errors.New("malformed variables source")

// Variables is an arbitrarily nested key-value mapping of configuration variables.
type Variables map[string]any

// Load reads and parses the variable file at the given path.
func Load(path string) (Variables, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	return Parse(path, content)
}

// Parse parses the given raw content as a variables mapping. The path is only
// used for error reporting.
func Parse(path string, content []byte) (Variables, error) {
	variables := Variables{}

	if err := yaml.Unmarshal(content, &variables); err != nil {
		return nil, errors.Errorf("%w %s: %s", ErrMalformedSource, path, err)
	}

	return variables, nil
}

// Merge combines two variable mappings into a new one. Nested mappings present
// in both sides are merged recursively; on conflicting leaves the value from
// src wins. Non-mapping values, lists included, are replaced wholesale.
//
// Both inputs are deep-copied before merging: the result shares no nested
// maps with either input, and neither input is ever mutated.
func Merge(dst Variables, src Variables) (Variables, error) {
	merged := dst.Clone()

	if err := mergo.Merge(&merged, src.Clone(), mergo.WithOverride); err != nil {
		return nil, errors.WithStackTrace(err)
	}

	return merged, nil
}

// Clone returns a deep copy of the variables. Nested mappings and lists are
// copied recursively, so mutating the clone never affects the original.
func (variables Variables) Clone() Variables {
	cloned := make(Variables, len(variables))

	for key, value := range variables {
		cloned[key] = cloneValue(value)
	}

	return cloned
}

func cloneValue(value any) any {
	switch value := value.(type) {
	case Variables:
		return value.Clone()
	case map[string]any:
		cloned := make(map[string]any, len(value))

		for key, nested := range value {
			cloned[key] = cloneValue(nested)
		}

		return cloned
	case []any:
		cloned := make([]any, len(value))

		for i, element := range value {
			cloned[i] = cloneValue(element)
		}

		return cloned
	default:
		return value
	}
}

// Serialize renders the variables as YAML. Empty variables serialize to no
// content at all rather than an empty document marker, so a service without
// defaults still gets a plain empty file.
func Serialize(variables Variables) ([]byte, error) {
	if len(variables) == 0 {
		return []byte{}, nil
	}

	content, err := yaml.Marshal(variables)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	return content, nil
}
