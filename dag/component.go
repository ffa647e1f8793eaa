package dag

import (
	"strings"

	"github.com/varstack/varstack/internal/errors"
)

// Action is the kind of operation a component performs on its service.
type Action string

// ActionConfig is the configuration action: the component consumes the
// variable files of its service.
const ActionConfig Action = "config"

// ErrMalformedComponent is returned when a component name cannot be parsed.
var ErrMalformedComponent = errors.New("malformed component name")

// Component identifies one action on one unit of a service. A component with
// an empty Unit is service-level: it stands for the service as a whole, and a
// change to it affects every unit of the service.
type Component struct {
	Service string
	Unit    string
	Action  Action
}

// NewComponent builds the component applying the given action to whatever the
// stem names. A stem is either a bare service name ("hdfs", service-level) or
// a service name followed by a unit ("hdfs_datanode").
func NewComponent(stem string, action Action) Component {
	service, unit, _ := strings.Cut(stem, "_")

	return Component{
		Service: service,
		Unit:    unit,
		Action:  action,
	}
}

// ParseComponentName parses a full component name of the form
// "<service>[_<unit>]_<action>".
func ParseComponentName(name string) (Component, error) {
	index := strings.LastIndex(name, "_")
	if index <= 0 || index == len(name)-1 {
		return Component{}, errors.Errorf("%w: %s", ErrMalformedComponent, name)
	}

	return NewComponent(name[:index], Action(name[index+1:])), nil
}

// Stem returns the component name without the action suffix.
func (c Component) Stem() string {
	if c.IsServiceLevel() {
		return c.Service
	}

	return c.Service + "_" + c.Unit
}

// Name returns the full component name.
func (c Component) Name() string {
	return c.Stem() + "_" + string(c.Action)
}

// IsServiceLevel returns true if the component stands for the service as a
// whole rather than a specific unit.
func (c Component) IsServiceLevel() bool {
	return c.Unit == ""
}

// String implements fmt.Stringer.
func (c Component) String() string {
	return c.Name()
}
