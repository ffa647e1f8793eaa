package dag

import (
	"github.com/varstack/varstack/internal/errors"
)

// ServiceNameMaxLength bounds service names. Configuration store backends
// commonly impose short identifier limits.
const ServiceNameMaxLength = 15

// ErrInvalidServiceName is returned for empty or overlong service names.
var ErrInvalidServiceName = errors.New("invalid service name")

// ValidateServiceName checks that the given name is usable as a service name.
func ValidateServiceName(name string) error {
	if name == "" {
		return errors.Errorf("%w: name is empty", ErrInvalidServiceName)
	}

	if len(name) > ServiceNameMaxLength {
		return errors.Errorf("%w: %s is longer than %d characters", ErrInvalidServiceName, name, ServiceNameMaxLength)
	}

	return nil
}
