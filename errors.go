package party

import "errors"

// Configuration errors. They are returned from constructors and builders,
// usually wrapped with more context; match them with errors.Is.
var (
	// ErrNoKeys is returned when a spline or gradient is built without keys.
	ErrNoKeys = errors.New("party: spline needs at least one key")

	// ErrNoInitialValue is returned when a module is built in relative mode
	// for a property that has no initial snapshot on the particle.
	ErrNoInitialValue = errors.New("party: property has no initial value")

	// ErrNoDriver is returned when a module is built without a driver.
	ErrNoDriver = errors.New("party: module has no driver")

	// ErrUnknownShape is returned when a renderer shape key is not in the
	// shape catalog.
	ErrUnknownShape = errors.New("party: unknown shape")

	// ErrInvalidConfig is returned for any other malformed configuration.
	ErrInvalidConfig = errors.New("party: invalid configuration")
)
