package style

import (
	"errors"
	"fmt"
)

// LoadError is returned when a style specification cannot be read,
// parsed, or validated.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load style spec %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// UnmappedKindError is returned by Resolve for an element kind the spec
// carries no entry for.
type UnmappedKindError struct {
	Kind Kind
}

func (e *UnmappedKindError) Error() string {
	return fmt.Sprintf("no style entry for element kind %q", string(e.Kind))
}

// IsUnmappedKind reports whether the error is an UnmappedKindError.
func IsUnmappedKind(err error) bool {
	var target *UnmappedKindError
	return errors.As(err, &target)
}
