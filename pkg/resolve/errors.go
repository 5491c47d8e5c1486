package resolve

import (
	"errors"
	"fmt"
)

// ErrResourceNotFound matches any *ResourceNotFoundError with errors.Is.
var ErrResourceNotFound = errors.New("resource not found")

// ResourceNotFoundError is returned when no entity of the given source matches
// a reference.
type ResourceNotFoundError struct {
	// Source names the kind of entity that was looked up (e.g. "Product").
	Source string
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Source)
}

// Is reports whether target is ErrResourceNotFound.
func (e *ResourceNotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

// IsResourceNotFound returns true if err is or wraps a ResourceNotFoundError.
func IsResourceNotFound(err error) bool {
	var nf *ResourceNotFoundError
	return errors.As(err, &nf)
}
