package domain

import "fmt"

// NotFoundError reports a row that does not exist.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is lets errors.Is match any NotFoundError regardless of resource.
func (e NotFoundError) Is(target error) bool {
	switch target.(type) {
	case NotFoundError, *NotFoundError:
		return true
	}
	return false
}

var ErrNotFound = NotFoundError{}

// NotFound returns a NotFoundError for the named resource.
func NotFound(resource string) error {
	return NotFoundError{Resource: resource}
}
