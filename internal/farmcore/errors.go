package farmcore

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that a single-row lookup matched nothing. An
// empty list result is never an error.
var ErrNotFound = errors.New("record not found")

// RequestError wraps a failed call to the records API with the
// operation that produced it.
type RequestError struct {
	Op     string
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
