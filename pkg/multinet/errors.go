package multinet

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyWorkspace is returned before any request when a workspace name
	// is required but empty.
	ErrEmptyWorkspace = errors.New(`argument "workspace" must not be empty`)

	// ErrInvalidOption is returned before any request when an option holds a
	// value the service does not accept.
	ErrInvalidOption = errors.New("invalid option")
)

// DecodeError is returned when an upload source cannot be read as text. No
// request is made when it occurs.
type DecodeError struct {
	Source string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to read upload data as text: %v", e.Err)
	}
	return fmt.Sprintf("failed to read upload data %q as text: %v", e.Source, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
