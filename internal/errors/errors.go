// internal/errors/errors.go
package errors

import "fmt"

// ErrInvalidOwner is returned when the owner argument is empty or not a bare GitHub account name.
type ErrInvalidOwner struct {
	Owner string
}

func (e *ErrInvalidOwner) Error() string {
	return fmt.Sprintf("invalid owner: %q, expected a bare GitHub account name", e.Owner)
}
