package program

import (
	"errors"
	"fmt"
)

var (
	ErrMemoryConflict    = errors.New("memory block conflicts with an existing block")
	ErrInvalidLength     = errors.New("invalid length")
	ErrNoMemory          = errors.New("address range is not backed by a memory block")
	ErrDataConflict      = errors.New("data conflicts with existing data")
	ErrOutOfBounds       = errors.New("component does not fit in structure")
	ErrComponentConflict = errors.New("component overlaps an existing component")
	ErrInvalidName       = errors.New("invalid symbol name")
	ErrDuplicateName     = errors.New("name already exists")
)

// A ConflictError records which two objects collided.
type ConflictError struct {
	Err      error
	Name     string
	Existing string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s conflicts with %s", e.Err, e.Name, e.Existing)
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
