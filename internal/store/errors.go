package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when a title is empty after trimming
	ErrValidation = errors.New("task title is required")
	// ErrNotFound is returned when no task has the requested id
	ErrNotFound = errors.New("task not found")
	// ErrFormat is returned when an import payload is not a list of tasks
	ErrFormat = errors.New("invalid task snapshot")
)

// StorageError reports a failed read or write of the persisted state
type StorageError struct {
	Op  string // "read" or "write"
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s of %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
