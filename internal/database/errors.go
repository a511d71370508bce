package database

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no task row matches the requested id.
	// It is an expected outcome, not a store failure.
	ErrNotFound = errors.New("task not found")

	// ErrStore matches every *StoreError via errors.Is
	ErrStore = errors.New("store failure")
)

// StoreError reports a failed store operation: lost connectivity, a
// constraint violation or a transaction that could not commit.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStore) match any store failure
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

// storeError wraps err as a *StoreError unless it is nil, a not-found signal,
// or already a store failure.
func storeError(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
