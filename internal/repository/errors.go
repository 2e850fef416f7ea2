package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrStore matches every StoreError via errors.Is.
	ErrStore = errors.New("store error")

	// ErrUnavailable indicates the store could not be reached.
	ErrUnavailable = errors.New("store unavailable")

	// ErrTimeout indicates the store call exceeded its deadline.
	ErrTimeout = errors.New("store request timed out")
)

const (
	OpInsert   = "insert"
	OpFetchAll = "fetch_all"
)

// StoreError wraps any failure of a store call. Status is the HTTP status
// for REST stores and zero otherwise.
type StoreError struct {
	Op     string
	Status int
	Err    error
}

func (e *StoreError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", TableName, e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", TableName, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrStore }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// ErrorCode classifies a store error for logging.
func ErrorCode(err error) string {
	var se *StoreError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.As(err, &se) && se.Status >= 500:
		return "SERVER"
	case errors.As(err, &se) && se.Status >= 400:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
