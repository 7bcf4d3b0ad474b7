package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMethod    = errors.New("unknown method")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrRaggedColumns    = errors.New("column length does not match ROWCOUNT")
	ErrUnexpectedShape  = errors.New("unexpected response shape")
)

// RequestError is returned when the vendor answers with a non-200 status or
// cannot be reached at all. Transport failures carry status 500.
type RequestError struct {
	Status int
	Err    error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("vwheritage request failed (%d): %v", e.Status, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
