package oracle

import (
	"errors"
	"fmt"
)

// ErrEmptyCompletion signals that the provider answered successfully but the
// response carried no usable text. It is always wrapped inside a *Error so
// callers can test for it with errors.Is.
var ErrEmptyCompletion = errors.New("oracle: empty completion")

// Error is the failure type for oracle calls. It records which provider
// failed, the HTTP status when one is known, and the underlying cause.
type Error struct {
	// Provider names the backend that produced the failure (e.g. "openai").
	Provider string

	// StatusCode is the HTTP status of the failed call, or 0 when the failure
	// happened before a status was received (transport error, cancellation).
	StatusCode int

	// Err is the underlying cause.
	Err error
}

func (oracleError *Error) Error() string {
	if oracleError.StatusCode != 0 {
		return fmt.Sprintf("oracle %s: status %d: %v", oracleError.Provider, oracleError.StatusCode, oracleError.Err)
	}
	return fmt.Sprintf("oracle %s: %v", oracleError.Provider, oracleError.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As chains.
func (oracleError *Error) Unwrap() error {
	return oracleError.Err
}
