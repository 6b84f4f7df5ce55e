package vndb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrDisconnected indicates the owning client was closed or garbage collected
	ErrDisconnected = errors.New("client disconnected")
	// ErrInvalidID indicates a string that is not a valid id for its resource
	ErrInvalidID = errors.New("invalid id")
	// ErrJSON indicates a local JSON encoding or decoding failure
	ErrJSON = errors.New("json error")
	// ErrRequestFailed indicates a transport failure or a non-2xx response
	ErrRequestFailed = errors.New("request failed")
	// ErrTokenNeeded indicates an endpoint that requires a token was called without one
	ErrTokenNeeded = errors.New("not authorized: token needed")
	// ErrBuilderConsumed is returned when Send is called twice on the same query builder
	ErrBuilderConsumed = errors.New("query builder already sent")
)

// InvalidIDError reports the offending value of a failed id parse
type InvalidIDError struct {
	Resource string
	Value    string
}

// Error implements the error interface
func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("%q is not a valid %s id", e.Value, e.Resource)
}

// Is reports whether target is ErrInvalidID
func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID
}

// JSONError wraps a failure to encode a request or decode a response
type JSONError struct {
	Err error
}

// Error implements the error interface
func (e *JSONError) Error() string {
	return fmt.Sprintf("failed to parse JSON: %v", e.Err)
}

func (e *JSONError) Is(target error) bool {
	return target == ErrJSON
}

func (e *JSONError) Unwrap() error {
	return e.Err
}

// RequestError represents a failed exchange with the API.
// StatusCode is zero when no response was received (DNS, connect, timeout).
type RequestError struct {
	StatusCode int
	Reason     string
	Err        error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%d] %s", e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("request failed: %s", e.Reason)
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a not found response
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *RequestError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the server throttled the request
func (e *RequestError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsTimeout reports whether the exchange was cut short by a deadline
func (e *RequestError) IsTimeout() bool {
	return e.StatusCode == 0 && errors.Is(e.Err, context.DeadlineExceeded)
}

func newJSONError(err error) error {
	return &JSONError{Err: err}
}
