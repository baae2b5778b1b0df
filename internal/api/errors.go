package api

import (
	"errors"
	"fmt"
)

// TransportError means the request never produced an HTTP response:
// DNS failure, refused connection, timeout or a cancelled context.
type TransportError struct {
	Method string
	Path   string
	Cause  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("connection error: %s %s: %v", e.Method, e.Path, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// RequestFailedError means the server answered with a non-success status,
// or a job mutation answered 2xx without status "success".
type RequestFailedError struct {
	Method     string
	Path       string
	StatusCode int
	StatusText string
	Detail     string
}

func (e *RequestFailedError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API request failed: %s: %s", e.StatusText, e.Detail)
	}
	return fmt.Sprintf("API request failed: %s", e.StatusText)
}

// DecodeError means a 2xx body could not be decoded into the expected shape.
type DecodeError struct {
	Method string
	Path   string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error: %s %s: %v", e.Method, e.Path, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// StatusCode returns the HTTP status of a RequestFailedError in err's chain, or 0.
func StatusCode(err error) int {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.StatusCode
	}
	return 0
}
