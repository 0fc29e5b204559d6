package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork     = errors.New("network unavailable")
	ErrAuthExpired = errors.New("session expired")
)

// NetworkError wraps a failure to reach the server or read its answer.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ApplicationError is a non-2xx answer other than 401. Message is the
// response body text as sent by the server.
type ApplicationError struct {
	Status  int
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}
