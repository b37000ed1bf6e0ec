package domain

import (
	"errors"
	"fmt"
)

var ErrEmptyID = errors.New("todo id is required")

// ConfigurationError is a deployment fault: the service cannot reach a backend it was never told about.
type ConfigurationError struct {
	Key string
	Err error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration error: %s: %v", e.Key, e.Err)
	}

	return fmt.Sprintf("configuration error: %s is required", e.Key)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

type BackendError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError means the backend answered 2xx with a payload we could not read.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: malformed backend payload: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func IsBackendFailure(err error) bool {
	var backendErr *BackendError
	var transportErr *TransportError
	var decodeErr *DecodeError

	return errors.As(err, &backendErr) || errors.As(err, &transportErr) || errors.As(err, &decodeErr)
}
