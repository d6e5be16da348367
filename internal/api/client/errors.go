package client

import "fmt"

// HTTPError is a non-2xx response whose body carried no usable JSON record.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError means no response arrived: connection refused, reset, timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError is a 2xx response whose body is not the expected JSON.
type DecodeError struct {
	StatusCode int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
