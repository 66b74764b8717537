package api

import "fmt"

// NetworkError wraps a transport-level failure (connection refused, timeout,
// cancelled context). The request never produced an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-2xx response. Body holds the raw response body for
// diagnostics.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.Status)
}

// ParseError is a 2xx response whose body could not be decoded into the
// expected shape. Body holds the raw response body for diagnostics.
type ParseError struct {
	Body string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed response body: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
