package resolve

import (
	"fmt"
)

// Resolve returns errors from a closed set:
// BadURLError, TimeoutError, NetworkError, BadStatusError and DecodingError.
// Match concrete types with errors.As, e.g.:
//
//	var badStatus *resolve.BadStatusError[MyAPIError]
//	if errors.As(err, &badStatus) {
//	    code := badStatus.Response.StatusCode
//	}

// BadURLError - the URL could not be dispatched at all.
type BadURLError struct {
	URL string
}

func (e *BadURLError) Error() string {
	return fmt.Sprintf(`bad url "%s"`, e.URL)
}

// TimeoutError - no response arrived within the configured timeout.
type TimeoutError struct{}

func (e *TimeoutError) Error() string {
	return "request timeout"
}

// NetworkError - transport-level failure, e.g. DNS or connection refused.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "network error"
	}
	return fmt.Sprintf("network error: %s", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// BadStatusError - the server responded outside the 2xx range.
// It carries the decoded error payload together with the full response
// metadata: status, headers and the final URL.
type BadStatusError[E any] struct {
	Response Response[E]
}

func (e *BadStatusError[E]) Error() string {
	return fmt.Sprintf(`request to "%s" failed: %d %s`, e.Response.URL, e.Response.StatusCode, e.Response.StatusText)
}

// DecodingError - a body reader failed to decode the body it was given.
// It carries the reader message only, response metadata is not attached,
// even when the HTTP status was a success.
type DecodingError struct {
	Message string
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("cannot decode response body: %s", e.Message)
}
