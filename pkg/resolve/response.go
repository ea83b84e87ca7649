package resolve

import "net/http"

// Response carries a decoded body together with the response metadata.
// Header keys are stored as received from the transport, no case
// normalization is applied by this layer.
type Response[T any] struct {
	// Data is the body after successful decoding.
	Data T
	// StatusCode is the HTTP status code.
	StatusCode int
	// StatusText is the reason phrase, e.g. "Not Found".
	StatusText string
	// Header holds the response headers.
	Header http.Header
	// URL is the final URL actually requested.
	URL string
}
