// Package request defines immutable HTTP request specifications.
//
// A Spec is created by a verb constructor (Get, Post, ...) and threaded
// through any number of With* calls. Every With* call returns a new value,
// the receiver is never modified, so partially-built specs can be shared
// and extended concurrently without coordination.
//
// A Spec performs no I/O and no validation, it only accumulates
// configuration. The Message method finalizes it for a Sender, see the
// client package for the default Sender implementation.
package request

import (
	"net/http"
	"slices"
	"time"
)

// Pair is an ordered key-value string pair, used for headers, query
// parameters and form bodies. Unlike a map, a pair list keeps duplicates
// and insertion order.
type Pair struct {
	Key   string
	Value string
}

// Spec is an immutable request specification.
type Spec struct {
	method       string
	url          string
	headers      []Pair // most recently added first
	body         Body
	timeout      time.Duration // zero means no client-side timeout
	credentialed bool
	queryParams  []Pair // in order of addition
}

// Get creates a GET request spec.
func Get(url string) Spec { return newSpec(http.MethodGet, url) }

// Post creates a POST request spec.
func Post(url string) Spec { return newSpec(http.MethodPost, url) }

// Put creates a PUT request spec.
func Put(url string) Spec { return newSpec(http.MethodPut, url) }

// Patch creates a PATCH request spec.
func Patch(url string) Spec { return newSpec(http.MethodPatch, url) }

// Delete creates a DELETE request spec.
func Delete(url string) Spec { return newSpec(http.MethodDelete, url) }

// Options creates an OPTIONS request spec.
func Options(url string) Spec { return newSpec(http.MethodOptions, url) }

// Trace creates a TRACE request spec.
func Trace(url string) Spec { return newSpec(http.MethodTrace, url) }

// Head creates a HEAD request spec.
func Head(url string) Spec { return newSpec(http.MethodHead, url) }

func newSpec(method, url string) Spec {
	return Spec{method: method, url: url, body: EmptyBody{}}
}

// Method returns the HTTP method.
func (s Spec) Method() string {
	return s.method
}

// URL returns the base URL, before the query parameter merge.
func (s Spec) URL() string {
	return s.url
}

// Headers returns the header pairs, most recently added first.
func (s Spec) Headers() []Pair {
	return slices.Clone(s.headers)
}

// BodyValue returns the request body variant.
func (s Spec) BodyValue() Body {
	return s.body
}

// Timeout returns the client-side timeout, zero means none.
func (s Spec) Timeout() time.Duration {
	return s.timeout
}

// Credentialed reports whether the request must include cross-origin
// credentials, see WithCredentials.
func (s Spec) Credentialed() bool {
	return s.credentialed
}

// QueryParams returns the query parameter pairs in order of addition.
func (s Spec) QueryParams() []Pair {
	return slices.Clone(s.queryParams)
}

// WithHeader prepends a single header pair. Duplicate names are kept and
// all of them are sent, the most recently added value first.
func (s Spec) WithHeader(name, value string) Spec {
	s.headers = prependPairs(s.headers, Pair{Key: name, Value: value})
	return s
}

// WithHeaders prepends multiple header pairs, keeping their relative order.
func (s Spec) WithHeaders(pairs []Pair) Spec {
	s.headers = prependPairs(s.headers, pairs...)
	return s
}

// WithTimeout sets the client-side timeout for the whole exchange.
func (s Spec) WithTimeout(timeout time.Duration) Spec {
	s.timeout = timeout
	return s
}

// WithCredentials instructs the transport to include cross-origin
// credentials. The default client attaches its cookie jar only to
// credentialed requests.
func (s Spec) WithCredentials() Spec {
	s.credentialed = true
	return s
}

// WithQueryParam appends a single query parameter.
func (s Spec) WithQueryParam(key, value string) Spec {
	s.queryParams = appendPairs(s.queryParams, Pair{Key: key, Value: value})
	return s
}

// WithQueryParams appends multiple query parameters, previously added
// parameters are kept.
func (s Spec) WithQueryParams(pairs []Pair) Spec {
	s.queryParams = appendPairs(s.queryParams, pairs...)
	return s
}

func prependPairs(old []Pair, pairs ...Pair) []Pair {
	out := make([]Pair, 0, len(old)+len(pairs))
	out = append(out, pairs...)
	out = append(out, old...)
	return out
}

func appendPairs(old []Pair, pairs ...Pair) []Pair {
	out := make([]Pair, 0, len(old)+len(pairs))
	out = append(out, old...)
	out = append(out, pairs...)
	return out
}
