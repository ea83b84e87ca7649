// Package resolve classifies raw transport outcomes into typed results.
//
// A transport hands over an Outcome, the caller supplies two body readers
// and the Resolve function returns either a Response with the decoded
// success value, or an error from the closed taxonomy in error.go.
//
// Resolve performs no I/O and keeps no state between calls, so it can be
// tested without a network. The client.Client produces Outcome values from
// real HTTP exchanges.
package resolve

import "net/http"

// Outcome is the raw result handed back by a transport, before
// classification. It is a closed set: RawSuccess, RawBadURL, RawTimeout
// and RawNetworkError.
type Outcome interface {
	outcome()
}

// RawSuccess reports that the transport completed and the server replied,
// with any status code, including codes outside the 2xx range.
type RawSuccess struct {
	StatusCode int
	StatusText string
	Header     http.Header
	URL        string // final URL actually requested
	Body       string
}

// RawBadURL reports that the request could not be dispatched at all.
type RawBadURL struct {
	URL string
}

// RawTimeout reports that no response arrived within the configured timeout.
type RawTimeout struct{}

// RawNetworkError reports a transport-level failure, e.g. DNS resolution
// or a refused connection.
type RawNetworkError struct {
	Err error
}

func (RawSuccess) outcome()      {}
func (RawBadURL) outcome()       {}
func (RawTimeout) outcome()      {}
func (RawNetworkError) outcome() {}
