package client

import (
	"os"

	"github.com/jarcoal/httpmock"
)

var testTransport = DefaultTransport() //nolint:gochecknoglobals

// NewTestClient creates the Client for tests.
//
// If the TEST_HTTP_CLIENT_VERBOSE environment variable is set to "true",
// then the request lifecycle is logged to stdout.
func NewTestClient() Client {
	verbose := LogTracer(os.Stdout)
	return New().
		WithTransport(testTransport).
		WithTrace(func() *Trace {
			if os.Getenv("TEST_HTTP_CLIENT_VERBOSE") == "true" { //nolint:forbidigo
				return verbose()
			}
			return nil
		})
}

// NewMockedClient creates the Client with mocked HTTP transport.
func NewMockedClient() (Client, *httpmock.MockTransport) {
	mockTransport := httpmock.NewMockTransport()
	return NewTestClient().WithTransport(mockTransport), mockTransport
}
