package client_test

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqflow/go-reqflow/pkg/client"
	"github.com/reqflow/go-reqflow/pkg/request"
	"github.com/reqflow/go-reqflow/pkg/resolve"
)

func TestWaitGroup(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", `https://example.com/ok`, httpmock.NewStringResponder(200, "ok"))

	wg := client.NewWaitGroup(context.Background(), c)
	for i := 0; i < 10; i++ {
		wg.Send(request.Expect(request.Get("https://example.com/ok"), resolve.StringReader))
	}
	require.NoError(t, wg.Wait())
	assert.Equal(t, 10, transport.GetCallCountInfo()["GET https://example.com/ok"])
}

func TestWaitGroup_CollectAllErrors(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", `https://example.com/ok`, httpmock.NewStringResponder(200, "ok"))
	transport.RegisterResponder("GET", `https://example.com/fail`, httpmock.NewStringResponder(500, "boom"))

	wg := client.NewWaitGroup(context.Background(), c)
	for i := 0; i < 3; i++ {
		wg.Send(request.Expect(request.Get("https://example.com/fail"), resolve.StringReader))
		wg.Send(request.Expect(request.Get("https://example.com/ok"), resolve.StringReader))
	}

	err := wg.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 errors occurred")

	// All requests were sent despite the errors
	assert.Equal(t, 3, transport.GetCallCountInfo()["GET https://example.com/ok"])
	assert.Equal(t, 3, transport.GetCallCountInfo()["GET https://example.com/fail"])
}

func TestWaitGroup_SingleErrorUnwrapped(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder("GET", `https://example.com/fail`, httpmock.NewStringResponder(404, "missing"))

	wg := client.NewWaitGroup(context.Background(), c)
	wg.Send(request.Expect(request.Get("https://example.com/fail"), resolve.StringReader))

	err := wg.Wait()
	require.Error(t, err)
	// A lone failure is returned as-is, not wrapped in a multierror
	var badStatus *resolve.BadStatusError[string]
	require.ErrorAs(t, err, &badStatus)
	assert.Equal(t, 404, badStatus.Response.StatusCode)
}

func TestWaitGroup_Empty(t *testing.T) {
	t.Parallel()
	c, _ := client.NewMockedClient()
	wg := client.NewWaitGroup(context.Background(), c)
	assert.NoError(t, wg.Wait())
}
