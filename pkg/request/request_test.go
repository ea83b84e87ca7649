package request_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/reqflow/go-reqflow/pkg/request"
)

func TestVerbConstructors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		method string
		spec   request.Spec
	}{
		{http.MethodGet, request.Get("/foo")},
		{http.MethodPost, request.Post("/foo")},
		{http.MethodPut, request.Put("/foo")},
		{http.MethodPatch, request.Patch("/foo")},
		{http.MethodDelete, request.Delete("/foo")},
		{http.MethodOptions, request.Options("/foo")},
		{http.MethodTrace, request.Trace("/foo")},
		{http.MethodHead, request.Head("/foo")},
	}
	for _, c := range cases {
		assert.Equal(t, c.method, c.spec.Method())
		assert.Equal(t, "/foo", c.spec.URL())
		assert.Empty(t, c.spec.Headers())
		assert.Equal(t, request.EmptyBody{}, c.spec.BodyValue())
		assert.Zero(t, c.spec.Timeout())
		assert.False(t, c.spec.Credentialed())
		assert.Empty(t, c.spec.QueryParams())
	}
}

func TestSpec_Immutability(t *testing.T) {
	t.Parallel()
	var a, b request.Spec

	// WithHeader
	a = request.Get("/foo")
	a = a.WithHeader("key1", "value1")
	b = a.WithHeader("key2", "value2")
	assert.Equal(t, []request.Pair{{Key: "key1", Value: "value1"}}, a.Headers())
	assert.Equal(t, []request.Pair{{Key: "key2", Value: "value2"}, {Key: "key1", Value: "value1"}}, b.Headers())

	// WithHeaders
	a = request.Get("/foo").WithHeaders([]request.Pair{{Key: "a", Value: "1"}})
	b = a.WithHeaders([]request.Pair{{Key: "b", Value: "2"}, {Key: "c", Value: "3"}})
	assert.Equal(t, []request.Pair{{Key: "a", Value: "1"}}, a.Headers())
	assert.Equal(t, []request.Pair{{Key: "b", Value: "2"}, {Key: "c", Value: "3"}, {Key: "a", Value: "1"}}, b.Headers())

	// WithTimeout
	a = request.Get("/foo").WithTimeout(time.Second)
	b = a.WithTimeout(time.Minute)
	assert.Equal(t, time.Second, a.Timeout())
	assert.Equal(t, time.Minute, b.Timeout())

	// WithCredentials
	a = request.Get("/foo")
	b = a.WithCredentials()
	assert.False(t, a.Credentialed())
	assert.True(t, b.Credentialed())

	// WithQueryParam
	a = request.Get("/foo").WithQueryParam("key1", "value1")
	b = a.WithQueryParam("key2", "value2")
	assert.Equal(t, []request.Pair{{Key: "key1", Value: "value1"}}, a.QueryParams())
	assert.Equal(t, []request.Pair{{Key: "key1", Value: "value1"}, {Key: "key2", Value: "value2"}}, b.QueryParams())

	// WithQueryParams
	a = request.Get("/foo").WithQueryParams([]request.Pair{{Key: "a", Value: "1"}})
	b = a.WithQueryParams([]request.Pair{{Key: "b", Value: "2"}})
	assert.Equal(t, []request.Pair{{Key: "a", Value: "1"}}, a.QueryParams())
	assert.Equal(t, []request.Pair{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, b.QueryParams())

	// WithStringBody
	a = request.Post("/foo").WithStringBody("text/plain", "one")
	b = a.WithStringBody("text/plain", "two")
	assert.Equal(t, request.BytesBody{MIME: "text/plain", Content: []byte("one")}, a.BodyValue())
	assert.Equal(t, request.BytesBody{MIME: "text/plain", Content: []byte("two")}, b.BodyValue())

	// WithJSONBody
	a = request.Post("/foo").WithJSONBody(map[string]string{"n": "1"})
	b = a.WithJSONBody(map[string]string{"n": "2"})
	assert.NotEqual(t, a.BodyValue(), b.BodyValue())
}

func TestSpec_HeaderOrder(t *testing.T) {
	t.Parallel()
	// Most recently added header first, duplicates are kept
	spec := request.Get("/foo").
		WithHeader("A", "1").
		WithHeader("B", "2").
		WithHeader("A", "3")
	assert.Equal(t, []request.Pair{
		{Key: "A", Value: "3"},
		{Key: "B", Value: "2"},
		{Key: "A", Value: "1"},
	}, spec.Headers())
	assert.Equal(t, spec.Headers(), spec.Message().Headers)
}

func TestSpec_SharedBase(t *testing.T) {
	t.Parallel()
	// A partially-built spec can branch without interference
	base := request.Get("https://example.com").WithHeader("Authorization", "token")
	a := base.WithQueryParam("page", "1")
	b := base.WithQueryParam("page", "2").WithCredentials()

	assert.Empty(t, base.QueryParams())
	assert.Equal(t, []request.Pair{{Key: "page", Value: "1"}}, a.QueryParams())
	assert.Equal(t, []request.Pair{{Key: "page", Value: "2"}}, b.QueryParams())
	assert.False(t, a.Credentialed())
	assert.True(t, b.Credentialed())
}
