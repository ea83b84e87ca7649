package request_test

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqflow/go-reqflow/pkg/request"
)

func TestWithURLEncodedBody(t *testing.T) {
	t.Parallel()
	spec := request.Post("/foo").WithURLEncodedBody([]request.Pair{
		{Key: "hello", Value: "w orld"},
		{Key: "a&b", Value: "1=2"},
	})

	body, ok := spec.BodyValue().(request.BytesBody)
	require.True(t, ok)
	assert.Equal(t, "application/x-www-form-urlencoded", body.MIME)
	assert.Equal(t, "hello=w+orld&a%26b=1%3D2", string(body.Content))
}

func TestWithJSONBody(t *testing.T) {
	t.Parallel()
	spec := request.Post("/foo").WithJSONBody(map[string]string{"foo": "bar"})

	body, ok := spec.BodyValue().(request.BytesBody)
	require.True(t, ok)
	assert.Equal(t, "application/json", body.MIME)
	assert.JSONEq(t, `{"foo":"bar"}`, string(body.Content))
}

func TestWithJSONBody_UnencodableValuePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		request.Post("/foo").WithJSONBody(make(chan int))
	})
}

func TestWithStringBody(t *testing.T) {
	t.Parallel()
	spec := request.Post("/foo").WithStringBody("text/csv", "a,b\n1,2\n")
	assert.Equal(t, request.BytesBody{MIME: "text/csv", Content: []byte("a,b\n1,2\n")}, spec.BodyValue())
}

func TestWithMultipartStringBody(t *testing.T) {
	t.Parallel()
	spec := request.Post("/foo").WithMultipartStringBody([]request.Pair{
		{Key: "name", Value: "value"},
		{Key: "other", Value: "w orld"},
	})

	body, ok := spec.BodyValue().(request.BytesBody)
	require.True(t, ok)

	mediaType, params, err := mime.ParseMediaType(body.MIME)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)
	require.NotEmpty(t, params["boundary"])

	reader := multipart.NewReader(bytes.NewReader(body.Content), params["boundary"])
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"value"}, form.Value["name"])
	assert.Equal(t, []string{"w orld"}, form.Value["other"])
}

func TestWithMultipartBody_FilePart(t *testing.T) {
	t.Parallel()
	spec := request.Post("/foo").WithMultipartBody(
		request.StringPart("comment", "hi"),
		request.BytesPart("file", "data.bin", "application/octet-stream", []byte{0x1, 0x2}),
	)

	body, ok := spec.BodyValue().(request.BytesBody)
	require.True(t, ok)

	_, params, err := mime.ParseMediaType(body.MIME)
	require.NoError(t, err)
	reader := multipart.NewReader(bytes.NewReader(body.Content), params["boundary"])

	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "comment", part.FormName())
	content, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(content))

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, "data.bin", part.FileName())
	assert.Equal(t, "application/octet-stream", part.Header.Get("Content-Type"))
	content, err = io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x1, 0x2}, content)
}

func TestWithBody_NilPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		request.Post("/foo").WithBody(nil)
	})
}

func TestToFormPairs(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"string": "test",
		"number": 100,
		"slice":  []string{"a", "b", "c"},
		"map":    map[string]string{"k0": "v0", "k1": "v1"},
	}

	expected := []request.Pair{
		{Key: "map[k0]", Value: "v0"},
		{Key: "map[k1]", Value: "v1"},
		{Key: "number", Value: "100"},
		{Key: "slice[0]", Value: "a"},
		{Key: "slice[1]", Value: "b"},
		{Key: "slice[2]", Value: "c"},
		{Key: "string", Value: "test"},
	}
	assert.Equal(t, expected, request.ToFormPairs(data))
}
