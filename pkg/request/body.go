package request

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// json - replacement of the standard encoding/json library, it is faster for larger payloads.
var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Body is a request body variant, a closed set: EmptyBody or BytesBody.
// All convenience constructors on Spec reduce to these two cases.
type Body interface {
	body()
}

// EmptyBody is a request without a body.
type EmptyBody struct{}

// BytesBody is raw content together with its MIME type.
type BytesBody struct {
	MIME    string
	Content []byte
}

func (EmptyBody) body() {}
func (BytesBody) body() {}

// Part is a single part of a multipart body.
// A part without Filename and ContentType is encoded as a plain form field.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
}

// StringPart creates a named text part.
func StringPart(name, value string) Part {
	return Part{Name: name, Content: []byte(value)}
}

// BytesPart creates a named file part.
func BytesPart(name, filename, contentType string, content []byte) Part {
	return Part{Name: name, Filename: filename, ContentType: contentType, Content: content}
}

// WithBody sets the request body variant directly.
func (s Spec) WithBody(body Body) Spec {
	if body == nil {
		panic(fmt.Errorf("body must not be nil, use EmptyBody"))
	}
	s.body = body
	return s
}

// WithStringBody sets the request body to the given content and MIME type.
func (s Spec) WithStringBody(mime, content string) Spec {
	s.body = BytesBody{MIME: mime, Content: []byte(content)}
	return s
}

// WithJSONBody encodes the value as JSON and sets the Content-Type to
// "application/json". The value is encoded immediately, an unencodable
// value panics.
func (s Spec) WithJSONBody(value any) Spec {
	content, err := json.Marshal(value)
	if err != nil {
		panic(fmt.Errorf(`cannot encode JSON body: %w`, err))
	}
	s.body = BytesBody{MIME: "application/json", Content: content}
	return s
}

// WithURLEncodedBody sets the body to percent-encoded "key=value" pairs
// joined by "&", spaces encoded as "+", and the Content-Type to
// "application/x-www-form-urlencoded". Pair order is preserved.
func (s Spec) WithURLEncodedBody(pairs []Pair) Spec {
	s.body = BytesBody{
		MIME:    "application/x-www-form-urlencoded",
		Content: []byte(encodePairs(pairs)),
	}
	return s
}

// WithMultipartBody encodes the parts as a "multipart/form-data" body with
// a generated boundary.
func (s Spec) WithMultipartBody(parts ...Part) Spec {
	mime, content := encodeMultipart(parts)
	s.body = BytesBody{MIME: mime, Content: content}
	return s
}

// WithMultipartStringBody encodes each pair as a named string part.
func (s Spec) WithMultipartStringBody(pairs []Pair) Spec {
	parts := make([]Part, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, StringPart(p.Key, p.Value))
	}
	return s.WithMultipartBody(parts...)
}

func encodePairs(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

func encodeMultipart(parts []Part) (mime string, content []byte) {
	var buf bytes.Buffer
	wr := multipart.NewWriter(&buf)
	for _, p := range parts {
		var w io.Writer
		var err error
		if p.Filename == "" && p.ContentType == "" {
			w, err = wr.CreateFormField(p.Name)
		} else {
			h := make(textproto.MIMEHeader)
			if p.Filename == "" {
				h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, p.Name))
			} else {
				h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.Name, p.Filename))
			}
			if p.ContentType != "" {
				h.Set("Content-Type", p.ContentType)
			}
			w, err = wr.CreatePart(h)
		}
		if err != nil {
			panic(fmt.Errorf(`cannot encode multipart body: %w`, err))
		}
		if _, err := w.Write(p.Content); err != nil {
			panic(fmt.Errorf(`cannot encode multipart body: %w`, err))
		}
	}
	if err := wr.Close(); err != nil {
		panic(fmt.Errorf(`cannot encode multipart body: %w`, err))
	}
	return wr.FormDataContentType(), buf.Bytes()
}
