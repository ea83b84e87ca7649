// Package decode unwraps compressed HTTP response bodies.
package decode

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// Body wraps the response body with a decompressing reader according to the
// Content-Encoding header value. Unknown encodings pass through unchanged.
func Body(body io.ReadCloser, contentEncoding string) (io.ReadCloser, error) {
	switch strings.ToLower(contentEncoding) {
	case "gzip":
		v, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("cannot decode gzip: %w", err)
		}
		return v, nil
	case "br":
		return io.NopCloser(brotli.NewReader(body)), nil
	default:
		return body, nil
	}
}
