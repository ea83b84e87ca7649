package resolve

import (
	jsoniter "github.com/json-iterator/go"
)

// json - replacement of the standard encoding/json library, it is faster for larger responses.
var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Reader decodes a raw response body into a typed value or fails with a
// human-readable message. It is a plain function value, synthetic readers
// can be used in tests.
type Reader[T any] func(body string) (T, error)

// NoBody is the result type of IgnoreReader.
type NoBody struct{}

// StringReader passes the body through unchanged. It never fails.
func StringReader(body string) (string, error) {
	return body, nil
}

// IgnoreReader discards the body. It never fails.
func IgnoreReader(_ string) (NoBody, error) {
	return NoBody{}, nil
}

// JSONReader decodes the body as JSON into the T type.
// A decode failure surfaces the parser message.
func JSONReader[T any]() Reader[T] {
	return func(body string) (T, error) {
		var out T
		if err := json.UnmarshalFromString(body, &out); err != nil {
			var empty T
			return empty, err
		}
		return out, nil
	}
}
