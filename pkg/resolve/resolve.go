package resolve

import (
	"fmt"
)

// Option configures a single resolution.
type Option func(*policy)

type policy struct {
	allowZeroStatus bool
}

// AllowZeroStatus treats a zero status code as a success candidate:
// the body is handed to the success reader and a decode failure is final,
// the error reader is never consulted. Disabled by default, a zero status
// then follows the normal bad-status path.
func AllowZeroStatus() Option {
	return func(p *policy) {
		p.allowZeroStatus = true
	}
}

// Resolve classifies a transport outcome into a success response or an error
// from the closed taxonomy, see error.go.
//
// Only the RawSuccess outcome invokes a reader, and exactly one of the two
// readers runs, at most once: successReader for status codes 200-299,
// errorReader for everything else. A reader failure maps to DecodingError,
// the other reader is never tried as a fallback.
//
// Resolve is a pure function, resolving the same outcome with the same
// readers twice yields equal results.
func Resolve[A, B any](outcome Outcome, successReader Reader[A], errorReader Reader[B], opts ...Option) (Response[A], error) {
	if successReader == nil || errorReader == nil {
		panic(fmt.Errorf("body readers must not be nil"))
	}

	p := policy{}
	for _, o := range opts {
		o(&p)
	}

	switch v := outcome.(type) {
	case RawBadURL:
		return Response[A]{}, &BadURLError{URL: v.URL}
	case RawTimeout:
		return Response[A]{}, &TimeoutError{}
	case RawNetworkError:
		return Response[A]{}, &NetworkError{Err: v.Err}
	case RawSuccess:
		return resolveReply(v, successReader, errorReader, p)
	default:
		panic(fmt.Errorf("unexpected outcome type %T", outcome))
	}
}

func resolveReply[A, B any](raw RawSuccess, successReader Reader[A], errorReader Reader[B], p policy) (Response[A], error) {
	isSuccessStatus := raw.StatusCode >= 200 && raw.StatusCode < 300
	if p.allowZeroStatus && raw.StatusCode == 0 {
		isSuccessStatus = true
	}

	if isSuccessStatus {
		data, err := successReader(raw.Body)
		if err != nil {
			return Response[A]{}, &DecodingError{Message: err.Error()}
		}
		return Response[A]{
			Data:       data,
			StatusCode: raw.StatusCode,
			StatusText: raw.StatusText,
			Header:     raw.Header,
			URL:        raw.URL,
		}, nil
	}

	data, err := errorReader(raw.Body)
	if err != nil {
		return Response[A]{}, &DecodingError{Message: err.Error()}
	}
	return Response[A]{}, &BadStatusError[B]{
		Response: Response[B]{
			Data:       data,
			StatusCode: raw.StatusCode,
			StatusText: raw.StatusText,
			Header:     raw.Header,
			URL:        raw.URL,
		},
	}
}
