// Package client provides the default request.Sender implementation.
//
// Client is based on the standard net/http package. It resolves relative
// URLs against an optional base URL, applies common headers, decodes gzip
// and brotli response bodies and classifies every transport failure into
// one of the resolve.Outcome cases, so the caller always receives a value,
// never a panic.
//
// Tracing hooks (Trace, LogTracer) and OpenTelemetry spans (WithTelemetry)
// are optional. RunGroup and WaitGroup are helpers for concurrent requests.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptrace"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/reqflow/go-reqflow/pkg/client/decode"
	"github.com/reqflow/go-reqflow/pkg/request"
	"github.com/reqflow/go-reqflow/pkg/resolve"
)

// RequestTimeout - default cap for the whole exchange, overridden per
// request by Spec.WithTimeout.
const RequestTimeout = 30 * time.Second

// Client is a default and configurable implementation of the request.Sender
// interface by Go native http.Client.
type Client struct {
	transport    http.RoundTripper
	baseURL      *url.URL
	header       http.Header
	jar          http.CookieJar
	timeout      time.Duration
	traceFactory TraceFactory
	tracer       telemetryTracer
}

// New creates new HTTP Client.
func New() Client {
	jar, _ := cookiejar.New(nil)
	c := Client{transport: DefaultTransport(), header: make(http.Header), jar: jar, timeout: RequestTimeout}
	c.header.Set("User-Agent", "go-reqflow")
	c.header.Set("Accept-Encoding", "gzip, br")
	return c
}

// WithBaseURL returns a clone of the Client with base url set.
// Relative request URLs are resolved against it.
func (c Client) WithBaseURL(baseURLStr string) Client {
	baseURL, err := url.Parse(baseURLStr)
	if err != nil {
		panic(fmt.Errorf(`base url "%s" is not valid: %w`, baseURLStr, err))
	}
	// Normalize, so baseURL.Parse(...) keeps the full base path
	baseURL.Path = strings.TrimRight(baseURL.Path, "/") + "/"
	c.baseURL = baseURL
	return c
}

// WithUserAgent returns a clone of the Client with user agent set.
func (c Client) WithUserAgent(v string) Client {
	return c.WithHeader("User-Agent", v)
}

// WithHeader returns a clone of the Client with common header set.
func (c Client) WithHeader(key, value string) Client {
	c.header = c.header.Clone()
	c.header.Set(key, value)
	return c
}

// WithHeaders returns a clone of the Client with common headers set.
func (c Client) WithHeaders(headers map[string]string) Client {
	c.header = c.header.Clone()
	for k, v := range headers {
		c.header.Set(k, v)
	}
	return c
}

// WithTransport returns a clone of the Client with a HTTP transport set.
func (c Client) WithTransport(transport http.RoundTripper) Client {
	if transport == nil {
		panic(fmt.Errorf("transport cannot be nil"))
	}
	c.transport = transport
	return c
}

// WithCookieJar returns a clone of the Client with a cookie jar set.
// The jar is attached only to credentialed requests.
func (c Client) WithCookieJar(jar http.CookieJar) Client {
	if jar == nil {
		panic(fmt.Errorf("cookie jar cannot be nil"))
	}
	c.jar = jar
	return c
}

// WithRequestTimeout returns a clone of the Client with the default
// exchange timeout set, zero disables it. A per-request timeout set by
// Spec.WithTimeout takes precedence.
func (c Client) WithRequestTimeout(timeout time.Duration) Client {
	c.timeout = timeout
	return c
}

// WithTrace returns a clone of the Client with Trace hooks set.
func (c Client) WithTrace(fn TraceFactory) Client {
	c.traceFactory = fn
	return c
}

// Do sends the message and classifies the result into a resolve.Outcome,
// it implements the request.Sender interface.
func (c Client) Do(ctx context.Context, msg request.Message) resolve.Outcome {
	// Method cannot be called on an empty value
	if c.transport == nil {
		panic(fmt.Errorf("client value is not initialized"))
	}
	if c.tracer != nil {
		return c.tracedDo(ctx, msg)
	}
	return c.do(ctx, msg)
}

func (c Client) do(ctx context.Context, msg request.Message) (out resolve.Outcome) {
	// Init trace
	var tr *Trace
	if c.traceFactory != nil {
		tr = c.traceFactory()
		if tr != nil {
			ctx = httptrace.WithClientTrace(ctx, &tr.ClientTrace)
			if tr.GotRequest != nil {
				tr.GotRequest(msg)
			}
			if tr.RequestProcessed != nil {
				defer func() {
					tr.RequestProcessed(out)
				}()
			}
		}
	}

	// Convert to absolute url
	var reqURL *url.URL
	var err error
	if c.baseURL == nil {
		reqURL, err = url.Parse(msg.URL)
	} else {
		reqURL, err = c.baseURL.Parse(strings.TrimLeft(msg.URL, "/"))
	}
	if err != nil {
		return resolve.RawBadURL{URL: msg.URL}
	}

	// Create request
	req, err := http.NewRequestWithContext(ctx, msg.Method, reqURL.String(), nil)
	if err != nil {
		return resolve.RawBadURL{URL: reqURL.String()}
	}

	// Global headers
	for k, values := range c.header {
		for _, v := range values {
			req.Header.Set(k, v)
		}
	}

	// Message headers, in order, duplicates preserved most recently added first
	for _, p := range msg.Headers {
		req.Header.Del(p.Key) // clear global values
	}
	for _, p := range msg.Headers {
		req.Header.Add(p.Key, p.Value)
	}

	// Body
	if body, ok := msg.Body.(request.BytesBody); ok {
		if body.MIME != "" && req.Header.Get("Content-Type") == "" {
			req.Header.Set("Content-Type", body.MIME)
		}
		// GetBody factory is used when a redirect requires reading the body more than once.
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body.Content)), nil
		}
		req.Body, _ = req.GetBody()
		req.ContentLength = int64(len(body.Content))
	}

	// Setup native client, the credentialed variant carries the cookie jar
	timeout := msg.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	native := http.Client{
		Timeout:   timeout,
		Transport: roundTripper{trace: tr, wrapped: c.transport},
	}
	if msg.Credentialed {
		native.Jar = c.jar
	}

	// Send request
	res, err := native.Do(req)
	if err != nil {
		return classifySendError(req, err)
	}
	defer res.Body.Close()

	// Process content encoding
	bodyReader, err := decode.Body(res.Body, res.Header.Get("Content-Encoding"))
	if err != nil {
		return resolve.RawNetworkError{Err: fmt.Errorf(`cannot decode response body: %w`, err)}
	}
	bodyBytes, err := io.ReadAll(bodyReader)
	if err != nil {
		return resolve.RawNetworkError{Err: fmt.Errorf(`cannot read response body: %w`, err)}
	}

	finalURL := reqURL.String()
	if res.Request != nil && res.Request.URL != nil {
		finalURL = res.Request.URL.String()
	}

	return resolve.RawSuccess{
		StatusCode: res.StatusCode,
		StatusText: statusText(res),
		Header:     res.Header,
		URL:        finalURL,
		Body:       string(bodyBytes),
	}
}

// classifySendError maps a native client error to a raw outcome.
// An unreachable or refused host is a network error, an exceeded deadline
// is a timeout, a URL the transport refuses to dispatch is a bad url.
func classifySendError(req *http.Request, err error) resolve.Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return resolve.RawTimeout{}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return resolve.RawTimeout{}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg := urlErr.Err.Error()
		if strings.Contains(msg, "unsupported protocol scheme") || strings.Contains(msg, "no Host in request URL") {
			return resolve.RawBadURL{URL: urlErr.URL}
		}
		return resolve.RawNetworkError{Err: fmt.Errorf(`request %s "%s" failed: %w`, strings.ToUpper(urlErr.Op), urlErr.URL, urlErr.Err)}
	}

	return resolve.RawNetworkError{Err: urlError(req, err)}
}

func statusText(res *http.Response) string {
	v := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if v == "" {
		v = http.StatusText(res.StatusCode)
	}
	return v
}

// roundTripper wraps a http.RoundTripper and adds the trace hooks.
type roundTripper struct {
	trace   *Trace
	wrapped http.RoundTripper
}

func (rt roundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.trace != nil && rt.trace.HTTPRequestStart != nil {
		rt.trace.HTTPRequestStart(req)
	}
	res, err := rt.wrapped.RoundTrip(req)
	if rt.trace != nil && rt.trace.HTTPRequestDone != nil {
		rt.trace.HTTPRequestDone(res, err)
	}
	return res, err
}

func urlError(req *http.Request, err error) *url.Error {
	return &url.Error{Op: req.Method, URL: req.URL.String(), Err: err}
}
