package client

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"sync/atomic"
	"time"

	"github.com/reqflow/go-reqflow/pkg/request"
	"github.com/reqflow/go-reqflow/pkg/resolve"
)

// Trace is a set of hooks to run at various stages of an outgoing request.
type Trace struct {
	httptrace.ClientTrace // native, low level trace
	// GotRequest is called when Client.Do method is called.
	GotRequest func(msg request.Message)
	// HTTPRequestStart is called when the request begins. It includes redirects.
	HTTPRequestStart func(request *http.Request)
	// HTTPRequestDone is called when the request completes. It includes redirects.
	HTTPRequestDone func(response *http.Response, err error)
	// RequestProcessed is called when the outcome has been classified.
	RequestProcessed func(outcome resolve.Outcome)
}

// TraceFactory creates Trace hooks for a request.
type TraceFactory func() *Trace

type logTrace struct {
	Trace
	wr io.Writer
}

// LogTracer writes a line per request lifecycle event to the writer.
func LogTracer(wr io.Writer) TraceFactory {
	var idGenerator uint64
	return func() *Trace {
		requestID := atomic.AddUint64(&idGenerator, 1)

		var req *http.Request
		var connStartTime time.Time
		var startTime time.Time
		var statusCode int

		t := &logTrace{wr: wr}
		t.ConnectStart = func(network, addr string) {
			connStartTime = time.Now()
		}
		t.GotConn = func(info httptrace.GotConnInfo) {
			var infoStr string
			if info.Reused {
				if info.WasIdle {
					infoStr = "reused conn"
				} else {
					infoStr = fmt.Sprintf("reused conn (was idle=%s)", info.IdleTime)
				}
			} else {
				infoStr = fmt.Sprintf("new conn | %s", time.Since(connStartTime))
			}
			t.log(requestID, fmt.Sprintf(`CONN  %s "%s" | %s`, req.Method, req.URL.String(), infoStr))
		}
		t.GotRequest = func(msg request.Message) {
			t.log(requestID, fmt.Sprintf(`SEND  %s "%s"`, msg.Method, msg.URL))
		}
		t.HTTPRequestStart = func(r *http.Request) {
			req = r
			startTime = time.Now()
			t.log(requestID, fmt.Sprintf(`START %s "%s"`, req.Method, req.URL.String()))
		}
		t.HTTPRequestDone = func(r *http.Response, err error) {
			var errorStr string
			if err == nil {
				statusCode = r.StatusCode
			} else {
				errorStr = fmt.Sprintf(" | error=%s", err)
			}
			t.log(requestID, fmt.Sprintf(`DONE  %s "%s" | %d | %s%s`, req.Method, req.URL.String(), statusCode, time.Since(startTime).String(), errorStr))
		}
		t.RequestProcessed = func(outcome resolve.Outcome) {
			t.log(requestID, fmt.Sprintf(`BODY  %s`, outcomeString(outcome)))
		}
		return &t.Trace
	}
}

func (t *logTrace) log(requestID uint64, a ...any) {
	a = append([]any{fmt.Sprintf("HTTP_REQUEST[%04d]", requestID)}, a...)
	fmt.Fprintln(t.wr, a...)
}

func outcomeString(outcome resolve.Outcome) string {
	switch v := outcome.(type) {
	case resolve.RawSuccess:
		return fmt.Sprintf(`reply %d "%s" | %d bytes`, v.StatusCode, v.URL, len(v.Body))
	case resolve.RawBadURL:
		return fmt.Sprintf(`bad url "%s"`, v.URL)
	case resolve.RawTimeout:
		return "timeout"
	case resolve.RawNetworkError:
		return fmt.Sprintf("network error: %s", v.Err)
	default:
		return fmt.Sprintf("%T", outcome)
	}
}
