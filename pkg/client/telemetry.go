package client

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/reqflow/go-reqflow/pkg/request"
	"github.com/reqflow/go-reqflow/pkg/resolve"
)

const (
	sendSpanName = "go-reqflow.client.send"
	// extra attributes for DataDog.
	attrSpanKind            = "span.kind"
	attrSpanKindValueClient = "client"
	attrSpanType            = "span.type"
	attrSpanTypeValueHTTP   = "http"
)

type telemetryTracer = trace.Tracer

// WithTelemetry returns a clone of the Client with an OpenTelemetry tracer
// set, every Do call is then wrapped in a client span.
func (c Client) WithTelemetry(tracer trace.Tracer) Client {
	c.tracer = tracer
	return c
}

func (c Client) tracedDo(ctx context.Context, msg request.Message) resolve.Outcome {
	ctx, span := c.tracer.Start(
		ctx,
		sendSpanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(attrSpanKind, attrSpanKindValueClient),
			attribute.String(attrSpanType, attrSpanTypeValueHTTP),
			attribute.String("http.request.method", msg.Method),
			attribute.String("url.full", msg.URL),
		),
	)
	defer span.End()

	outcome := c.do(ctx, msg)
	switch v := outcome.(type) {
	case resolve.RawSuccess:
		span.SetAttributes(attribute.Int("http.response.status_code", v.StatusCode))
	case resolve.RawBadURL:
		span.SetStatus(codes.Error, fmt.Sprintf(`bad url "%s"`, v.URL))
	case resolve.RawTimeout:
		span.SetStatus(codes.Error, "timeout")
	case resolve.RawNetworkError:
		span.RecordError(v.Err)
		span.SetStatus(codes.Error, "network error")
	}
	return outcome
}
