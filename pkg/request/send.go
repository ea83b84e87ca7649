package request

import (
	"context"
	"fmt"

	"github.com/reqflow/go-reqflow/pkg/resolve"
)

// Sender dispatches a finalized Message and reports the raw outcome.
// The client.Client is a default implementation based on the standard
// net/http package. Custom senders (mocks, recorders) only need to
// produce a resolve.Outcome.
type Sender interface {
	Do(ctx context.Context, msg Message) resolve.Outcome
}

// Send finalizes the spec, dispatches it through the sender and resolves
// the outcome: successReader decodes 2xx bodies, errorReader decodes the
// rest. See resolve.Resolve for the exact classification contract.
//
// Every failure is returned as a value from the resolve error taxonomy,
// nothing panics past this boundary for transport or decoding problems.
func Send[R, E any](ctx context.Context, sender Sender, spec Spec, successReader resolve.Reader[R], errorReader resolve.Reader[E], opts ...resolve.Option) (resolve.Response[R], error) {
	if sender == nil {
		panic(fmt.Errorf("sender must not be nil"))
	}
	outcome := sender.Do(ctx, spec.Message())
	return resolve.Resolve(outcome, successReader, errorReader, opts...)
}

// TypedSpec binds a Spec to the success reader producing the R type.
// It is created by Expect. The bound spec shares every field of the
// original, only the success decoding strategy is attached.
type TypedSpec[R any] struct {
	spec   Spec
	reader resolve.Reader[R]
}

// Expect attaches the success-path decoding strategy to the spec.
// Attaching a different reader changes the declared result type.
func Expect[R any](spec Spec, reader resolve.Reader[R]) TypedSpec[R] {
	if reader == nil {
		panic(fmt.Errorf("reader must not be nil"))
	}
	return TypedSpec[R]{spec: spec, reader: reader}
}

// ExpectNothing binds the spec to a reader that discards the body,
// the "accept nothing" default of a fresh spec.
func ExpectNothing(spec Spec) TypedSpec[resolve.NoBody] {
	return Expect[resolve.NoBody](spec, resolve.IgnoreReader)
}

// Spec returns the underlying untyped spec.
func (t TypedSpec[R]) Spec() Spec {
	return t.spec
}

// Send dispatches the request. Error bodies are kept as plain strings,
// use SendTyped to decode them into a structured type.
func (t TypedSpec[R]) Send(ctx context.Context, sender Sender, opts ...resolve.Option) (resolve.Response[R], error) {
	return Send[R, string](ctx, sender, t.spec, t.reader, resolve.StringReader, opts...)
}

// SendOrErr dispatches the request and returns only the error,
// it implements the Sendable interface.
func (t TypedSpec[R]) SendOrErr(ctx context.Context, sender Sender) error {
	_, err := t.Send(ctx, sender)
	return err
}

// SendTyped dispatches a typed spec with a structured error reader,
// bad-status payloads decode into the E type.
func SendTyped[R, E any](ctx context.Context, sender Sender, spec TypedSpec[R], errorReader resolve.Reader[E], opts ...resolve.Option) (resolve.Response[R], error) {
	return Send[R, E](ctx, sender, spec.spec, spec.reader, errorReader, opts...)
}
