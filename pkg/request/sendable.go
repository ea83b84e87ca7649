package request

import (
	"context"
)

// Sendable is anything that can be dispatched through a Sender.
// TypedSpec implements it, the client concurrency groups consume it.
type Sendable interface {
	SendOrErr(ctx context.Context, sender Sender) error
}

// DefinitionError can be used as the Sendable interface.
// The wrapped error is returned when the request is sent, so a mistake made
// while defining a request is checked only once, in one place.
type DefinitionError struct {
	error
}

// NewDefinitionError wraps a definition-time error as a Sendable.
func NewDefinitionError(err error) Sendable {
	return DefinitionError{error: err}
}

func (v DefinitionError) SendOrErr(_ context.Context, _ Sender) error {
	return v
}

func (v DefinitionError) Unwrap() error {
	return v.error
}
