package client

import (
	"context"

	"github.com/reqflow/go-reqflow/pkg/request"
)

// ParallelRequests wraps several requests to one request.Sendable interface.
type ParallelRequests []request.Sendable

// Parallel wraps parallel requests to one request.Sendable interface.
func Parallel(requests ...request.Sendable) ParallelRequests {
	return requests
}

func (v ParallelRequests) SendOrErr(ctx context.Context, sender request.Sender) error {
	wg := NewWaitGroup(ctx, sender)
	for _, r := range v {
		wg.Send(r)
	}
	return wg.Wait()
}
