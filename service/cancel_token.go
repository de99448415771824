package services

import (
	"context"
	"sync/atomic"
)

// CancelToken marks one search attempt. Cancelling it aborts the attempt's
// request and tells the session not to commit whatever the attempt returns.
type CancelToken struct {
	ctx       context.Context
	stop      context.CancelFunc
	cancelled atomic.Bool
}

func NewCancelToken(parent context.Context) *CancelToken {
	ctx, stop := context.WithCancel(parent)
	return &CancelToken{ctx: ctx, stop: stop}
}

// Context is cancelled when the token is cancelled or released.
func (t *CancelToken) Context() context.Context {
	return t.ctx
}

func (t *CancelToken) Cancel() {
	t.cancelled.Store(true)
	t.stop()
}

func (t *CancelToken) Cancelled() bool {
	return t.cancelled.Load()
}

// release frees the context without marking the token cancelled.
func (t *CancelToken) release() {
	t.stop()
}
