package tui

import (
	"context"
	"sync"
)

// RequestState tracks the cancel func of the in-flight create request
type RequestState struct {
	mu     sync.Mutex
	cancel context.CancelFunc
}

// SetCancel stores the cancel function, cancelling any previous one
func (r *RequestState) SetCancel(cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
	r.cancel = cancel
}

// Cancel cancels the request if active
func (r *RequestState) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Active reports whether a cancel func is held
func (r *RequestState) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}
