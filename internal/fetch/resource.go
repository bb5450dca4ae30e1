// Package fetch keeps loading/error/data state for a keyed remote read.
//
// A Resource runs one logical request at a time. Start supersedes whatever is
// in flight: the previous context is cancelled and its result is dropped by
// Resolve because its generation no longer matches.
package fetch

import (
	"context"
	"sync"
)

// Func performs the read for key
type Func[K comparable, T any] func(ctx context.Context, key K) (T, error)

// State is a snapshot of the resource
type State[T any] struct {
	Data    T
	Loading bool
	Err     error
}

// Request identifies one started fetch
type Request[K comparable] struct {
	Gen uint64
	Key K
	ctx context.Context
}

// Result is the outcome of a Request
type Result[K comparable, T any] struct {
	Gen  uint64
	Key  K
	Data T
	Err  error
}

// Resource is safe for concurrent use
type Resource[K comparable, T any] struct {
	mu      sync.Mutex
	fn      Func[K, T]
	key     K
	started bool
	gen     uint64
	cancel  context.CancelFunc
	state   State[T]
}

// New creates a resource backed by fn
func New[K comparable, T any](fn Func[K, T]) *Resource[K, T] {
	return &Resource[K, T]{fn: fn}
}

// Start begins a fetch for key, cancelling any in-flight fetch
func (r *Resource[K, T]) Start(key K) Request[K] {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())

	r.gen++
	r.key = key
	r.started = true
	r.cancel = cancel
	r.state.Loading = true
	r.state.Err = nil

	return Request[K]{Gen: r.gen, Key: key, ctx: ctx}
}

// Refetch restarts the fetch for the current key.
// The second return is false when nothing was ever started.
func (r *Resource[K, T]) Refetch() (Request[K], bool) {
	r.mu.Lock()
	key, started := r.key, r.started
	r.mu.Unlock()

	if !started {
		return Request[K]{}, false
	}
	return r.Start(key), true
}

// Run executes req. It blocks, so callers run it off the UI loop.
func (r *Resource[K, T]) Run(req Request[K]) Result[K, T] {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := r.fn(ctx, req.Key)
	return Result[K, T]{Gen: req.Gen, Key: req.Key, Data: data, Err: err}
}

// Resolve applies res if it belongs to the latest request.
// It reports whether the state changed.
func (r *Resource[K, T]) Resolve(res Result[K, T]) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.Gen != r.gen || !r.state.Loading {
		return false
	}

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}

	var zero T
	r.state.Loading = false
	if res.Err != nil {
		r.state.Err = res.Err
		r.state.Data = zero
	} else {
		r.state.Err = nil
		r.state.Data = res.Data
	}
	return true
}

// Cancel abandons the in-flight fetch, if any
func (r *Resource[K, T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	if r.state.Loading {
		// bump so the abandoned result is ignored
		r.gen++
		r.state.Loading = false
	}
}

// State returns the current snapshot
func (r *Resource[K, T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Key returns the key of the latest request
func (r *Resource[K, T]) Key() K {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.key
}

// Generation returns the number of requests started so far
func (r *Resource[K, T]) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}
