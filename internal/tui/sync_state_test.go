package tui

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestRequestState_Cancel(t *testing.T) {
	state := &RequestState{}
	ctx, cancel := context.WithCancel(context.Background())

	state.SetCancel(cancel)
	state.Cancel()

	// Verify context was cancelled
	select {
	case <-ctx.Done():
		// Expected
	case <-time.After(100 * time.Millisecond):
		t.Error("Context was not cancelled")
	}
	AssertModelField(t, "Active()", state.Active(), false)
}

func TestRequestState_CancelIdempotent(t *testing.T) {
	state := &RequestState{}
	ctx, cancel := context.WithCancel(context.Background())

	state.SetCancel(cancel)

	// Multiple cancels should be safe
	state.Cancel()
	state.Cancel()
	state.Cancel()

	select {
	case <-ctx.Done():
		// Expected
	default:
		t.Error("Context should be cancelled")
	}
}

func TestRequestState_CancelWithoutSet(t *testing.T) {
	state := &RequestState{}

	// Cancel when no cancel func set should not panic
	state.Cancel()
	state.Cancel()
}

func TestRequestState_SetCancelSupersedes(t *testing.T) {
	state := &RequestState{}
	first, cancelFirst := context.WithCancel(context.Background())
	second, cancelSecond := context.WithCancel(context.Background())
	defer cancelSecond()

	state.SetCancel(cancelFirst)
	state.SetCancel(cancelSecond)

	if first.Err() == nil {
		t.Error("first context should be cancelled when superseded")
	}
	if second.Err() != nil {
		t.Error("second context should still be active")
	}
	AssertModelField(t, "Active()", state.Active(), true)
}

func TestRequestState_ConcurrentAccess(t *testing.T) {
	state := &RequestState{}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)

		// Writer goroutine
		go func() {
			defer wg.Done()
			_, cancel := context.WithCancel(context.Background())
			defer cancel()
			state.SetCancel(cancel)
		}()

		// Cancel goroutine
		go func() {
			defer wg.Done()
			state.Cancel()
		}()
	}

	wg.Wait()
	// If test completes without panic or data race, success
}
