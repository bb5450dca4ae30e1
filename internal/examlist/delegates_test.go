package examlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreationDelegate_OnSuccessRefetchesThenCloses(t *testing.T) {
	var calls []string
	d := CreationDelegate{
		Refetch: func() { calls = append(calls, "refetch") },
		Close:   func() { calls = append(calls, "close") },
	}

	d.OnSuccess()

	assert.Equal(t, []string{"refetch", "close"}, calls)
}

func TestCreationDelegate_OnCloseDoesNotRefetch(t *testing.T) {
	var calls []string
	d := CreationDelegate{
		Refetch: func() { calls = append(calls, "refetch") },
		Close:   func() { calls = append(calls, "close") },
	}

	d.OnClose()

	assert.Equal(t, []string{"close"}, calls)
}

func TestNavigationDelegate_SelectNavigatesOnce(t *testing.T) {
	var paths []string
	d := NavigationDelegate{Navigate: func(p string) { paths = append(paths, p) }}

	d.Select(42)

	assert.Equal(t, []string{"/exam/42"}, paths)
}

func TestDelegates_NilCallbacks(t *testing.T) {
	assert.NotPanics(t, func() {
		CreationDelegate{}.OnSuccess()
		CreationDelegate{}.OnClose()
		NavigationDelegate{}.Select(1)
	})
}
