package examlist

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/studiowebux/examcli/internal/types"
)

func TestNewState_Defaults(t *testing.T) {
	s := NewState("")
	assert.Equal(t, types.StatusPreparing, s.Tab)
	assert.False(t, s.CreateOpen)

	assert.Equal(t, types.StatusPrepared, NewState(types.StatusPrepared).Tab)
	assert.Equal(t, types.StatusPreparing, NewState("archived").Tab)
}

func TestState_TransitionsArePure(t *testing.T) {
	orig := NewState(types.StatusPreparing)

	switched := orig.SelectTab(types.StatusPrepared)
	opened := orig.OpenCreate()

	assert.Equal(t, types.StatusPreparing, orig.Tab)
	assert.False(t, orig.CreateOpen)
	assert.Equal(t, types.StatusPrepared, switched.Tab)
	assert.True(t, opened.CreateOpen)
	assert.False(t, opened.CloseCreate().CreateOpen)
}

func TestState_CycleTabs(t *testing.T) {
	s := NewState(types.StatusPreparing)

	assert.Equal(t, types.StatusPrepared, s.NextTab().Tab)
	assert.Equal(t, types.StatusPreparing, s.NextTab().NextTab().Tab)
	assert.Equal(t, types.StatusPrepared, s.PrevTab().Tab)
}

func TestSelectBranch(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		loading bool
		err     error
		count   int
		want    Branch
	}{
		{"loading wins over everything", true, boom, 3, BranchLoading},
		{"loading with nothing", true, nil, 0, BranchLoading},
		{"error wins over stale data", false, boom, 3, BranchError},
		{"error with no data", false, boom, 0, BranchError},
		{"populated", false, nil, 2, BranchPopulated},
		{"empty", false, nil, 0, BranchEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectBranch(tt.loading, tt.err, tt.count))
		})
	}
}

func TestEmptyStateFor(t *testing.T) {
	preparing := EmptyStateFor(types.StatusPreparing)
	assert.True(t, preparing.ShowCreateAction)
	assert.Equal(t, "Create your first exam to get started with building comprehensive assessments.", preparing.Message)

	prepared := EmptyStateFor(types.StatusPrepared)
	assert.False(t, prepared.ShowCreateAction)
	assert.Contains(t, prepared.Message, "No exams have been marked as prepared yet")
}

func TestBranchString(t *testing.T) {
	assert.Equal(t, "loading", BranchLoading.String())
	assert.Equal(t, "empty", BranchEmpty.String())
	assert.Equal(t, "unknown", Branch(42).String())
}
