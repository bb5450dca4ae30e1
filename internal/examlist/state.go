package examlist

import "github.com/studiowebux/examcli/internal/types"

// State is the list view's local state. Transitions return a new value.
type State struct {
	Tab        types.Status
	CreateOpen bool
}

// NewState returns the initial state for tab (preparing when tab is invalid)
func NewState(tab types.Status) State {
	if _, err := types.ParseStatus(string(tab)); err != nil {
		tab = types.StatusPreparing
	}
	return State{Tab: tab}
}

// SelectTab switches the status filter
func (s State) SelectTab(tab types.Status) State {
	s.Tab = tab
	return s
}

// NextTab cycles forward through the tabs
func (s State) NextTab() State {
	return s.SelectTab(cycle(s.Tab, 1))
}

// PrevTab cycles backward through the tabs
func (s State) PrevTab() State {
	return s.SelectTab(cycle(s.Tab, -1))
}

// OpenCreate shows the creation dialog
func (s State) OpenCreate() State {
	s.CreateOpen = true
	return s
}

// CloseCreate hides the creation dialog
func (s State) CloseCreate() State {
	s.CreateOpen = false
	return s
}

func cycle(tab types.Status, delta int) types.Status {
	n := len(types.AllStatuses)
	for i, st := range types.AllStatuses {
		if st == tab {
			return types.AllStatuses[((i+delta)%n+n)%n]
		}
	}
	return types.StatusPreparing
}
