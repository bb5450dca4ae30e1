/*
Package tui implements the terminal user interface for examcli.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state, messages and the Update loop
  - keys.go: Keyboard input handling and keybind routing
  - list.go: Tab selection, list fetching and navigation to the detail screen
  - render.go: Tabs, exam cards and the empty, loading and error branches
  - create_modal.go: The create exam dialog
  - detail_view.go: The exam detail screen
  - recent_modal.go: Recently viewed exams backed by the history store

# Data Flow

List and detail data are owned by fetch.Resource values. Every fetch carries
a generation, and results from superseded fetches are dropped, so switching
tabs quickly never shows the wrong tab's exams.

The create dialog and list selection hand their outcomes to the delegates in
package examlist. A successful create refetches the list once and closes the
dialog. Selecting an exam navigates to its detail route exactly once.

# Keybind System

Keybinds are managed through the keybinds.Registry:
  - Context-aware bindings (global, list, create, detail, recent, help)
  - User-customizable via keybinds.yaml
  - Reserved keys protection

# Threading Model

The TUI runs in a single goroutine (Bubble Tea's event loop). HTTP calls and
history reads run inside tea.Cmd functions and report back as messages.

# Example Usage

	m, err := tui.New(tui.Options{Client: client, Tab: types.StatusPreparing})
	if err != nil {
		return err
	}
	p := tea.NewProgram(&m, tea.WithAltScreen())
	_, err = p.Run()
*/
package tui
