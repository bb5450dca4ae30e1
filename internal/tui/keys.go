package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/examcli/internal/keybinds"
	"github.com/studiowebux/examcli/internal/types"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextGlobal, msg.String()); ok && action == keybinds.ActionQuitForce {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeList:
		return m.handleListKeys(msg)
	case ModeCreate:
		return m.handleCreateKeys(msg)
	case ModeDetail:
		return m.handleDetailKeys(msg)
	case ModeRecent:
		return m.handleRecentKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	return nil
}

// handleListKeys handles keyboard input on the exam list
func (m *Model) handleListKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextList, msg.String())
	if partial || !ok {
		return nil
	}

	// any handled key clears a stale footer error
	m.errorMsg = ""

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionNextTab:
		return m.selectTab(m.view.NextTab())
	case keybinds.ActionPrevTab:
		return m.selectTab(m.view.PrevTab())
	case keybinds.ActionTabPreparing:
		return m.selectTab(m.view.SelectTab(types.StatusPreparing))
	case keybinds.ActionTabPrepared:
		return m.selectTab(m.view.SelectTab(types.StatusPrepared))

	case keybinds.ActionNavigateUp:
		m.moveSelection(-1)
	case keybinds.ActionNavigateDown:
		m.moveSelection(1)
	case keybinds.ActionGoToTop:
		m.moveSelection(-len(m.visibleExams()))
	case keybinds.ActionGoToBottom:
		m.moveSelection(len(m.visibleExams()))

	case keybinds.ActionOpenExam:
		return m.openSelected()
	case keybinds.ActionCreateExam:
		m.openCreate()
	case keybinds.ActionRefresh:
		return m.refetchList()
	case keybinds.ActionOpenRecent:
		return m.openRecent()
	case keybinds.ActionOpenHelp:
		m.openHelp()
	}

	return nil
}

func (m *Model) openHelp() {
	m.helpReturn = m.mode
	m.setMode(ModeHelp)
	m.modalView.SetContent(m.helpContent())
	m.modalView.GotoTop()
}

// handleHelpKeys handles keyboard input in the help viewer
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextHelp, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.setMode(m.helpReturn)
	case keybinds.ActionNavigateUp:
		m.modalView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.modalView.ScrollDown(1)
	}
	return nil
}
