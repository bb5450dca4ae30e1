package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/examcli/internal/keybinds"
	"github.com/studiowebux/examcli/internal/router"
)

// recentLimit caps the recently viewed modal
const recentLimit = 20

func (m *Model) openRecent() tea.Cmd {
	m.setMode(ModeRecent)
	m.recentIndex = 0
	m.modalView.GotoTop()
	return m.loadRecent()
}

func (m *Model) loadRecent() tea.Cmd {
	store := m.recent
	if store == nil {
		return func() tea.Msg {
			return recentLoadedMsg{err: fmt.Errorf("history is unavailable")}
		}
	}
	return func() tea.Msg {
		entries, err := store.Recent(recentLimit)
		return recentLoadedMsg{entries: entries, err: err}
	}
}

// handleRecentKeys handles keyboard input in the recently viewed modal
func (m *Model) handleRecentKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keybinds.Match(keybinds.ContextRecent, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionCloseModal:
		m.setMode(ModeList)

	case keybinds.ActionNavigateDown:
		if len(m.recentEntries) > 0 {
			m.recentIndex = (m.recentIndex + 1) % len(m.recentEntries)
		}

	case keybinds.ActionNavigateUp:
		if len(m.recentEntries) > 0 {
			m.recentIndex = (m.recentIndex - 1 + len(m.recentEntries)) % len(m.recentEntries)
		}

	case keybinds.ActionOpenExam:
		if len(m.recentEntries) == 0 {
			return nil
		}
		entry := m.recentEntries[m.recentIndex]
		m.setMode(ModeList)
		return m.navigate(router.DetailPath(entry.ExamID))

	case keybinds.ActionHistoryClear:
		if m.recent == nil {
			return nil
		}
		if err := m.recent.Clear(); err != nil {
			m.recentErr = err.Error()
			return nil
		}
		m.recentEntries = nil
		m.recentIndex = 0
		return m.setStatusMessage("Recently viewed cleared")
	}

	return nil
}

// renderRecentModal renders the recently viewed exams
func (m Model) renderRecentModal() string {
	var content strings.Builder

	switch {
	case m.recentErr != "":
		content.WriteString(styleError.Render(m.recentErr))
	case len(m.recentEntries) == 0:
		content.WriteString(styleSubtle.Render("No recently viewed exams"))
	default:
		for i, entry := range m.recentEntries {
			line := fmt.Sprintf("%2d. %-40s %s  %s",
				i+1,
				truncateText(entry.Title, 40),
				renderStatusBadge(entry.Status),
				styleSubtle.Render(fmt.Sprintf("%s (%dx)", entry.ViewedAt.Format("Jan 02 15:04"), entry.ViewCount)),
			)
			if i == m.recentIndex {
				line = styleSelected.Render(line)
			}
			content.WriteString(line)
			content.WriteString("\n")
		}
	}

	footer := "enter: open | C: clear | esc: close"
	width := min(90, m.width-ModalWidthMargin)
	height := min(recentLimit+10, m.height-ModalHeightMargin)
	return m.renderModalWithFooterAndScroll("Recently Viewed", content.String(), footer, width, height, m.recentIndex)
}
