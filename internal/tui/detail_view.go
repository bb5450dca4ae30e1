package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/examcli/internal/fetch"
	"github.com/studiowebux/examcli/internal/keybinds"
	"github.com/studiowebux/examcli/internal/router"
	"github.com/studiowebux/examcli/internal/types"
)

// clipboardWrite is swapped in tests
var clipboardWrite = clipboard.WriteAll

func (m *Model) runDetailFetch(req fetch.Request[int64]) tea.Cmd {
	res := m.detail
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return examLoadedMsg{result: res.Run(req)}
	})
}

func (m *Model) afterDetailResolved(res fetch.Result[int64, *types.Exam]) tea.Cmd {
	if res.Err != nil {
		m.logger.WithField("id", res.Key).WithError(res.Err).Warn("exam fetch failed")
		m.detailView.SetContent("")
		return nil
	}

	m.detailView.SetContent(renderExamDetail(*res.Data, m.detailView.Width))
	m.detailView.GotoTop()

	if m.recent == nil {
		return nil
	}
	store, exam, logger := m.recent, *res.Data, m.logger
	return func() tea.Msg {
		if err := store.Record(exam); err != nil {
			logger.WithError(err).Warn("failed to record recently viewed exam")
		}
		return nil
	}
}

// handleDetailKeys handles keyboard input on the detail screen
func (m *Model) handleDetailKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok, partial := m.keybinds.MatchMultiKey(keybinds.ContextDetail, msg.String())
	if partial || !ok {
		return nil
	}

	switch action {
	case keybinds.ActionBack:
		m.back()
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit
	case keybinds.ActionRefresh:
		if req, ok := m.detail.Refetch(); ok {
			return m.runDetailFetch(req)
		}
	case keybinds.ActionCopyToClipboard:
		return m.copyExamJSON()
	case keybinds.ActionOpenHelp:
		m.openHelp()
	case keybinds.ActionNavigateUp:
		m.detailView.ScrollUp(1)
	case keybinds.ActionNavigateDown:
		m.detailView.ScrollDown(1)
	case keybinds.ActionPageUp:
		m.detailView.PageUp()
	case keybinds.ActionPageDown:
		m.detailView.PageDown()
	case keybinds.ActionGoToTop:
		m.detailView.GotoTop()
	case keybinds.ActionGoToBottom:
		m.detailView.GotoBottom()
	}
	return nil
}

func (m *Model) copyExamJSON() tea.Cmd {
	exam := m.detail.State().Data
	if exam == nil {
		return m.setErrorMessage("Nothing to copy yet")
	}

	data, err := json.MarshalIndent(exam, "", "  ")
	if err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to encode exam: %v", err))
	}
	if err := clipboardWrite(string(data)); err != nil {
		return m.setErrorMessage(fmt.Sprintf("Failed to copy: %v", err))
	}
	return m.setStatusMessage("Exam JSON copied to clipboard")
}

// renderExamDetail builds the scrollable detail content
func renderExamDetail(exam types.Exam, width int) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(exam.DisplayTitle()))
	b.WriteString("  ")
	b.WriteString(renderStatusBadge(exam.Status))
	b.WriteString("\n\n")

	row := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(styleSubtle.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	row("ID", fmt.Sprintf("%d", exam.ID))
	row("Subject", exam.Subject)
	if exam.DurationMinutes > 0 {
		row("Duration", fmt.Sprintf("%d min", exam.DurationMinutes))
	}
	if exam.QuestionCount > 0 {
		row("Questions", fmt.Sprintf("%d", exam.QuestionCount))
	}
	if !exam.CreatedAt.IsZero() {
		row("Created", exam.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if !exam.UpdatedAt.IsZero() {
		row("Updated", exam.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	if exam.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(max(20, width)).Render(exam.Description))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("Raw JSON"))
	b.WriteString("\n")
	b.WriteString(highlightJSON(exam))

	return b.String()
}

// highlightJSON pretty prints v with terminal colors, falling back to plain text
func highlightJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err.Error()
	}

	var out strings.Builder
	if err := quick.Highlight(&out, string(data), "json", "terminal256", "monokai"); err != nil {
		return string(data)
	}
	return out.String()
}

// renderDetail renders the detail screen
func (m Model) renderDetail() string {
	route := m.nav.Current()
	st := m.detail.State()

	var body string
	switch {
	case st.Loading:
		body = m.spinner.View() + " Loading exam..."
	case st.Err != nil:
		body = styleError.Render("Failed to load exam.") + "\n\n" + styleSubtle.Render(categorizeError(st.Err))
	default:
		body = m.detailView.View()
	}

	header := styleTitle.Render("Exam") + "  " + styleSubtle.Render(route.Path)
	if route.Screen != router.ScreenExamDetail {
		header = styleTitle.Render("Exam")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGreen).
		Width(m.width - MinimalBorderMargin).
		Height(m.height - MainViewHeightOffset).
		Render(header + "\n\n" + body)

	return lipgloss.JoinVertical(lipgloss.Left, box, m.renderStatusBar())
}
