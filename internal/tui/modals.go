package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/examcli/internal/keybinds"
)

// helpContexts are listed in the help viewer in this order
var helpContexts = []keybinds.Context{
	keybinds.ContextList,
	keybinds.ContextCreate,
	keybinds.ContextDetail,
	keybinds.ContextRecent,
	keybinds.ContextGlobal,
}

// helpContent lists every bound action per context
func (m Model) helpContent() string {
	var b strings.Builder

	for _, ctx := range helpContexts {
		b.WriteString(styleTitle.Render(strings.ToUpper(string(ctx))))
		b.WriteString("\n")

		seen := make(map[keybinds.Action]bool)
		for _, binding := range m.keybinds.ListBindings(ctx) {
			if seen[binding.Action] || binding.Action == keybinds.ActionGoToTopPrepare {
				continue
			}
			seen[binding.Action] = true

			info := keybinds.GetActionInfo(binding.Action)
			keys := m.keybinds.GetBindingString(ctx, binding.Action)
			b.WriteString(fmt.Sprintf("  %-22s %s\n", keys, info.Description))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	footer := "↑/↓ j/k: scroll | ESC/?: close"
	return m.renderModalWithFooter("Keyboard Shortcuts", m.helpContent(), footer,
		m.width-ModalWidthMarginNarrow, m.height-ModalHeightMarginMed)
}

// renderModalWithFooter renders a modal with scrollable content and a fixed footer
func (m *Model) renderModalWithFooter(title, content, footer string, width, height int) string {
	return m.renderModalWithFooterAndScroll(title, content, footer, width, height, -1)
}

// renderModalWithFooterAndScroll renders a modal and keeps selectedLine in view.
// A negative selectedLine keeps the current scroll offset.
func (m *Model) renderModalWithFooterAndScroll(title, content, footer string, width, height, selectedLine int) string {
	width = clamp(width, min(30, m.width), m.width-ViewportPaddingHorizontal)
	height = clamp(height, min(8, m.height), m.height-ModalHeightMarginSmall)

	footerLines := 0
	if footer != "" {
		footerLines = 2
	}
	bodyHeight := height - ModalOverheadLines - footerLines
	if bodyHeight < 1 {
		bodyHeight = max(1, height-ModalOverheadMinimal-footerLines)
	}

	offset := m.modalView.YOffset
	m.modalView.Width = max(10, width-ViewportPaddingHorizontal)
	m.modalView.Height = bodyHeight
	m.modalView.SetContent(content)

	switch {
	case selectedLine < 0:
	case selectedLine < offset:
		offset = selectedLine
	case selectedLine >= offset+bodyHeight:
		offset = selectedLine - bodyHeight + 1
	}
	m.modalView.SetYOffset(offset)

	body := styleTitle.Render(title) + "\n\n" + m.modalView.View()
	if footer != "" {
		body += "\n\n" + styleSubtle.Render(footer)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBlue).
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(body)

	// nearly full screen modals are not centered
	if width >= m.width-2 || height >= m.height-1 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// clamp bounds v to [lo, hi]. hi wins when the bounds cross.
func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
