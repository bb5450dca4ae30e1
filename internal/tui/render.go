package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/examcli/internal/examlist"
	"github.com/studiowebux/examcli/internal/keybinds"
	"github.com/studiowebux/examcli/internal/types"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorBlue   = lipgloss.AdaptiveColor{Light: "#00008b", Dark: "#0000ff"} // Dark blue / Blue
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)

	styleTabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorCyan).
			Padding(0, 2)

	styleTabInactive = lipgloss.NewStyle().
				Foreground(colorGray).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(colorGray).
				Padding(0, 2)

	styleButton = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#000000"}).
			Background(colorCyan).
			Padding(0, 2)
)

// renderMain renders the exam list screen (tabs + list area + status bar)
func (m Model) renderMain() string {
	if m.width == 0 {
		return ""
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		styleTitle.Render("Exams"),
		m.renderTabs(),
	)

	body := m.renderListBody(m.width - ViewportPaddingHorizontal)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(m.width - MinimalBorderMargin).
		Height(m.height - MainViewHeightOffset).
		Render(header + "\n\n" + body)

	return lipgloss.JoinVertical(lipgloss.Left, box, m.renderStatusBar())
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(types.AllStatuses))
	for i, status := range types.AllStatuses {
		label := fmt.Sprintf("%d %s", i+1, status.Label())
		if status == m.view.Tab {
			tabs = append(tabs, styleTabActive.Render(label))
		} else {
			tabs = append(tabs, styleTabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderListBody renders exactly one branch of the list area
func (m Model) renderListBody(width int) string {
	switch m.listBranch() {
	case examlist.BranchLoading:
		return m.spinner.View() + " " + examlist.LoadingText

	case examlist.BranchError:
		return styleError.Render(examlist.ErrorNotice)

	case examlist.BranchPopulated:
		exams := m.exams.State().Data
		end := min(len(exams), m.listOffset+m.cardsPerPage())
		cards := make([]string, 0, end-m.listOffset)
		for i := m.listOffset; i < end; i++ {
			cards = append(cards, renderCard(exams[i], i == m.selected, width))
		}
		list := lipgloss.JoinVertical(lipgloss.Left, cards...)
		if len(exams) > end-m.listOffset {
			list += "\n" + styleSubtle.Render(fmt.Sprintf("%d-%d of %d", m.listOffset+1, end, len(exams)))
		}
		return list

	default:
		return m.renderEmptyState()
	}
}

func (m Model) renderEmptyState() string {
	empty := examlist.EmptyStateFor(m.view.Tab)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(empty.Heading))
	b.WriteString("\n")
	b.WriteString(styleSubtle.Render(empty.Message))
	if empty.ShowCreateAction {
		key := m.keybinds.GetBindingString(keybinds.ContextList, keybinds.ActionCreateExam)
		b.WriteString("\n\n")
		b.WriteString(styleButton.Render(examlist.CreateFirstExamLabel))
		b.WriteString(" " + styleSubtle.Render("("+key+")"))
	}
	return b.String()
}

// cardHeight is the rendered height of one card including its border
const cardHeight = 5

// renderCard renders one exam as a bordered card
func renderCard(exam types.Exam, selected bool, width int) string {
	title := lipgloss.NewStyle().Bold(true).Render(truncateText(exam.DisplayTitle(), max(10, width-20)))
	top := title + "  " + renderStatusBadge(exam.Status)

	var meta []string
	if exam.Subject != "" {
		meta = append(meta, exam.Subject)
	}
	if exam.DurationMinutes > 0 {
		meta = append(meta, fmt.Sprintf("%d min", exam.DurationMinutes))
	}
	if exam.QuestionCount > 0 {
		meta = append(meta, fmt.Sprintf("%d questions", exam.QuestionCount))
	}
	meta = append(meta, fmt.Sprintf("#%d", exam.ID))

	desc := exam.Description
	if desc == "" {
		desc = "No description"
	}

	content := top + "\n" +
		styleSubtle.Render(strings.Join(meta, " · ")) + "\n" +
		truncateText(desc, max(10, width-6))

	border := colorGray
	if selected {
		border = colorGreen
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(20, width-2)).
		Padding(0, 1).
		Render(content)
}

func renderStatusBadge(status types.Status) string {
	switch status {
	case types.StatusPrepared:
		return styleSuccess.Render("● " + status.Label())
	case types.StatusPreparing:
		return styleWarning.Render("● " + status.Label())
	default:
		return styleSubtle.Render(string(status))
	}
}

func (m Model) renderStatusBar() string {
	left := styleSubtle.Render(m.client.BaseURL()) + " " + m.nav.Current().Path

	right := ""
	if m.errorMsg != "" {
		right = styleError.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		right = styleSuccess.Render(m.statusMsg)
	} else {
		right = styleSubtle.Render("n: new | r: refresh | h: recent | ? for help | q to quit")
	}

	// Center spacing
	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 1 {
		spacing = 1
	}

	return left + strings.Repeat(" ", spacing) + right
}

// cardsPerPage is how many cards fit in the list area
func (m Model) cardsPerPage() int {
	// header (title + tabs + blank) and box borders
	avail := m.height - MainViewHeightOffset - 6
	return max(1, avail/cardHeight)
}

// updateViewports resizes viewports after a window change
func (m *Model) updateViewports() {
	m.detailView.Width = max(10, m.width-ViewportPaddingHorizontal-ViewportBorderWidth)
	m.detailView.Height = max(1, m.height-ContentOffsetLarge)

	if exam := m.detail.State().Data; exam != nil {
		m.detailView.SetContent(renderExamDetail(*exam, m.detailView.Width))
	}
	m.adjustListOffset()
}

// truncateText shortens s to n display columns
func truncateText(s string, n int) string {
	if n <= 3 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r)) > n-3 {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
