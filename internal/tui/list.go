package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/examcli/internal/examlist"
	"github.com/studiowebux/examcli/internal/fetch"
	"github.com/studiowebux/examcli/internal/router"
	"github.com/studiowebux/examcli/internal/types"
)

// runListFetch performs req off the UI loop
func (m *Model) runListFetch(req fetch.Request[types.Status]) tea.Cmd {
	res := m.exams
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return examsLoadedMsg{result: res.Run(req)}
	})
}

// refetchList re-runs the fetch for the active tab
func (m *Model) refetchList() tea.Cmd {
	req, ok := m.exams.Refetch()
	if !ok {
		req = m.exams.Start(m.view.Tab)
	}
	return m.runListFetch(req)
}

// selectTab applies a tab transition and refetches when the tab changed
func (m *Model) selectTab(next examlist.State) tea.Cmd {
	if next.Tab == m.view.Tab {
		return nil
	}
	m.view = next
	m.selected = 0
	m.listOffset = 0
	return m.runListFetch(m.exams.Start(m.view.Tab))
}

func (m *Model) afterListResolved(res fetch.Result[types.Status, []types.Exam]) {
	fields := logrus.Fields{"tab": res.Key, "generation": res.Gen}
	if res.Err != nil {
		m.logger.WithFields(fields).WithError(res.Err).Warn("exam list fetch failed")
	} else {
		m.logger.WithFields(fields).WithField("count", len(res.Data)).Debug("exam list loaded")
	}

	count := len(m.exams.State().Data)
	if m.selected >= count {
		m.selected = max(0, count-1)
	}
	m.adjustListOffset()
}

// listBranch picks what the list area shows
func (m Model) listBranch() examlist.Branch {
	st := m.exams.State()
	return examlist.SelectBranch(st.Loading, st.Err, len(st.Data))
}

// visibleExams returns the exams only when the populated branch is active
func (m Model) visibleExams() []types.Exam {
	if m.listBranch() != examlist.BranchPopulated {
		return nil
	}
	return m.exams.State().Data
}

func (m *Model) moveSelection(delta int) {
	count := len(m.visibleExams())
	if count == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= count {
		m.selected = count - 1
	}
	m.adjustListOffset()
}

func (m *Model) adjustListOffset() {
	visible := m.cardsPerPage()
	if m.selected < m.listOffset {
		m.listOffset = m.selected
	} else if m.selected >= m.listOffset+visible {
		m.listOffset = m.selected - visible + 1
	}
	if m.listOffset < 0 {
		m.listOffset = 0
	}
}

// navigation returns the item selection delegate
func (m *Model) navigation(cmds *[]tea.Cmd) examlist.NavigationDelegate {
	return examlist.NavigationDelegate{
		Navigate: func(path string) {
			*cmds = append(*cmds, m.navigate(path))
		},
	}
}

// openSelected navigates to the highlighted exam
func (m *Model) openSelected() tea.Cmd {
	exams := m.visibleExams()
	if m.selected < 0 || m.selected >= len(exams) {
		return nil
	}

	var cmds []tea.Cmd
	m.navigation(&cmds).Select(exams[m.selected].ID)
	return tea.Batch(cmds...)
}

// navigate pushes path onto the router and switches screens
func (m *Model) navigate(path string) tea.Cmd {
	route, err := m.nav.Navigate(path)
	if err != nil {
		return m.setErrorMessage(err.Error())
	}

	m.logger.WithField("path", route.Path).Debug("navigate")

	switch route.Screen {
	case router.ScreenExamDetail:
		m.setMode(ModeDetail)
		m.detailView.SetContent("")
		m.detailView.GotoTop()
		return m.runDetailFetch(m.detail.Start(route.ExamID))
	default:
		m.setMode(ModeList)
		return nil
	}
}

// back pops the router. The list keeps its data and is not refetched.
func (m *Model) back() {
	m.detail.Cancel()
	if _, ok := m.nav.Back(); ok {
		m.logger.WithField("path", m.nav.Current().Path).Debug("navigate back")
	}
	m.setMode(ModeList)
}
