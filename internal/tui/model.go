package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/examcli/internal/examlist"
	"github.com/studiowebux/examcli/internal/fetch"
	"github.com/studiowebux/examcli/internal/keybinds"
	"github.com/studiowebux/examcli/internal/router"
	"github.com/studiowebux/examcli/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeList Mode = iota
	ModeCreate
	ModeDetail
	ModeRecent
	ModeHelp
)

// ExamClient is the subset of the API client the TUI needs
type ExamClient interface {
	ListExams(ctx context.Context, status types.Status) ([]types.Exam, error)
	GetExam(ctx context.Context, id int64) (*types.Exam, error)
	CreateExam(ctx context.Context, req types.CreateExamRequest) (*types.Exam, error)
	BaseURL() string
}

// RecentStore records exam visits
type RecentStore interface {
	Record(exam types.Exam) error
	Recent(limit int) ([]types.RecentEntry, error)
	Clear() error
	Close() error
}

// Model represents the TUI state
type Model struct {
	// Collaborators
	client   ExamClient
	recent   RecentStore
	logger   *logrus.Logger
	keybinds *keybinds.Registry
	nav      *router.Navigator

	mode       Mode
	helpReturn Mode // mode to restore when help closes

	// List view
	view       examlist.State
	exams      *fetch.Resource[types.Status, []types.Exam]
	selected   int
	listOffset int
	spinner    spinner.Model

	// Create dialog
	create       *createForm
	requestState *RequestState

	// Detail view
	detail     *fetch.Resource[int64, *types.Exam]
	detailView viewport.Model

	// Recently viewed modal
	recentEntries []types.RecentEntry
	recentIndex   int
	recentErr     string

	modalView viewport.Model

	// UI state
	width          int
	height         int
	statusMsg      string
	errorMsg       string // Truncated error for footer
	fullErrorMsg   string
	messageTimeout time.Duration
}

// Init starts the first fetch for the active tab
func (m *Model) Init() tea.Cmd {
	return m.runListFetch(m.exams.Start(m.view.Tab))
}

// Cleanup closes database connections and cancels in-flight requests
func (m *Model) Cleanup() {
	m.exams.Cancel()
	m.detail.Cancel()
	m.requestState.Cancel()

	if m.recent != nil {
		if err := m.recent.Close(); err != nil {
			m.logger.WithError(err).Warn("error closing history database")
		}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewports()

	case spinner.TickMsg:
		// keep ticking only while something is in flight
		if m.isBusy() {
			m.spinner, cmd = m.spinner.Update(msg)
		}

	case examsLoadedMsg:
		if m.exams.Resolve(msg.result) {
			m.afterListResolved(msg.result)
		}

	case examLoadedMsg:
		if m.detail.Resolve(msg.result) {
			cmd = m.afterDetailResolved(msg.result)
		}

	case examCreatedMsg:
		cmd = m.handleExamCreated(msg)

	case recentLoadedMsg:
		m.recentEntries = msg.entries
		m.recentErr = ""
		if msg.err != nil {
			m.recentErr = msg.err.Error()
		}
		if m.recentIndex >= len(m.recentEntries) {
			m.recentIndex = 0
		}

	case clearStatusMsg:
		m.statusMsg = ""

	case clearErrorMsg:
		m.errorMsg = ""
		m.fullErrorMsg = ""

	case errorMsg:
		cmd = m.setErrorMessage(string(msg))
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeCreate:
		return m.renderCreateModal()
	case ModeDetail:
		return m.renderDetail()
	case ModeRecent:
		return m.renderRecentModal()
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

// setMode switches screens. A half-typed sequence such as the first g of gg
// does not carry over.
func (m *Model) setMode(mode Mode) {
	m.keybinds.ClearMultiKeyState(keybinds.ContextList)
	m.keybinds.ClearMultiKeyState(keybinds.ContextDetail)
	m.mode = mode
}

func (m *Model) isBusy() bool {
	return m.exams.State().Loading ||
		m.detail.State().Loading ||
		m.requestState.Active()
}

// Custom message types
type examsLoadedMsg struct {
	result fetch.Result[types.Status, []types.Exam]
}

type examLoadedMsg struct {
	result fetch.Result[int64, *types.Exam]
}

type examCreatedMsg struct {
	submission uint64
	exam       *types.Exam
	err        error
}

type recentLoadedMsg struct {
	entries []types.RecentEntry
	err     error
}

type clearStatusMsg struct{}
type clearErrorMsg struct{}

type errorMsg string

// Helper methods for setting messages with optional timeout
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	m.statusMsg = truncateFooter(msg)
	if m.messageTimeout > 0 {
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{}
		})
	}
	return nil
}

func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.fullErrorMsg = msg
	m.errorMsg = truncateFooter(msg)
	if m.messageTimeout > 0 {
		return tea.Tick(m.messageTimeout, func(time.Time) tea.Msg {
			return clearErrorMsg{}
		})
	}
	return nil
}

// truncateFooter caps footer messages at 100 columns
func truncateFooter(msg string) string {
	return truncateText(msg, 100)
}
