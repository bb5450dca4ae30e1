package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/studiowebux/examcli/internal/examlist"
	"github.com/studiowebux/examcli/internal/keybinds"
	"github.com/studiowebux/examcli/internal/types"
)

const (
	fieldTitle = iota
	fieldSubject
	fieldDuration
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Subject", "Duration (minutes)", "Description"}

// createForm holds the create dialog inputs
type createForm struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	submission uint64 // id of the latest submit, late replies for older ids are dropped
	err        string
}

func newCreateForm() *createForm {
	f := &createForm{inputs: make([]textinput.Model, fieldCount)}
	placeholders := [fieldCount]string{"Midterm: Linear Algebra", "Mathematics", "90", "Optional"}
	limits := [fieldCount]int{120, 60, 4, 500}

	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = placeholders[i]
		in.CharLimit = limits[i]
		f.inputs[i] = in
	}
	f.inputs[fieldTitle].Focus()
	return f
}

// reset clears the inputs for the next open. Replies to earlier submissions
// no longer match once the counter moves.
func (f *createForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = fieldTitle
	f.inputs[fieldTitle].Focus()
	f.submitting = false
	f.submission++
	f.err = ""
}

func (f *createForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// request builds the payload from the inputs
func (f *createForm) request() (types.CreateExamRequest, error) {
	req := types.CreateExamRequest{
		Title:       strings.TrimSpace(f.inputs[fieldTitle].Value()),
		Subject:     strings.TrimSpace(f.inputs[fieldSubject].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
	}

	if raw := strings.TrimSpace(f.inputs[fieldDuration].Value()); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return req, fmt.Errorf("duration must be a whole number of minutes")
		}
		req.DurationMinutes = minutes
	}

	return req, req.Validate()
}

// creation returns the dialog delegate. Refetch commands are appended to cmds.
func (m *Model) creation(cmds *[]tea.Cmd) examlist.CreationDelegate {
	return examlist.CreationDelegate{
		Refetch: func() {
			*cmds = append(*cmds, m.refetchList())
		},
		Close: m.closeCreate,
	}
}

func (m *Model) openCreate() {
	m.create.reset()
	m.view = m.view.OpenCreate()
	m.setMode(ModeCreate)
}

func (m *Model) closeCreate() {
	m.requestState.Cancel()
	m.create.reset()
	m.view = m.view.CloseCreate()
	m.setMode(ModeList)
}

// handleCreateKeys handles keyboard input in the create dialog
func (m *Model) handleCreateKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keybinds.Match(keybinds.ContextCreate, msg.String()); ok {
		switch action {
		case keybinds.ActionCloseModal:
			var cmds []tea.Cmd
			m.creation(&cmds).OnClose()
			return tea.Batch(cmds...)
		case keybinds.ActionNextField:
			m.create.setFocus(m.create.focus + 1)
			return nil
		case keybinds.ActionPrevField:
			m.create.setFocus(m.create.focus - 1)
			return nil
		case keybinds.ActionSubmit:
			return m.submitCreate()
		}
	}

	if m.create.submitting {
		return nil
	}

	var cmd tea.Cmd
	m.create.inputs[m.create.focus], cmd = m.create.inputs[m.create.focus].Update(msg)
	return cmd
}

// submitCreate validates the form and sends it off the UI loop
func (m *Model) submitCreate() tea.Cmd {
	if m.create.submitting {
		return nil
	}

	req, err := m.create.request()
	if err != nil {
		m.create.err = err.Error()
		return nil
	}

	m.create.err = ""
	m.create.submitting = true
	m.create.submission++
	submission := m.create.submission

	ctx, cancel := context.WithCancel(context.Background())
	m.requestState.SetCancel(cancel)

	client := m.client
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		exam, err := client.CreateExam(ctx, req)
		return examCreatedMsg{submission: submission, exam: exam, err: err}
	})
}

// handleExamCreated applies a create reply. Failures stay in the dialog.
func (m *Model) handleExamCreated(msg examCreatedMsg) tea.Cmd {
	if !m.view.CreateOpen || !m.create.submitting || msg.submission != m.create.submission {
		return nil
	}

	// the request is finished, release its context
	m.requestState.Cancel()
	m.create.submitting = false

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return nil
		}
		m.logger.WithError(msg.err).Warn("exam creation failed")
		m.create.err = categorizeError(msg.err)
		return nil
	}

	m.logger.WithFields(logrus.Fields{"id": msg.exam.ID, "title": msg.exam.Title}).Info("exam created")

	var cmds []tea.Cmd
	m.creation(&cmds).OnSuccess()
	cmds = append(cmds, m.setStatusMessage(fmt.Sprintf("Created %s", msg.exam.DisplayTitle())))
	return tea.Batch(cmds...)
}

// renderCreateModal renders the create dialog over the list
func (m Model) renderCreateModal() string {
	var b strings.Builder

	for i, in := range m.create.inputs {
		label := fieldLabels[i]
		if i == fieldTitle {
			label += " *"
		}
		if i == m.create.focus {
			b.WriteString(styleTitle.Render(label))
		} else {
			b.WriteString(styleSubtle.Render(label))
		}
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	switch {
	case m.create.submitting:
		b.WriteString(m.spinner.View() + " Creating exam...")
	case m.create.err != "":
		b.WriteString(styleError.Render(m.create.err))
	}

	footer := "tab: next field | enter: create | esc: cancel"
	width := min(70, m.width-ModalWidthMargin)
	height := min(22, m.height-ModalHeightMargin)
	return m.renderModalWithFooter("Create Exam", b.String(), footer, width, height)
}
