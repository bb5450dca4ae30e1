package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/examcli/internal/api"
	"github.com/studiowebux/examcli/internal/history"
	"github.com/studiowebux/examcli/internal/types"
)

// fakeClient is an in-memory ExamClient that records calls
type fakeClient struct {
	mu sync.Mutex

	lists     map[types.Status][]types.Exam
	listErr   error
	listCalls []types.Status

	getCalls []int64

	createErr error
	created   []types.CreateExamRequest
	nextID    int64
}

func newFakeClient() *fakeClient {
	return &fakeClient{lists: make(map[types.Status][]types.Exam), nextID: 100}
}

func (f *fakeClient) BaseURL() string { return "http://exams.test" }

func (f *fakeClient) ListExams(ctx context.Context, status types.Status) ([]types.Exam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, status)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]types.Exam{}, f.lists[status]...), nil
}

func (f *fakeClient) GetExam(ctx context.Context, id int64) (*types.Exam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls = append(f.getCalls, id)
	for _, exams := range f.lists {
		for _, e := range exams {
			if e.ID == id {
				found := e
				return &found, nil
			}
		}
	}
	return nil, &api.RequestError{Op: "get exam", Method: "GET", Path: api.ExamPath(id), Kind: api.KindStatus, Status: 404}
}

func (f *fakeClient) CreateExam(ctx context.Context, req types.CreateExamRequest) (*types.Exam, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	exam := types.Exam{ID: f.nextID, Title: req.Title, Subject: req.Subject, Status: types.StatusPreparing}
	f.lists[types.StatusPreparing] = append(f.lists[types.StatusPreparing], exam)
	return &exam, nil
}

func (f *fakeClient) calls() []types.Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]types.Status{}, f.listCalls...)
}

// CreateTestModel creates a Model backed by a fake client and a temp history database
func CreateTestModel(t *testing.T, client *fakeClient) *Model {
	t.Helper()

	recent, err := history.NewManager(filepath.Join(t.TempDir(), "test.db"), client.BaseURL())
	if err != nil {
		t.Fatalf("Failed to open test history: %v", err)
	}
	t.Cleanup(func() { recent.Close() })

	m, err := New(Options{Client: client, Recent: recent})
	if err != nil {
		t.Fatalf("Failed to create test model: %v", err)
	}

	// blink commands sleep, which would stall runCmd
	for i := range m.create.inputs {
		m.create.inputs[i].Cursor.SetMode(cursor.CursorStatic)
	}

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return &m
}

// runCmd executes cmd synchronously and feeds every resulting message back
// into the model. Spinner ticks and quit messages are dropped.
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}

	switch msg := cmd().(type) {
	case nil, spinner.TickMsg, tea.QuitMsg:
	case tea.BatchMsg:
		for _, c := range msg {
			runCmd(t, m, c)
		}
	default:
		_, next := m.Update(msg)
		runCmd(t, m, next)
	}
}

// press sends a key through Update and drains the resulting commands
func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(keyMsg(k))
		runCmd(t, m, cmd)
	}
}

// typeText sends each rune as its own key press
func typeText(t *testing.T, m *Model, s string) {
	t.Helper()
	for _, r := range s {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		runCmd(t, m, cmd)
	}
}

func keyMsg(k string) tea.KeyMsg {
	special := map[string]tea.KeyType{
		"enter":     tea.KeyEnter,
		"esc":       tea.KeyEsc,
		"tab":       tea.KeyTab,
		"shift+tab": tea.KeyShiftTab,
		"up":        tea.KeyUp,
		"down":      tea.KeyDown,
		"backspace": tea.KeyBackspace,
		"ctrl+c":    tea.KeyCtrlC,
	}
	if kt, ok := special[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}

// AssertNoError verifies that an error is nil
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func exam(id int64, title string, status types.Status) types.Exam {
	return types.Exam{ID: id, Title: title, Status: status, Subject: fmt.Sprintf("Subject %d", id)}
}
