package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/examcli/internal/api"
	"github.com/studiowebux/examcli/internal/history"
	"github.com/studiowebux/examcli/internal/logging"
	"github.com/studiowebux/examcli/internal/mock"
	"github.com/studiowebux/examcli/internal/types"
	"gopkg.in/yaml.v3"
)

func seed() []types.Exam {
	return []types.Exam{
		{ID: 4, Title: "Statistics", Subject: "Math", Status: types.StatusPrepared, DurationMinutes: 60},
		{ID: 2, Title: "Algebra", Subject: "Math", Status: types.StatusPreparing, DurationMinutes: 90},
		{ID: 1, Title: "Biology", Status: types.StatusPreparing},
		{ID: 3, Title: "Chemistry", Status: types.StatusPrepared},
	}
}

func newBackend(t *testing.T, cfg *mock.Config) *api.Client {
	t.Helper()
	if cfg == nil {
		cfg = &mock.Config{}
	}
	srv := mock.NewServer(cfg, mock.NewStore(seed()), logging.Discard())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	c, err := api.New(api.Options{BaseURL: ts.URL, Timeout: 5 * time.Second, Logger: logging.Discard()})
	require.NoError(t, err)
	return c
}

func ids(exams []types.Exam) []int64 {
	out := make([]int64, len(exams))
	for i, e := range exams {
		out[i] = e.ID
	}
	return out
}

func TestList_AllKeepsTabOrder(t *testing.T) {
	client := newBackend(t, nil)
	var out bytes.Buffer

	err := List(context.Background(), client, ListOptions{
		Status: StatusAll,
		Output: OutputOptions{Format: FormatJSON, Out: &out},
	})
	require.NoError(t, err)

	var exams []types.Exam
	require.NoError(t, json.Unmarshal(out.Bytes(), &exams))
	if diff := cmp.Diff([]int64{1, 2, 3, 4}, ids(exams)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, types.StatusPreparing, exams[0].Status)
	assert.Equal(t, types.StatusPrepared, exams[3].Status)
}

func TestList_SingleStatusTable(t *testing.T) {
	client := newBackend(t, nil)
	var out bytes.Buffer

	err := List(context.Background(), client, ListOptions{
		Status: "prepared",
		Output: OutputOptions{Format: FormatTable, Out: &out},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Chemistry")
	assert.Contains(t, lines[2], "Statistics")
	assert.Contains(t, lines[2], "60 min")
	assert.NotContains(t, out.String(), "\x1b[")
}

func TestList_InvalidStatus(t *testing.T) {
	client := newBackend(t, nil)
	err := List(context.Background(), client, ListOptions{Status: "archived", Output: OutputOptions{Out: &bytes.Buffer{}}})
	assert.Error(t, err)
}

func TestList_QueryFiltersOutput(t *testing.T) {
	client := newBackend(t, nil)
	var out bytes.Buffer

	err := List(context.Background(), client, ListOptions{
		Status: "preparing",
		Output: OutputOptions{Query: "[].title", Out: &out},
	})
	require.NoError(t, err)

	var titles []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &titles))
	assert.Equal(t, []string{"Biology", "Algebra"}, titles)
}

func TestList_FailurePropagates(t *testing.T) {
	client := newBackend(t, &mock.Config{FailRate: 1})

	err := List(context.Background(), client, ListOptions{Status: StatusAll, Output: OutputOptions{Out: &bytes.Buffer{}}})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrFetchFailed)
}

func TestList_EmptyTable(t *testing.T) {
	srv := mock.NewServer(&mock.Config{}, mock.NewStore(nil), logging.Discard())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	client, err := api.New(api.Options{BaseURL: ts.URL, Logger: logging.Discard()})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, List(context.Background(), client, ListOptions{Status: "preparing", Output: OutputOptions{Out: &out}}))
	assert.Contains(t, out.String(), "No exams found")
}

func TestShow(t *testing.T) {
	client := newBackend(t, nil)

	var out bytes.Buffer
	require.NoError(t, Show(context.Background(), client, 2, OutputOptions{Format: FormatYAML, Out: &out}))

	var exam types.Exam
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &exam))
	assert.Equal(t, "Algebra", exam.Title)
	assert.Equal(t, 90, exam.DurationMinutes)

	err := Show(context.Background(), client, 99, OutputOptions{Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Equal(t, 404, api.StatusCode(err))
}

func TestCreate(t *testing.T) {
	client := newBackend(t, nil)

	var out bytes.Buffer
	err := Create(context.Background(), client, types.CreateExamRequest{Title: "Geometry", Subject: "Math"}, OutputOptions{Out: &out})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Geometry")
	assert.Contains(t, out.String(), "preparing")

	err = Create(context.Background(), client, types.CreateExamRequest{}, OutputOptions{Out: &bytes.Buffer{}})
	assert.EqualError(t, err, "title is required")
}

func TestPrepare(t *testing.T) {
	client := newBackend(t, nil)

	var out bytes.Buffer
	require.NoError(t, Prepare(context.Background(), client, 1, OutputOptions{Format: FormatJSON, Out: &out}))

	var exam types.Exam
	require.NoError(t, json.Unmarshal(out.Bytes(), &exam))
	assert.Equal(t, types.StatusPrepared, exam.Status)

	prepared, err := client.ListExams(context.Background(), types.StatusPrepared)
	require.NoError(t, err)
	assert.Contains(t, ids(prepared), int64(1))
}

func TestRecent(t *testing.T) {
	mgr, err := history.NewManager(filepath.Join(t.TempDir(), "examcli.db"), "http://exams.test")
	require.NoError(t, err)
	t.Cleanup(func() { mgr.Close() })

	var out bytes.Buffer
	require.NoError(t, Recent(mgr, 10, OutputOptions{Out: &out}))
	assert.Contains(t, out.String(), "No recently viewed exams")

	require.NoError(t, mgr.Record(types.Exam{ID: 7, Title: "Statistics", Status: types.StatusPrepared}))

	out.Reset()
	require.NoError(t, Recent(mgr, 10, OutputOptions{Out: &out}))
	assert.Contains(t, out.String(), "Statistics")

	out.Reset()
	require.NoError(t, Recent(mgr, 10, OutputOptions{Query: "[0].examId", Out: &out}))
	assert.Equal(t, "7", strings.TrimSpace(out.String()))
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"", FormatTable, FormatJSON, FormatYAML} {
		assert.NoError(t, ValidateFormat(f), f)
	}
	assert.Error(t, ValidateFormat("xml"))
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery(""))
	assert.NoError(t, ValidateQuery("[?status=='prepared'].title"))

	err := ValidateQuery("[?")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JMESPath expression")
}

func TestColorStatus(t *testing.T) {
	assert.Equal(t, "prepared", colorStatus(types.StatusPrepared, false))
	assert.Equal(t, colorGreen+"prepared"+colorReset, colorStatus(types.StatusPrepared, true))
	assert.Equal(t, colorYellow+"preparing"+colorReset, colorStatus(types.StatusPreparing, true))
}

func TestPromptForField(t *testing.T) {
	v, err := PromptForField(strings.NewReader("  Geometry \n"), "Title")
	require.NoError(t, err)
	assert.Equal(t, "Geometry", v)

	v, err = PromptForField(strings.NewReader("no newline"), "Title")
	require.NoError(t, err)
	assert.Equal(t, "no newline", v)
}

func TestSelector_EnterChoosesHighlighted(t *testing.T) {
	m := newSelector(seed())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})

	result := next.(selectorModel)
	assert.Equal(t, int64(2), result.choice)
	assert.True(t, result.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, result.View())
}

func TestSelector_QuitCancels(t *testing.T) {
	m := newSelector(seed())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	result := next.(selectorModel)
	assert.Zero(t, result.choice)
	assert.True(t, result.quitting)
}
