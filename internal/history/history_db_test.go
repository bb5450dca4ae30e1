package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/examcli/internal/types"
)

func newTestManager(t *testing.T, baseURL string) (*Manager, *time.Time) {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "history.db"), baseURL)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	m.now = func() time.Time { return clock }
	return m, &clock
}

func TestRecord_NewestFirst(t *testing.T) {
	m, clock := newTestManager(t, "http://localhost:8080")

	require.NoError(t, m.Record(types.Exam{ID: 1, Title: "Algebra", Status: types.StatusPreparing}))
	*clock = clock.Add(time.Minute)
	require.NoError(t, m.Record(types.Exam{ID: 2, Title: "Biology", Status: types.StatusPrepared}))

	entries, err := m.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].ExamID)
	assert.Equal(t, types.StatusPrepared, entries[0].Status)
	assert.Equal(t, int64(1), entries[1].ExamID)
	assert.Equal(t, clock.Unix(), entries[0].ViewedAt.Unix())
}

func TestRecord_RepeatViewBumpsCount(t *testing.T) {
	m, clock := newTestManager(t, "http://localhost:8080")

	require.NoError(t, m.Record(types.Exam{ID: 1, Title: "Algebra", Status: types.StatusPreparing}))
	*clock = clock.Add(time.Minute)
	require.NoError(t, m.Record(types.Exam{ID: 2, Title: "Biology"}))
	*clock = clock.Add(time.Minute)
	require.NoError(t, m.Record(types.Exam{ID: 1, Title: "Algebra II", Status: types.StatusPrepared}))

	entries, err := m.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ExamID)
	assert.Equal(t, 2, entries[0].ViewCount)
	assert.Equal(t, "Algebra II", entries[0].Title)
	assert.Equal(t, types.StatusPrepared, entries[0].Status)

	count, err := m.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecord_UntitledUsesDisplayTitle(t *testing.T) {
	m, _ := newTestManager(t, "")

	require.NoError(t, m.Record(types.Exam{ID: 9}))

	entries, err := m.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Exam #9", entries[0].Title)
}

func TestRecent_Limit(t *testing.T) {
	m, clock := newTestManager(t, "")

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, m.Record(types.Exam{ID: i, Title: "x"}))
		*clock = clock.Add(time.Second)
	}

	entries, err := m.Recent(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(5), entries[0].ExamID)
}

func TestRecent_EmptyIsNonNil(t *testing.T) {
	m, _ := newTestManager(t, "")

	entries, err := m.Recent(5)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestClear_ScopedToBaseURL(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	a, err := NewManager(dbPath, "http://a")
	require.NoError(t, err)
	defer a.Close()
	b, err := NewManager(dbPath, "http://b")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Record(types.Exam{ID: 1, Title: "A"}))
	require.NoError(t, b.Record(types.Exam{ID: 1, Title: "B"}))

	require.NoError(t, a.Clear())

	countA, err := a.Count()
	require.NoError(t, err)
	countB, err := b.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, countA)
	assert.Equal(t, 1, countB)
}
