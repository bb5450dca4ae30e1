package mock

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/examcli/internal/logging"
	"github.com/studiowebux/examcli/internal/types"
)

func seedExams() []types.Exam {
	return []types.Exam{
		{ID: 3, Title: "Physics midterm", Status: types.StatusPreparing},
		{ID: 1, Title: "Algebra final", Status: types.StatusPrepared},
		{ID: 2, Title: "Chemistry quiz", Status: types.StatusPreparing},
	}
}

func newTestServer(t *testing.T, cfg *Config) (*Server, *httptest.Server) {
	t.Helper()
	if cfg == nil {
		cfg = &Config{Logging: true}
	}
	s := NewServer(cfg, NewStore(seedExams()), logging.Discard())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func getExams(t *testing.T, url string) (int, []types.Exam) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	var exams []types.Exam
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&exams))
	}
	return resp.StatusCode, exams
}

func TestServer_ListFiltersByStatusInIDOrder(t *testing.T) {
	_, ts := newTestServer(t, nil)

	status, exams := getExams(t, ts.URL+"/api/exams?status=preparing")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, exams, 2)
	assert.Equal(t, int64(2), exams[0].ID)
	assert.Equal(t, int64(3), exams[1].ID)

	status, exams = getExams(t, ts.URL+"/api/exams?status=prepared")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, exams, 1)
	assert.Equal(t, "Algebra final", exams[0].Title)

	status, exams = getExams(t, ts.URL+"/api/exams")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, exams, 3)
}

func TestServer_ListRejectsUnknownStatus(t *testing.T) {
	_, ts := newTestServer(t, nil)

	status, _ := getExams(t, ts.URL+"/api/exams?status=archived")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_EmptyListIsArray(t *testing.T) {
	s := NewServer(&Config{}, NewStore(nil), logging.Discard())
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/exams?status=prepared")
	require.NoError(t, err)
	defer resp.Body.Close()

	var raw json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, "[]", string(raw))
}

func TestServer_CreateThenGet(t *testing.T) {
	_, ts := newTestServer(t, nil)

	body := `{"title":"Biology exam","subject":"Biology","durationMinutes":90}`
	resp, err := http.Post(ts.URL+"/api/exams", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created types.Exam
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, types.StatusPreparing, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	get, err := http.Get(ts.URL + "/api/exams/4")
	require.NoError(t, err)
	defer get.Body.Close()
	assert.Equal(t, http.StatusOK, get.StatusCode)
}

func TestServer_CreateRequiresTitle(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/exams", "application/json", strings.NewReader(`{"subject":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_GetUnknownExam(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/exams/99")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_SetStatusMovesExam(t *testing.T) {
	_, ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/api/exams/3/status", strings.NewReader(`{"status":"prepared"}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, prepared := getExams(t, ts.URL+"/api/exams?status=prepared")
	require.Len(t, prepared, 2)
	assert.Equal(t, int64(3), prepared[1].ID)
}

func TestServer_InjectedFailure(t *testing.T) {
	_, ts := newTestServer(t, &Config{FailRate: 1})

	status, _ := getExams(t, ts.URL+"/api/exams?status=preparing")
	assert.Equal(t, http.StatusInternalServerError, status)
}

func TestServer_LogsRequests(t *testing.T) {
	s, ts := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/exams?status=prepared", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	logs := s.Drain()
	require.Len(t, logs, 1)
	assert.Equal(t, "/api/exams", logs[0].Path)
	assert.Equal(t, "status=prepared", logs[0].Query)
	assert.Equal(t, "abc-123", logs[0].RequestID)
	assert.Equal(t, http.StatusOK, logs[0].Status)
	assert.Contains(t, logs[0].String(), "/api/exams?status=prepared 200")

	assert.Empty(t, s.Drain())
}

func TestServer_NoLogWhenDisabled(t *testing.T) {
	s, ts := newTestServer(t, &Config{})

	status, _ := getExams(t, ts.URL+"/api/exams")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, s.Drain())
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestServer_StartReportsBusyPort(t *testing.T) {
	held, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer held.Close()

	s := NewServer(&Config{Host: "127.0.0.1", Port: held.Addr().(*net.TCPAddr).Port}, NewStore(nil), logging.Discard())

	err = s.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
	assert.NoError(t, s.Stop())
}

func TestServer_StartServesAndFollowsLog(t *testing.T) {
	s := NewServer(&Config{Host: "127.0.0.1", Port: freePort(t), Logging: true}, NewStore(seedExams()), logging.Discard())
	require.NoError(t, s.Start())
	t.Cleanup(func() { _ = s.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	var out bytes.Buffer
	done := make(chan struct{})
	go func() {
		s.Follow(ctx, &out)
		close(done)
	}()

	req, err := http.NewRequest(http.MethodGet, s.GetAddress()+"/api/exams?status=prepared", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	<-done

	line := strings.TrimSpace(out.String())
	assert.Contains(t, line, "GET")
	assert.Contains(t, line, "/api/exams?status=prepared 200")
	assert.Contains(t, line, "id=abc-123")
	assert.Empty(t, s.Drain())
}

func TestLoadFixtures_Formats(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"exams.yaml": "exams:\n  - id: 1\n    title: Algebra\n    status: prepared\n  - id: 2\n    title: Geometry\n",
		"exams.json": `{"exams":[{"id":1,"title":"Algebra","status":"prepared"},{"id":2,"title":"Geometry"}]}`,
		"exams.jsonc": `{
  // seed data
  "exams": [
    {"id": 1, "title": "Algebra", "status": "prepared"},
    {"id": 2, "title": "Geometry"}, // trailing comma
  ]
}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			fixtures, err := LoadFixtures(path)
			require.NoError(t, err)
			require.Len(t, fixtures.Exams, 2)
			assert.Equal(t, types.StatusPrepared, fixtures.Exams[0].Status)
			assert.Equal(t, types.StatusPreparing, fixtures.Exams[1].Status)
		})
	}
}

func TestLoadFixtures_Invalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"duplicate id", "dup.yaml", "exams:\n  - id: 1\n    title: A\n  - id: 1\n    title: B\n"},
		{"bad status", "status.json", `{"exams":[{"id":1,"title":"A","status":"archived"}]}`},
		{"missing title", "title.json", `{"exams":[{"id":1}]}`},
		{"unsupported format", "exams.toml", "exams = []"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := LoadFixtures(path)
			assert.Error(t, err)
		})
	}
}
