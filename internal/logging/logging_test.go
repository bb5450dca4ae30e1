package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/examcli/internal/config"
)

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.WithFields(logrus.Fields{"status": "prepared"}).Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "status=prepared")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestNewFileLogger_WritesJSON(t *testing.T) {
	orig := config.LogFile
	config.LogFile = filepath.Join(t.TempDir(), "examcli.log")
	t.Cleanup(func() { config.LogFile = orig })

	logger, closer, err := NewFileLogger("debug")
	require.NoError(t, err)
	logger.WithField("exam_id", 7).Debug("viewed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(config.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"exam_id":7`)
	assert.Contains(t, string(data), `"msg":"viewed"`)
}
