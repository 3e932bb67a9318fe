package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCharmLogger(t *testing.T) {
	logger := GetCharmLogger()
	require.NotNil(t, logger, "Should return a non-nil logger")

	assert.NotPanics(t, func() {
		logger.SetLevel(charm.InfoLevel)
		logger.SetTimeFormat("")
	})
}

func TestGetCharmLoggerWithOutput(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "charm_test.log")

	f, err := os.Create(logFile)
	require.NoError(t, err, "Should create log file without error")

	logger := GetCharmLoggerWithOutput(f)
	require.NotNil(t, logger, "Should return a non-nil logger")

	logger.SetTimeFormat("")
	logger.Info("File test message")

	f.Close()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err, "Should read log file without error")

	content := string(data)
	assert.Contains(t, content, "INFO", "Should have INFO level in file")
	assert.Contains(t, content, "File test message", "Should contain the message")
}

func TestLogStylesDetails(t *testing.T) {
	styles := getLogStyles()

	assert.NotEqual(t, lipgloss.Style{}, styles.Levels[charm.ErrorLevel], "ERROR level should have styling")
	assert.NotEqual(t, lipgloss.Style{}, styles.Levels[charm.WarnLevel], "WARN level should have styling")
	assert.NotEqual(t, lipgloss.Style{}, styles.Levels[charm.InfoLevel], "INFO level should have styling")
	assert.NotEqual(t, lipgloss.Style{}, styles.Levels[TraceLevel], "TRACE level should have styling")

	assert.Contains(t, styles.Levels[charm.ErrorLevel].Render("ERRO"), "ERRO", "ERROR label should be styled")
	assert.Contains(t, styles.Levels[charm.InfoLevel].Render("INFO"), "INFO", "INFO label should be styled")

	assert.NotNil(t, styles.Keys["err"], "err key should have styling")
	assert.NotNil(t, styles.Values["err"], "err value should have styling")
	assert.NotNil(t, styles.Keys["profile"], "profile key should have styling")
	assert.NotNil(t, styles.Keys["stack"], "stack key should have styling")
}
