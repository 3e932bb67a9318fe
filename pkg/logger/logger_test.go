package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetLevel(TraceLevel)

	logger.Trace("test trace message")
	output := buf.String()

	assert.Contains(t, output, "test trace message")
}

func TestLogger_TraceHiddenAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetLevel(DebugLevel)

	logger.Trace("hidden trace message")
	assert.Empty(t, buf.String())

	logger.Debug("visible debug message")
	assert.Contains(t, buf.String(), "visible debug message")
}

func TestLogger_GetLevelString(t *testing.T) {
	logger := New()

	logger.SetLevel(TraceLevel)
	assert.Equal(t, "trace", logger.GetLevelString())

	logger.SetLevel(DebugLevel)
	assert.Equal(t, "debug", strings.ToLower(logger.GetLevelString()))

	logger.SetLevel(InfoLevel)
	assert.Equal(t, "info", strings.ToLower(logger.GetLevelString()))

	logger.SetLevel(OffLevel)
	assert.Equal(t, "off", logger.GetLevelString())
}

func TestPackageLevelFunctions(t *testing.T) {
	// Save and restore default logger.
	oldLogger := Default()
	defer SetDefault(oldLogger)

	var buf bytes.Buffer
	testLogger := New()
	testLogger.SetOutput(&buf)
	testLogger.SetLevel(TraceLevel)
	SetDefault(testLogger)

	Trace("package level trace")
	assert.Contains(t, buf.String(), "package level trace")

	buf.Reset()
	Error("package level error", "err", "boom")
	assert.Contains(t, buf.String(), "package level error")
	assert.Contains(t, buf.String(), "boom")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		hasError bool
	}{
		{"Trace", LogLevelTrace, false},
		{"Debug", LogLevelDebug, false},
		{"Info", LogLevelInfo, false},
		{"Warning", LogLevelWarning, false},
		{"Off", LogLevelOff, false},
		{"", LogLevelInfo, false}, // Default to Info
		{"Invalid", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLogLevel(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidLogLevel)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, level)
			}
		})
	}
}

func TestDefaultLoggerRendersTraceLabel(t *testing.T) {
	d := Default()
	oldLevel := d.GetLevel()
	defer d.SetLevel(oldLevel)
	defer d.SetOutput(os.Stderr)

	var buf bytes.Buffer
	d.SetOutput(&buf)
	d.SetLevel(TraceLevel)

	d.Trace("trace from the default logger")
	output := buf.String()

	assert.Contains(t, output, "TRCE")
	assert.Contains(t, output, "trace from the default logger")
}

func TestOffLevelSuppressesEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.SetOutput(&buf)
	logger.SetLogLevel(LogLevelOff)

	logger.Error("should not appear")
	logger.Info("should not appear either")
	assert.Empty(t, buf.String())
}
