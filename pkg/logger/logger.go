package logger

import (
	"errors"
	"fmt"
	"math"
	"os"

	charm "github.com/charmbracelet/log"
)

// Level is the underlying charmbracelet log level type.
type Level = charm.Level

const (
	// TraceLevel sits one step below Debug. Charm has no native trace level,
	// so the label comes from the styles set up in GetCharmLogger.
	TraceLevel Level = charm.DebugLevel - 4

	DebugLevel = charm.DebugLevel
	InfoLevel  = charm.InfoLevel
	WarnLevel  = charm.WarnLevel
	ErrorLevel = charm.ErrorLevel
	FatalLevel = charm.FatalLevel

	// OffLevel suppresses all output.
	OffLevel Level = math.MaxInt32
)

// LogLevel is the string form used in configuration files and flags.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
)

var ErrInvalidLogLevel = errors.New("invalid log level. Supported log levels are Trace, Debug, Info, Warning, Off")

// Logger wraps a charmbracelet logger and adds the Trace level.
type Logger struct {
	*charm.Logger
}

// NewLogger wraps an existing charm logger.
func NewLogger(l *charm.Logger) *Logger {
	return &Logger{Logger: l}
}

// New creates a new styled Logger writing to stderr.
func New() *Logger {
	return NewLogger(GetCharmLoggerWithOutput(os.Stderr))
}

// Trace logs a message at the trace level.
func (l *Logger) Trace(msg interface{}, keyvals ...interface{}) {
	l.Logger.Log(TraceLevel, msg, keyvals...)
}

// GetLevelString returns the current level as a lowercase string.
func (l *Logger) GetLevelString() string {
	level := l.GetLevel()
	switch level {
	case TraceLevel:
		return "trace"
	case OffLevel:
		return "off"
	default:
		return level.String()
	}
}

// ParseLogLevel validates a configuration log level string.
// An empty string defaults to Info.
func ParseLogLevel(logLevel string) (LogLevel, error) {
	if logLevel == "" {
		return LogLevelInfo, nil
	}

	switch LogLevel(logLevel) {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelOff:
		return LogLevel(logLevel), nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrInvalidLogLevel, logLevel)
	}
}

// SetLogLevel applies a configuration log level to the logger.
func (l *Logger) SetLogLevel(logLevel LogLevel) {
	l.SetLevel(charmLevel(logLevel))
}

// charmLevel maps a configuration log level onto the charm level scale.
func charmLevel(logLevel LogLevel) Level {
	switch logLevel {
	case LogLevelTrace:
		return TraceLevel
	case LogLevelDebug:
		return DebugLevel
	case LogLevelInfo:
		return InfoLevel
	case LogLevelWarning:
		return WarnLevel
	case LogLevelOff:
		return OffLevel
	default:
		return InfoLevel
	}
}
