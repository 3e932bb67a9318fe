package logger

import (
	"io"
	"sync/atomic"

	"github.com/muesli/termenv"
)

// defaultLogger is the global default Logger instance stored atomically.
var defaultLogger atomic.Value

func init() {
	// The default logger carries the driftwatch styles from the start, so
	// the trace label and the profile/stack/err key colors apply to every
	// record, not only to loggers built explicitly with New.
	defaultLogger.Store(New())
}

// Default returns the global default Logger instance.
func Default() *Logger {
	return defaultLogger.Load().(*Logger)
}

// SetDefault sets a new global default Logger instance.
func SetDefault(logger *Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// Trace logs a message at the trace level using the default logger.
func Trace(msg interface{}, keyvals ...interface{}) {
	Default().Trace(msg, keyvals...)
}

// Debug logs a message at the debug level using the default logger.
func Debug(msg interface{}, keyvals ...interface{}) {
	Default().Debug(msg, keyvals...)
}

// Info logs a message at the info level using the default logger.
func Info(msg interface{}, keyvals ...interface{}) {
	Default().Info(msg, keyvals...)
}

// Warn logs a message at the warn level using the default logger.
func Warn(msg interface{}, keyvals ...interface{}) {
	Default().Warn(msg, keyvals...)
}

// Error logs a message at the error level using the default logger.
func Error(msg interface{}, keyvals ...interface{}) {
	Default().Error(msg, keyvals...)
}

// Fatal logs a message at the fatal level using the default logger and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Default().Fatal(msg, keyvals...)
}

// SetLevel sets the level on the default logger.
func SetLevel(level Level) {
	Default().SetLevel(level)
}

// GetLevel returns the level of the default logger.
func GetLevel() Level {
	return Default().GetLevel()
}

// SetOutput sets the output writer on the default logger.
func SetOutput(w io.Writer) {
	Default().SetOutput(w)
}

// SetColorProfile sets the color profile on the default logger.
// termenv.Ascii disables color entirely.
func SetColorProfile(profile termenv.Profile) {
	Default().SetColorProfile(profile)
}
