// Package output provides colored terminal output for CLI feedback.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Logger writes colored CLI feedback. In JSON mode all text output is
// suppressed so machine output stays parseable.
type Logger struct {
	out      io.Writer
	errOut   io.Writer
	verbose  bool
	jsonMode bool
}

// NewLogger creates a Logger writing to stdout/stderr.
func NewLogger() *Logger {
	return &Logger{
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// SetNoColor disables colored output globally.
func (l *Logger) SetNoColor(noColor bool) {
	color.NoColor = noColor
}

// SetVerbose enables debug output.
func (l *Logger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

// SetJSONMode suppresses text output for JSON-producing commands.
func (l *Logger) SetJSONMode(jsonMode bool) {
	l.jsonMode = jsonMode
}

// Info prints an informational message.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.jsonMode {
		return
	}
	fmt.Fprintf(l.out, format+"\n", args...)
}

// Warn prints a yellow warning to stderr.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.jsonMode {
		return
	}
	color.New(color.FgYellow).Fprintf(l.errOut, "Warning: "+format+"\n", args...)
}

// Error prints a red error to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	if l.jsonMode {
		return
	}
	color.New(color.FgRed).Fprintf(l.errOut, "Error: "+format+"\n", args...)
}

// Success prints a green message with a checkmark.
func (l *Logger) Success(format string, args ...interface{}) {
	if l.jsonMode {
		return
	}
	color.New(color.FgGreen).Fprintf(l.out, "✓ "+format+"\n", args...)
}

// Debug prints a gray message when verbose mode is on.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.jsonMode || !l.verbose {
		return
	}
	color.New(color.FgHiBlack).Fprintf(l.out, "[DEBUG] "+format+"\n", args...)
}

// Bold prints a bold message.
func (l *Logger) Bold(format string, args ...interface{}) {
	if l.jsonMode {
		return
	}
	color.New(color.Bold).Fprintf(l.out, format+"\n", args...)
}

// DefaultLogger is the package-level default instance.
var DefaultLogger = NewLogger()

// Info prints an informational message using the default logger.
func Info(format string, args ...interface{}) {
	DefaultLogger.Info(format, args...)
}

// Warn prints a warning using the default logger.
func Warn(format string, args ...interface{}) {
	DefaultLogger.Warn(format, args...)
}

// Error prints an error using the default logger.
func Error(format string, args ...interface{}) {
	DefaultLogger.Error(format, args...)
}

// Success prints a success message using the default logger.
func Success(format string, args ...interface{}) {
	DefaultLogger.Success(format, args...)
}

// Debug prints a debug message using the default logger.
func Debug(format string, args ...interface{}) {
	DefaultLogger.Debug(format, args...)
}

// Bold prints a bold message using the default logger.
func Bold(format string, args ...interface{}) {
	DefaultLogger.Bold(format, args...)
}
