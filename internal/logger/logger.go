package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// TimeFormat is the timestamp layout that prefixes every log line.
const TimeFormat = "2006-01-02 15:04:05"

// out is where every level writes. color.Output is stdout wrapped for
// Windows consoles; tests swap it with SetOutput.
var out io.Writer = color.Output

// now is swapped by tests that need stable timestamps.
var now = time.Now

// Each level is a colored printer. The color only decorates the line; the
// level tag is always printed so the output stays parseable when piped.
var (
	infoColor     = color.New(color.FgGreen)
	warnColor     = color.New(color.FgHiMagenta)
	errorColor    = color.New(color.FgRed)
	reminderColor = color.New(color.FgYellow)
	debugColor    = color.New(color.FgCyan)
)

var debugEnabled bool

// Init initializes the logger package, specifically enabling or disabling debug logging.
// When disabled, Debug silently ignores its arguments.
func Init(enableDebug bool) {
	debugEnabled = enableDebug
}

// SetOutput redirects all log levels to w. It returns the previous writer so
// callers can restore it.
func SetOutput(w io.Writer) io.Writer {
	prev := out
	out = w
	return prev
}

// Info logs progress that needs no action.
func Info(format string, a ...any) { emit(infoColor, "INFO", format, a...) }

// Warn logs a degraded but non-fatal condition.
func Warn(format string, a ...any) { emit(warnColor, "WARNING", format, a...) }

// Error logs a fatal condition. The caller decides whether to exit.
func Error(format string, a ...any) { emit(errorColor, "ERROR", format, a...) }

// Reminder logs something the operator has to do by hand after the run.
func Reminder(format string, a ...any) { emit(reminderColor, "REMINDER", format, a...) }

// Debug logs only when Init(true) was called.
func Debug(format string, a ...any) {
	if !debugEnabled {
		return
	}
	emit(debugColor, "DEBUG", format, a...)
}

func emit(c *color.Color, level, format string, a ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, a...), "\n")
	c.Fprintf(out, "%s [%s] %s\n", now().Format(TimeFormat), level, msg)
}
