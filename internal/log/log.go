// Package log is the module's leveled logger. The parser uses it as the
// default sink for non-fatal syntax warnings; output and level are settable
// so embedding tools and tests can capture or silence it.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level represents the severity of a log message
type Level int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug Level = iota
	// LevelWarn is for recoverable syntax conditions
	LevelWarn
	// LevelError is for errors that may affect functionality
	LevelError
)

var (
	mu       sync.Mutex
	output   io.Writer = os.Stderr
	minLevel           = LevelWarn
	prefix             = "[vds]"
)

// SetOutput sets the output destination; nil discards all output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetLevel sets the minimum log level to display
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	write(LevelDebug, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...any) {
	write(LevelWarn, format, args...)
}

// Error logs an error message
func Error(format string, args ...any) {
	write(LevelError, format, args...)
}

func write(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if level < minLevel || output == nil {
		return
	}

	fmt.Fprintf(output, prefix+" "+format+"\n", args...)
}
