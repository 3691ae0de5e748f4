// Package logger provides the leveled logger used across taskpull.
// Components own a *Logger handed to them at construction; verbosity is
// decided once in the CLI layer and nothing here is process-global.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Logger writes leveled messages to a single writer. Debug messages are
// suppressed unless verbose mode was requested.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	out     io.Writer
}

// New creates a logger writing to stderr.
func New(verbose bool) *Logger {
	return &Logger{verbose: verbose, out: os.Stderr}
}

// NewWithWriter creates a logger with a custom writer. Useful for testing.
func NewWithWriter(verbose bool, w io.Writer) *Logger {
	return &Logger{verbose: verbose, out: w}
}

// Discard returns a logger that drops everything. Useful for tests.
func Discard() *Logger {
	return &Logger{out: io.Discard}
}

// Verbose returns true if debug output is enabled.
func (l *Logger) Verbose() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.verbose
}

// Debug prints a message if verbose mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.verbose {
		fmt.Fprintf(l.out, "[DEBUG] "+format+"\n", args...)
	}
}

// Info prints an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "[WARN] "+format+"\n", args...)
}
