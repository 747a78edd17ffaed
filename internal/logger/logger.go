// Package logger provides leveled logging for kgingest.
// When verbose mode is enabled via the --verbose flag, pipeline messages
// are printed to stderr to help users follow each ingestion. Errors are
// printed regardless of verbose mode.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	level             = zapcore.DebugLevel
	output  io.Writer = os.Stderr
	atom              = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	base              = build(os.Stderr)
)

// build creates a console logger writing "[LEVEL] message" lines to w.
func build(w io.Writer) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		EncodeLevel:      bracketLevel,
		ConsoleSeparator: " ",
	})
	return zap.New(zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), atom))
}

func bracketLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// apply recomputes the active level. Callers must hold mu.
func apply() {
	if verbose {
		atom.SetLevel(level)
		return
	}
	atom.SetLevel(zapcore.ErrorLevel)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	apply()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetLevel sets the minimum level printed while verbose (debug, info, warn, error).
func SetLevel(name string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}

	mu.Lock()
	defer mu.Unlock()
	level = l
	apply()
	return nil
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build(w)
}

// L returns the structured logger for adapters that log fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	L().Sugar().Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose && level <= zapcore.InfoLevel {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	L().Sugar().Infof(format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	L().Sugar().Warnf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	L().Sugar().Errorf(format, args...)
}
