// Package notify implements driven.Notifier for terminal and log surfaces.
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
	"github.com/custodia-labs/kgingest/internal/logger"
)

// Ensure notifiers implement the interface.
var (
	_ driven.Notifier = (*Writer)(nil)
	_ driven.Notifier = (*Log)(nil)
)

// Writer prints one line per notification.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a notifier that writes to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Notify prints the outcome of one ingestion.
func (w *Writer) Notify(_ context.Context, n driven.Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintln(w.out, Format(n)) //nolint:errcheck
}

// Log reports notifications through the package logger.
type Log struct{}

// NewLog creates a logger-backed notifier.
func NewLog() *Log {
	return &Log{}
}

// Notify logs completed ingestions at info and failures at warn.
func (l *Log) Notify(_ context.Context, n driven.Notification) {
	if n.Status == domain.StatusError {
		logger.Warn("%s", Format(n))
		return
	}
	logger.Info("%s", Format(n))
}

// Format renders a notification as a single line.
func Format(n driven.Notification) string {
	switch {
	case n.Status == domain.StatusError && n.DocumentID == "":
		return fmt.Sprintf("failed: %s: %s", n.Name, n.Message)
	case n.Status == domain.StatusError:
		return fmt.Sprintf("stored with errors: %s (%s): %s", n.Name, n.DocumentID, n.Message)
	default:
		return fmt.Sprintf("processed: %s (%s)", n.Name, n.DocumentID)
	}
}
