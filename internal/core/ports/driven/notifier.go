package driven

import (
	"context"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

// Notification reports the terminal state of one ingestion.
type Notification struct {
	// Name is the document name.
	Name string

	// DocumentID is the stored document ID.
	DocumentID string

	// Status is completed or error.
	Status domain.Status

	// Message is the processing error message when Status is error.
	Message string
}

// Notifier delivers ingestion outcomes to a user-facing surface.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
