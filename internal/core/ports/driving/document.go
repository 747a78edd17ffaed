package driving

import (
	"context"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

// DocumentService registers and retrieves stored documents.
type DocumentService interface {
	// Register stores a document built from the source and options.
	Register(ctx context.Context, source domain.UploadSource, opts domain.UploadOptions) (*domain.Document, error)

	// List returns all stored documents in upload order.
	List(ctx context.Context) ([]domain.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the stored content of a document.
	GetContent(ctx context.Context, documentID string) (string, error)

	// Delete removes a document.
	Delete(ctx context.Context, documentID string) error
}
