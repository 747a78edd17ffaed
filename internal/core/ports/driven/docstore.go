package driven

import (
	"context"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

// DocumentStore persists registered documents.
// Backed by SQLite by default, or memory for tests and ephemeral runs.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents ordered by ID.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, id string) error
}
