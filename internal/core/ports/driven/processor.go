package driven

import (
	"context"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

// Processor extracts content and entities from the text of a document.
// Each processor handles one family of document types (e.g., JSON, Markdown).
type Processor interface {
	// Name returns the processor name for logging.
	Name() string

	// SupportedTypes returns the document types this processor handles.
	SupportedTypes() []domain.DocumentType

	// Process populates doc from content. It must not change doc.Status or
	// doc.Error; the orchestrator owns the lifecycle. A returned error is
	// recorded on the document by the caller.
	Process(ctx context.Context, content string, doc *domain.ProcessedDocument) error
}

// ProcessorRegistry selects the processor for a document type.
type ProcessorRegistry interface {
	// Process dispatches to the processor registered for doc.Type.
	Process(ctx context.Context, content string, doc *domain.ProcessedDocument) error

	// ProcessAs dispatches to the processor for the given type without
	// changing doc.Type. The URL path uses it to route by content type.
	ProcessAs(ctx context.Context, docType domain.DocumentType, content string, doc *domain.ProcessedDocument) error

	// Register adds a processor for all of its supported types.
	Register(processor Processor)
}
