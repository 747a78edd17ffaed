// Package plaintext stores document text unchanged.
package plaintext

import (
	"context"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Processor = (*Processor)(nil)

// Processor is the fallback for text, presentations and unrecognised types.
type Processor struct{}

// New creates a new plaintext processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "plaintext"
}

// SupportedTypes returns the document types this processor handles.
func (p *Processor) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.DocumentTypeText, domain.DocumentTypePPT, domain.DocumentTypeURL}
}

// Process sets content to the raw text. No entities are extracted.
func (p *Processor) Process(_ context.Context, content string, doc *domain.ProcessedDocument) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	doc.Content = content
	return nil
}
