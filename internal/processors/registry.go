package processors

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ProcessorRegistry = (*Registry)(nil)

// Registry maps document types to processors.
type Registry struct {
	mu         sync.RWMutex
	processors map[domain.DocumentType]driven.Processor
}

// NewRegistry creates an empty processor registry.
func NewRegistry() *Registry {
	return &Registry{
		processors: make(map[domain.DocumentType]driven.Processor),
	}
}

// Register adds a processor for all of its supported types, replacing any
// processor previously registered for them.
func (r *Registry) Register(processor driven.Processor) {
	if processor == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range processor.SupportedTypes() {
		r.processors[t] = processor
	}
}

// Process dispatches to the processor for doc.Type.
func (r *Registry) Process(ctx context.Context, content string, doc *domain.ProcessedDocument) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	return r.ProcessAs(ctx, doc.Type, content, doc)
}

// ProcessAs dispatches to the processor for docType, leaving doc.Type unchanged.
func (r *Registry) ProcessAs(ctx context.Context, docType domain.DocumentType, content string, doc *domain.ProcessedDocument) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}
	p, err := r.Lookup(docType)
	if err != nil {
		return err
	}
	return p.Process(ctx, content, doc)
}

// Lookup returns the processor for t. Types without a dedicated processor
// fall back to the text processor.
func (r *Registry) Lookup(t domain.DocumentType) (driven.Processor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch t {
	case domain.DocumentTypeJSON, domain.DocumentTypeJSONLD,
		domain.DocumentTypeRDF,
		domain.DocumentTypeMarkdown,
		domain.DocumentTypePDF, domain.DocumentTypeCSV,
		domain.DocumentTypeText, domain.DocumentTypePPT, domain.DocumentTypeURL:
		if p, ok := r.processors[t]; ok {
			return p, nil
		}
	}

	if p, ok := r.processors[domain.DocumentTypeText]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("no processor for %q: %w", t, domain.ErrUnsupportedType)
}

// Types returns the document types with a registered processor.
func (r *Registry) Types() []domain.DocumentType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]domain.DocumentType, 0, len(r.processors))
	for _, t := range domain.AllDocumentTypes() {
		if _, ok := r.processors[t]; ok {
			types = append(types, t)
		}
	}
	return types
}
