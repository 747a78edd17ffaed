// Package binary converts PDF and CSV documents to Markdown through
// pluggable converters, keeping the raw text when no conversion is possible.
package binary

import (
	"context"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
	"github.com/custodia-labs/kgingest/internal/logger"
)

// Ensure Processor implements the interface.
var _ driven.Processor = (*Processor)(nil)

// Option configures a Processor.
type Option func(*Processor)

// WithConverter registers a converter for a document type.
func WithConverter(t domain.DocumentType, c driven.Converter) Option {
	return func(p *Processor) {
		if c != nil {
			p.converters[t] = c
		}
	}
}

// Processor handles binary formats. It never extracts entities and never
// fails on conversion errors.
type Processor struct {
	converters map[domain.DocumentType]driven.Converter
}

// New creates a binary processor. Without options every document
// degrades to its raw text.
func New(opts ...Option) *Processor {
	p := &Processor{converters: make(map[domain.DocumentType]driven.Converter)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "binary"
}

// SupportedTypes returns the document types this processor handles.
func (p *Processor) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.DocumentTypePDF, domain.DocumentTypeCSV}
}

// Process sets content to the converted Markdown, or to the raw text when
// no converter is registered for doc.Type or conversion fails.
func (p *Processor) Process(ctx context.Context, content string, doc *domain.ProcessedDocument) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	doc.Content = content

	conv, ok := p.converters[doc.Type]
	if !ok {
		logger.Debug("binary: no converter for %s, keeping raw text of %s", doc.Type, doc.Name)
		return nil
	}

	md, err := conv.Convert(ctx, []byte(content))
	if err != nil {
		logger.Warn("binary: %s conversion of %s failed, keeping raw text: %v", conv.Name(), doc.Name, err)
		return nil
	}

	doc.Content = md
	return nil
}
