// Package rdf extracts IRI resources from RDF/XML, Turtle and N3 text.
package rdf

import (
	"context"
	"regexp"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Processor = (*Processor)(nil)

// iriPattern matches angle-bracketed tokens such as <http://example.org/a>.
var iriPattern = regexp.MustCompile(`<([^>]+)>`)

// Processor emits one resource entity per angle-bracketed token.
// It does not parse RDF; XML tags match the same pattern.
type Processor struct{}

// New creates a new RDF processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "rdf"
}

// SupportedTypes returns the document types this processor handles.
func (p *Processor) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.DocumentTypeRDF}
}

// Process records content and one entity per match, in order, keeping duplicates.
func (p *Processor) Process(_ context.Context, content string, doc *domain.ProcessedDocument) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	matches := iriPattern.FindAllStringSubmatch(content, -1)
	entities := make([]domain.Entity, 0, len(matches))
	for _, m := range matches {
		entities = append(entities, domain.Entity{
			Name: m[1],
			Type: domain.EntityTypeResource,
		})
	}

	doc.Content = content
	doc.Entities = entities
	doc.Relationships = make([]domain.Relationship, 0)
	return nil
}
