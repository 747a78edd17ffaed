// Package markdown extracts heading and inline code entities from Markdown.
package markdown

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Processor = (*Processor)(nil)

var (
	headingPattern = regexp.MustCompile(`(?m)^#+\s+(.+)$`)
	codePattern    = regexp.MustCompile("`([^`]+)`")
)

// Processor handles Markdown documents.
type Processor struct{}

// New creates a new Markdown processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "markdown"
}

// SupportedTypes returns the document types this processor handles.
func (p *Processor) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.DocumentTypeMarkdown}
}

// Process records content and extracts ATX headings and inline code spans
// in the order they appear in the source.
func (p *Processor) Process(_ context.Context, content string, doc *domain.ProcessedDocument) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	doc.Content = content
	doc.Entities = Extract(content)
	return nil
}

type match struct {
	offset int
	entity domain.Entity
}

// Extract returns heading and code entities ordered by source position.
// Code spans inside a heading line are emitted after that heading.
func Extract(content string) []domain.Entity {
	var found []match

	for _, m := range headingPattern.FindAllStringSubmatchIndex(content, -1) {
		name := strings.TrimSpace(content[m[2]:m[3]])
		found = append(found, match{
			offset: m[0],
			entity: domain.Entity{Name: name, Type: domain.EntityTypeHeading},
		})
	}

	for _, m := range codePattern.FindAllStringSubmatchIndex(content, -1) {
		found = append(found, match{
			offset: m[0],
			entity: domain.Entity{Name: content[m[2]:m[3]], Type: domain.EntityTypeCode},
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].offset < found[j].offset
	})

	entities := make([]domain.Entity, 0, len(found))
	for _, f := range found {
		entities = append(entities, f.entity)
	}
	return entities
}
