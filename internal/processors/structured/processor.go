// Package structured extracts typed entities from JSON and JSON-LD documents.
package structured

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// Ensure Processor implements the interface.
var _ driven.Processor = (*Processor)(nil)

// errNullRoot is returned for a document whose root is the literal null.
var errNullRoot = errors.New("cannot walk a null document")

// Processor walks parsed JSON and emits an entity for every nested object
// carrying an @type key.
type Processor struct{}

// New creates a new structured-data processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "structured"
}

// SupportedTypes returns the document types this processor handles.
func (p *Processor) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{domain.DocumentTypeJSON, domain.DocumentTypeJSONLD}
}

// Process parses content and extracts entities depth first in document
// key order. Content is set only when parsing succeeds.
func (p *Processor) Process(_ context.Context, content string, doc *domain.ProcessedDocument) error {
	if doc == nil {
		return domain.ErrInvalidInput
	}

	root, err := parse(content)
	if err != nil {
		return err
	}

	entities := make([]domain.Entity, 0)
	walk(root, "", &entities)

	doc.Content = content
	doc.Entities = entities
	doc.Relationships = make([]domain.Relationship, 0)
	return nil
}

// parse validates content and decodes it into an ordered tree.
func parse(content string) (*node, error) {
	if err := json.Unmarshal([]byte(content), new(json.RawMessage)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	dec := json.NewDecoder(strings.NewReader(content))
	dec.UseNumber()
	root, err := decodeTree(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}
	if root.isNull() {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, errNullRoot)
	}
	return root, nil
}

// walk visits every object and array member below n. Paths are built from
// keys joined by dots; array members use their index as key.
func walk(n *node, path string, out *[]domain.Entity) {
	for i, key := range n.keys {
		child := n.elems[i]
		if child.kind == kindScalar {
			continue
		}

		if typ, ok := child.member("@type"); ok {
			*out = append(*out, domain.Entity{
				Name: entityName(child, path+key),
				Type: entityType(typ),
			})
		}

		walk(child, path+key+".", out)
	}
}

// entityName returns the stringified @id, or fallback when @id is absent,
// null or renders empty.
func entityName(obj *node, fallback string) string {
	id, ok := obj.member("@id")
	if !ok || id.isNull() {
		return fallback
	}
	if name := id.text(); name != "" {
		return name
	}
	return fallback
}

func entityType(typ *node) string {
	if typ.isNull() {
		return domain.EntityTypeUnknown
	}
	if t := typ.text(); t != "" {
		return t
	}
	return domain.EntityTypeUnknown
}
