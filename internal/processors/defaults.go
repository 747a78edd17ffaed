package processors

import (
	"github.com/custodia-labs/kgingest/internal/converters/csv"
	"github.com/custodia-labs/kgingest/internal/converters/pdf"
	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/processors/binary"
	"github.com/custodia-labs/kgingest/internal/processors/markdown"
	"github.com/custodia-labs/kgingest/internal/processors/plaintext"
	"github.com/custodia-labs/kgingest/internal/processors/rdf"
	"github.com/custodia-labs/kgingest/internal/processors/structured"
)

// RegisterDefaults registers all built-in processors with the registry.
// PDF and CSV documents are converted to Markdown.
func RegisterDefaults(r *Registry) {
	r.Register(plaintext.New())
	r.Register(structured.New())
	r.Register(rdf.New())
	r.Register(markdown.New())
	r.Register(binary.New(
		binary.WithConverter(domain.DocumentTypePDF, pdf.New()),
		binary.WithConverter(domain.DocumentTypeCSV, csv.New()),
	))
}

// NewDefaultRegistry creates a registry with the built-in processors.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}
