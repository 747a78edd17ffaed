package rdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Processor = (*Processor)(nil)
}

func TestNew(t *testing.T) {
	p := New()
	require.NotNil(t, p)
	assert.Equal(t, "rdf", p.Name())
	assert.Equal(t, []domain.DocumentType{domain.DocumentTypeRDF}, p.SupportedTypes())
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "turtle triple",
			content:  "<http://a> <http://b> <http://c> .",
			expected: []string{"http://a", "http://b", "http://c"},
		},
		{
			name:     "duplicates kept",
			content:  "<http://a> <http://p> <http://a> .\n<http://a> <http://p> \"lit\" .",
			expected: []string{"http://a", "http://p", "http://a", "http://a", "http://p"},
		},
		{
			name:     "xml tags match",
			content:  `<rdf:RDF><rdf:Description/></rdf:RDF>`,
			expected: []string{"rdf:RDF", "rdf:Description/", "/rdf:RDF"},
		},
		{
			name:     "no tokens",
			content:  "plain text with no brackets",
			expected: []string{},
		},
		{
			name:     "empty brackets ignored",
			content:  "<> <x>",
			expected: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &domain.ProcessedDocument{Type: domain.DocumentTypeRDF, Status: domain.StatusProcessing}
			require.NoError(t, New().Process(context.Background(), tt.content, doc))

			names := make([]string, 0, len(doc.Entities))
			for _, e := range doc.Entities {
				assert.Equal(t, domain.EntityTypeResource, e.Type)
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.expected, names)
			assert.NotNil(t, doc.Entities)
			assert.NotNil(t, doc.Relationships)
			assert.Empty(t, doc.Relationships)
			assert.Equal(t, tt.content, doc.Content)
			assert.Equal(t, domain.StatusProcessing, doc.Status)
		})
	}
}

func TestProcess_NilDocument(t *testing.T) {
	assert.ErrorIs(t, New().Process(context.Background(), "<x>", nil), domain.ErrInvalidInput)
}
