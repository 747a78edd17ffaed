package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentType_IsValid(t *testing.T) {
	for _, dt := range AllDocumentTypes() {
		t.Run(dt.String(), func(t *testing.T) {
			assert.True(t, dt.IsValid())
		})
	}

	assert.False(t, DocumentType("docx").IsValid())
	assert.False(t, DocumentType("").IsValid())
}

func TestAllDocumentTypes_ClosedSet(t *testing.T) {
	types := AllDocumentTypes()
	require.Len(t, types, 9)
	assert.Equal(t, []DocumentType{"text", "url", "pdf", "csv", "json", "json-ld", "rdf", "md", "ppt"}, types)
}

func TestDocumentType_IsStructured(t *testing.T) {
	assert.True(t, DocumentTypeJSON.IsStructured())
	assert.True(t, DocumentTypeJSONLD.IsStructured())
	assert.False(t, DocumentTypeRDF.IsStructured())
	assert.False(t, DocumentTypeText.IsStructured())
}

func TestStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusPending, false},
		{StatusProcessing, false},
		{StatusCompleted, true},
		{StatusError, true},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestProcessedDocument_Complete(t *testing.T) {
	doc := &ProcessedDocument{Status: StatusProcessing}
	doc.Complete()

	assert.Equal(t, StatusCompleted, doc.Status)
	assert.Empty(t, doc.Error)
}

func TestProcessedDocument_Fail(t *testing.T) {
	t.Run("records error message", func(t *testing.T) {
		doc := &ProcessedDocument{Status: StatusProcessing, Name: "data.json", Size: 12}
		doc.Fail(errors.New("unexpected end of JSON input"))

		assert.Equal(t, StatusError, doc.Status)
		assert.Equal(t, "unexpected end of JSON input", doc.Error)
		assert.Equal(t, "data.json", doc.Name)
		assert.Equal(t, int64(12), doc.Size)
	})

	t.Run("nil error uses fallback message", func(t *testing.T) {
		doc := &ProcessedDocument{Status: StatusProcessing}
		doc.Fail(nil)

		assert.Equal(t, StatusError, doc.Status)
		assert.Equal(t, UnknownErrorMessage, doc.Error)
	})

	t.Run("empty message uses fallback message", func(t *testing.T) {
		doc := &ProcessedDocument{Status: StatusProcessing}
		doc.Fail(errors.New(""))

		assert.Equal(t, UnknownErrorMessage, doc.Error)
	})
}

func TestProcessedDocument_HasExtraction(t *testing.T) {
	doc := &ProcessedDocument{}
	assert.False(t, doc.HasExtraction())

	doc.Entities = []Entity{}
	assert.True(t, doc.HasExtraction())
}

func TestDocument_Fields(t *testing.T) {
	now := time.Now()
	doc := Document{
		ID:         "01HZX",
		Name:       "guide.md",
		Type:       "text/markdown",
		Size:       128,
		Status:     StatusCompleted,
		UploadedAt: now,
		Content:    "# Guide",
		Entities:   []Entity{{Name: "Guide", Type: EntityTypeHeading}},
	}

	assert.Equal(t, "01HZX", doc.ID)
	assert.Equal(t, "guide.md", doc.Name)
	assert.Equal(t, "text/markdown", doc.Type)
	assert.Equal(t, int64(128), doc.Size)
	assert.Equal(t, StatusCompleted, doc.Status)
	assert.Equal(t, now, doc.UploadedAt)
	assert.Empty(t, doc.URL)
	require.Len(t, doc.Entities, 1)
	assert.Equal(t, "heading", doc.Entities[0].Type)
}
