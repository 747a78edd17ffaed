package services

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kgingest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgingest/internal/core/domain"
)

func TestNewDocumentService(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())
	require.NotNil(t, svc)
}

func TestDocumentService_Register_File(t *testing.T) {
	store := memory.NewDocumentStore()
	svc := NewDocumentService(store)
	ctx := context.Background()

	entities := []domain.Entity{{Name: "Guide", Type: domain.EntityTypeHeading}}
	doc, err := svc.Register(ctx,
		domain.UploadSource{Name: "guide.md", Size: 7},
		domain.UploadOptions{Content: "# Guide", Entities: entities, Status: domain.StatusCompleted},
	)

	require.NoError(t, err)
	_, err = ulid.ParseStrict(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "guide.md", doc.Name)
	assert.Equal(t, "text/markdown", doc.Type)
	assert.Equal(t, int64(7), doc.Size)
	assert.Equal(t, domain.StatusCompleted, doc.Status)
	assert.Equal(t, "# Guide", doc.Content)
	assert.Equal(t, entities, doc.Entities)
	assert.Empty(t, doc.URL)
	assert.WithinDuration(t, time.Now(), doc.UploadedAt, time.Minute)

	stored, err := store.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Name, stored.Name)
}

func TestDocumentService_Register_URL(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())

	doc, err := svc.Register(context.Background(),
		domain.UploadSource{Name: "example.com", URL: "https://example.com/a", MIMEType: "text/html"},
		domain.UploadOptions{Content: "<p>hi</p>", Status: domain.StatusCompleted},
	)

	require.NoError(t, err)
	assert.Equal(t, URLDocumentType, doc.Type)
	assert.Equal(t, "https://example.com/a", doc.URL)
	assert.Zero(t, doc.Size)
}

func TestDocumentService_Register_DeclaredMIMEType(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())

	doc, err := svc.Register(context.Background(),
		domain.UploadSource{Name: "notes", MIMEType: "text/plain"},
		domain.UploadOptions{Status: domain.StatusCompleted},
	)

	require.NoError(t, err)
	assert.Equal(t, "text/plain", doc.Type)
}

func TestDocumentService_Register_StoresErrorStatus(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())

	doc, err := svc.Register(context.Background(),
		domain.UploadSource{Name: "broken.json"},
		domain.UploadOptions{Status: domain.StatusError},
	)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusError, doc.Status)
	assert.Nil(t, doc.Entities)
}

func TestDocumentService_Register_StoreError(t *testing.T) {
	svc := NewDocumentService(&failingDocStore{})

	doc, err := svc.Register(context.Background(),
		domain.UploadSource{Name: "a.txt"},
		domain.UploadOptions{Status: domain.StatusCompleted},
	)

	assert.Nil(t, doc)
	assert.ErrorIs(t, err, domain.ErrRegistrationFailed)
	assert.Contains(t, err.Error(), "disk full")
}

func TestDocumentService_List_UploadOrder(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"c.txt", "a.txt", "b.txt"} {
		doc, err := svc.Register(ctx, domain.UploadSource{Name: name}, domain.UploadOptions{Status: domain.StatusCompleted})
		require.NoError(t, err)
		ids = append(ids, doc.ID)
	}

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	for i, doc := range docs {
		assert.Equal(t, ids[i], doc.ID)
	}
	assert.Equal(t, "c.txt", docs[0].Name)
}

func TestDocumentService_List_Empty(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())

	docs, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentService_GetAndContent(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())
	ctx := context.Background()

	doc, err := svc.Register(ctx, domain.UploadSource{Name: "a.txt"},
		domain.UploadOptions{Content: "plain words", Status: domain.StatusCompleted})
	require.NoError(t, err)

	got, err := svc.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	content, err := svc.GetContent(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "plain words", content)
}

func TestDocumentService_Get_NotFound(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetContent(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_Get_EmptyID(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.ErrorIs(t, svc.Delete(context.Background(), ""), domain.ErrInvalidInput)
}

func TestDocumentService_Delete(t *testing.T) {
	svc := NewDocumentService(memory.NewDocumentStore())
	ctx := context.Background()

	doc, err := svc.Register(ctx, domain.UploadSource{Name: "a.txt"}, domain.UploadOptions{Status: domain.StatusCompleted})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, doc.ID))

	_, err = svc.Get(ctx, doc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, doc.ID), domain.ErrNotFound)
}

func TestDocumentService_NilDocStore(t *testing.T) {
	svc := NewDocumentService(nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.UploadSource{}, domain.UploadOptions{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	_, err = svc.List(ctx)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	_, err = svc.Get(ctx, "id")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	_, err = svc.GetContent(ctx, "id")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	assert.ErrorIs(t, svc.Delete(ctx, "id"), domain.ErrNotImplemented)
}

func TestMIMETypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"data.json", "application/json"},
		{"README.MD", "text/markdown"},
		{"notes.markdown", "text/markdown"},
		{"paper.pdf", "application/pdf"},
		{"table.csv", "text/csv"},
		{"graph.rdf", "application/rdf+xml"},
		{"graph.ttl", "text/turtle"},
		{"graph.n3", "text/n3"},
		{"notes.txt", "text/plain"},
		{"deck.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
		{"Makefile", "application/octet-stream"},
		{"blob.zzunknown", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, MIMETypeFor(tt.filename))
		})
	}
}
