package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result *domain.IngestResult
	err    error

	inputs   []domain.Input
	contents []string
}

func (m *mockIngestService) ProcessFile(_ context.Context, _ domain.FileInput) (*domain.ProcessedDocument, error) {
	return m.result.Processed, m.err
}

func (m *mockIngestService) ProcessURL(_ context.Context, _ string) (*domain.ProcessedDocument, error) {
	return m.result.Processed, m.err
}

func (m *mockIngestService) Process(_ context.Context, _ domain.Input) (*domain.ProcessedDocument, error) {
	return m.result.Processed, m.err
}

func (m *mockIngestService) Ingest(_ context.Context, input domain.Input) (*domain.IngestResult, error) {
	m.inputs = append(m.inputs, input)
	if input.File != nil && input.File.Content != nil {
		b, _ := io.ReadAll(input.File.Content)
		m.contents = append(m.contents, string(b))
	}
	if m.err != nil {
		return &domain.IngestResult{Input: input.Label(), Err: m.err}, m.err
	}
	return m.result, nil
}

func (m *mockIngestService) IngestBatch(ctx context.Context, inputs []domain.Input) ([]domain.IngestResult, error) {
	results := make([]domain.IngestResult, 0, len(inputs))
	for _, in := range inputs {
		r, _ := m.Ingest(ctx, in)
		results = append(results, *r)
	}
	return results, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	documents []domain.Document
	document  *domain.Document
	content   string
	err       error
	gotID     string
}

func (m *mockDocumentService) Register(
	_ context.Context,
	_ domain.UploadSource,
	_ domain.UploadOptions,
) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return m.documents, m.err
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	m.gotID = id
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (string, error) {
	return m.content, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}
