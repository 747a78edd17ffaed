package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// failingDocStore rejects every save.
type failingDocStore struct {
	driven.DocumentStore
}

func (f *failingDocStore) SaveDocument(_ context.Context, _ *domain.Document) error {
	return errors.New("disk full")
}

// mockFetcher returns a canned response or error.
type mockFetcher struct {
	result *driven.FetchResult
	err    error
	calls  []string
}

func (m *mockFetcher) Fetch(_ context.Context, rawURL string) (*driven.FetchResult, error) {
	m.calls = append(m.calls, rawURL)
	if m.err != nil {
		return nil, m.err
	}
	r := *m.result
	return &r, nil
}

// mockNotifier records notifications.
type mockNotifier struct {
	mu    sync.Mutex
	notes []driven.Notification
}

func (m *mockNotifier) Notify(_ context.Context, n driven.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notes = append(m.notes, n)
}

// mockRecorder records observations.
type mockRecorder struct {
	observed []domain.Status
	types    []domain.DocumentType
}

func (m *mockRecorder) ObserveIngest(docType domain.DocumentType, status domain.Status, _ time.Duration) {
	m.types = append(m.types, docType)
	m.observed = append(m.observed, status)
}

// mockConverter returns a fixed rendering or error.
type mockConverter struct {
	out string
	err error
}

func (m *mockConverter) Name() string { return "mock" }

func (m *mockConverter) Convert(_ context.Context, _ []byte) (string, error) {
	return m.out, m.err
}

// mockPageConverter records the page URL it was given.
type mockPageConverter struct {
	mockConverter
	pageURL string
}

func (m *mockPageConverter) ConvertPage(_ []byte, pageURL string) (string, error) {
	m.pageURL = pageURL
	return m.out, m.err
}

// failingReader fails on first read.
type failingReader struct{}

func (failingReader) Read(_ []byte) (int, error) {
	return 0, errors.New("connection reset")
}

// failingProcessor fails for a single document type.
type failingProcessor struct {
	docType domain.DocumentType
	err     error
}

func (p *failingProcessor) Name() string { return "failing" }

func (p *failingProcessor) SupportedTypes() []domain.DocumentType {
	return []domain.DocumentType{p.docType}
}

func (p *failingProcessor) Process(_ context.Context, _ string, _ *domain.ProcessedDocument) error {
	return p.err
}

func fileInput(name, content string) domain.Input {
	return domain.Input{File: &domain.FileInput{Name: name, Content: strings.NewReader(content)}}
}
