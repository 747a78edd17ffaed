package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"mime"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
	"github.com/custodia-labs/kgingest/internal/core/ports/driving"
	"github.com/custodia-labs/kgingest/internal/detector"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// URLDocumentType is the stored type of URL-sourced documents.
const URLDocumentType = "url"

// defaultMIMEType is used when neither the caller nor the extension names a type.
const defaultMIMEType = "application/octet-stream"

// extensionMIMETypes covers the upload formats whose MIME type is not
// reliably known to the platform table.
var extensionMIMETypes = map[string]string{
	"json":     "application/json",
	"md":       "text/markdown",
	"markdown": "text/markdown",
	"pdf":      "application/pdf",
	"csv":      "text/csv",
	"rdf":      "application/rdf+xml",
	"ttl":      "text/turtle",
	"n3":       "text/n3",
	"txt":      "text/plain",
	"ppt":      "application/vnd.ms-powerpoint",
	"pptx":     "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// DocumentService registers processed documents and reads them back.
type DocumentService struct {
	docStore driven.DocumentStore
	now      func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		now:      time.Now,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Register builds a stored document from the source and options and saves it.
func (s *DocumentService) Register(
	ctx context.Context,
	source domain.UploadSource,
	opts domain.UploadOptions,
) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}

	uploadedAt := s.now().UTC()
	doc := &domain.Document{
		ID:         s.newID(uploadedAt),
		Name:       source.Name,
		Type:       storedType(source),
		Size:       source.Size,
		Status:     opts.Status,
		UploadedAt: uploadedAt,
		URL:        source.URL,
		Content:    opts.Content,
		Entities:   opts.Entities,
	}

	if err := s.docStore.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRegistrationFailed, err)
	}
	return doc, nil
}

// List returns all stored documents in upload order.
func (s *DocumentService) List(ctx context.Context) ([]domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.docStore.ListDocuments(ctx)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	if s.docStore == nil {
		return nil, domain.ErrNotImplemented
	}
	if documentID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// GetContent returns the stored content of a document.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return "", err
	}
	return doc.Content, nil
}

// Delete removes a document.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if s.docStore == nil {
		return domain.ErrNotImplemented
	}
	if documentID == "" {
		return domain.ErrInvalidInput
	}
	return s.docStore.DeleteDocument(ctx, documentID)
}

// newID returns a ULID for t. Monotonic entropy keeps IDs issued within the
// same millisecond in issue order.
func (s *DocumentService) newID(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

// storedType returns "url" for URL sources and a MIME type for files.
func storedType(source domain.UploadSource) string {
	if source.IsURL() {
		return URLDocumentType
	}
	if source.MIMEType != "" {
		return source.MIMEType
	}
	return MIMETypeFor(source.Name)
}

// MIMETypeFor returns the MIME type implied by a filename's extension.
func MIMETypeFor(filename string) string {
	ext := detector.Extension(filename)
	if ext == "" {
		return defaultMIMEType
	}
	if t, ok := extensionMIMETypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension("." + ext); t != "" {
		// Drop parameters such as "; charset=utf-8".
		if i := strings.IndexByte(t, ';'); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return defaultMIMEType
}
