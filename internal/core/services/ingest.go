package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
	"github.com/custodia-labs/kgingest/internal/core/ports/driving"
	"github.com/custodia-labs/kgingest/internal/detector"
	"github.com/custodia-labs/kgingest/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// pageConverter is implemented by converters that resolve relative links
// against the page they were fetched from.
type pageConverter interface {
	ConvertPage(raw []byte, pageURL string) (string, error)
}

// IngestService classifies, processes and registers documents.
type IngestService struct {
	registry  driven.ProcessorRegistry
	fetcher   driven.URLFetcher
	documents driving.DocumentService
	notifier  driven.Notifier
	recorder  driven.IngestRecorder
	html      driven.Converter
	now       func() time.Time
}

// IngestOption configures an IngestService.
type IngestOption func(*IngestService)

// WithNotifier reports the terminal status of each ingestion.
func WithNotifier(n driven.Notifier) IngestOption {
	return func(s *IngestService) { s.notifier = n }
}

// WithRecorder observes each processed document.
func WithRecorder(r driven.IngestRecorder) IngestOption {
	return func(s *IngestService) { s.recorder = r }
}

// WithHTMLConverter converts text/html URL bodies before they are stored.
// A nil converter keeps HTML bodies verbatim.
func WithHTMLConverter(c driven.Converter) IngestOption {
	return func(s *IngestService) { s.html = c }
}

// NewIngestService creates a new ingest service. The fetcher may be nil,
// in which case URL inputs fail with domain.ErrFetchFailed.
func NewIngestService(
	registry driven.ProcessorRegistry,
	fetcher driven.URLFetcher,
	documents driving.DocumentService,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		registry:  registry,
		fetcher:   fetcher,
		documents: documents,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessFile reads, classifies and processes a file. A processing failure
// is recorded on the returned document; only a read failure is returned.
func (s *IngestService) ProcessFile(ctx context.Context, file domain.FileInput) (*domain.ProcessedDocument, error) {
	if s.registry == nil {
		return nil, domain.ErrNotImplemented
	}
	if file.Content == nil {
		return nil, fmt.Errorf("%w: %s: no content", domain.ErrReadFailed, file.Name)
	}

	raw, err := io.ReadAll(file.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrReadFailed, file.Name, err)
	}
	content := string(raw)
	start := s.now()

	doc := &domain.ProcessedDocument{
		ID:        uuid.New().String(),
		Name:      file.Name,
		Type:      detector.Classify(file.Name, content),
		Size:      int64(len(raw)),
		Status:    domain.StatusProcessing,
		CreatedAt: start,
	}
	logger.Debug("Processing %s as %s (%d bytes)", doc.Name, doc.Type, doc.Size)

	s.finish(doc, s.registry.Process(ctx, content, doc), start)
	return doc, nil
}

// ProcessURL fetches a URL and processes the body according to its content
// type. URL parse and fetch failures are returned; processing failures are
// recorded on the document.
func (s *IngestService) ProcessURL(ctx context.Context, rawURL string) (*domain.ProcessedDocument, error) {
	if s.registry == nil {
		return nil, domain.ErrNotImplemented
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse url %q: %v", domain.ErrInvalidInput, rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: parse url %q: missing scheme or host", domain.ErrInvalidInput, rawURL)
	}
	if s.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", domain.ErrFetchFailed)
	}

	start := s.now()
	res, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		logger.Warn("Fetched %s with status %d", rawURL, res.StatusCode)
	}

	doc := &domain.ProcessedDocument{
		ID:        uuid.New().String(),
		Name:      u.Hostname(),
		Type:      domain.DocumentTypeURL,
		Size:      int64(len(res.Body)),
		Status:    domain.StatusProcessing,
		CreatedAt: start,
		URL:       rawURL,
	}
	logger.Debug("Processing %s (content type %q, %d bytes)", rawURL, res.ContentType, doc.Size)

	s.finish(doc, s.processBody(ctx, res, doc), start)
	return doc, nil
}

// processBody routes a fetched body by its declared content type. JSON is
// checked before Markdown; an unmatched type is stored verbatim.
func (s *IngestService) processBody(ctx context.Context, res *driven.FetchResult, doc *domain.ProcessedDocument) error {
	contentType := strings.ToLower(res.ContentType)

	switch {
	case strings.Contains(contentType, "json"):
		return s.registry.ProcessAs(ctx, domain.DocumentTypeJSON, res.Body, doc)
	case strings.Contains(contentType, "text/markdown"):
		return s.registry.ProcessAs(ctx, domain.DocumentTypeMarkdown, res.Body, doc)
	case s.html != nil && strings.Contains(contentType, "text/html"):
		doc.Content = s.convertHTML(ctx, res.Body, doc.URL)
		return nil
	default:
		doc.Content = res.Body
		return nil
	}
}

// convertHTML returns the Markdown rendering of body, or body itself when
// conversion fails.
func (s *IngestService) convertHTML(ctx context.Context, body, pageURL string) string {
	var (
		md  string
		err error
	)
	if pc, ok := s.html.(pageConverter); ok {
		md, err = pc.ConvertPage([]byte(body), pageURL)
	} else {
		md, err = s.html.Convert(ctx, []byte(body))
	}
	if err != nil {
		logger.Warn("HTML conversion failed for %s, keeping raw body: %v", pageURL, err)
		return body
	}
	return md
}

// finish moves doc to its terminal status and records it.
func (s *IngestService) finish(doc *domain.ProcessedDocument, err error, start time.Time) {
	if err != nil {
		doc.Fail(err)
		logger.Debug("Processing %s failed: %s", doc.Name, doc.Error)
	} else {
		doc.Complete()
	}
	if s.recorder != nil {
		s.recorder.ObserveIngest(doc.Type, doc.Status, s.now().Sub(start))
	}
}

// Process takes the URL path when input.URL is set and the file path otherwise.
func (s *IngestService) Process(ctx context.Context, input domain.Input) (*domain.ProcessedDocument, error) {
	if input.IsURL() {
		return s.ProcessURL(ctx, input.URL)
	}
	if input.File == nil {
		return nil, domain.ErrInvalidInput
	}
	return s.ProcessFile(ctx, *input.File)
}

// Ingest processes the input, registers the result and notifies. The
// returned result is never nil; its Err mirrors the returned error.
func (s *IngestService) Ingest(ctx context.Context, input domain.Input) (*domain.IngestResult, error) {
	result := &domain.IngestResult{Input: input.Label()}

	doc, err := s.Process(ctx, input)
	if err != nil {
		result.Err = err
		s.notify(ctx, driven.Notification{Name: result.Input, Status: domain.StatusError, Message: err.Error()})
		return result, err
	}
	result.Processed = doc

	if s.documents == nil {
		result.Err = domain.ErrNotImplemented
		return result, result.Err
	}

	stored, err := s.documents.Register(ctx, uploadSource(input, doc), domain.UploadOptions{
		Content:  doc.Content,
		Entities: doc.Entities,
		Status:   doc.Status,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrRegistrationFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrRegistrationFailed, err)
		}
		result.Err = err
		s.notify(ctx, driven.Notification{Name: doc.Name, Status: domain.StatusError, Message: err.Error()})
		return result, err
	}
	result.Stored = stored

	logger.Info("Ingested %s as %s (%s)", doc.Name, stored.ID, doc.Status)
	s.notify(ctx, driven.Notification{
		Name:       doc.Name,
		DocumentID: stored.ID,
		Status:     doc.Status,
		Message:    doc.Error,
	})
	return result, nil
}

// IngestBatch ingests inputs one at a time, in order. Every input gets a
// result. The returned error joins the failures of inputs that never
// produced a document.
func (s *IngestService) IngestBatch(ctx context.Context, inputs []domain.Input) ([]domain.IngestResult, error) {
	results := make([]domain.IngestResult, 0, len(inputs))
	var errs []error

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			results = append(results, domain.IngestResult{Input: input.Label(), Err: err})
			continue
		}

		result, err := s.Ingest(ctx, input)
		results = append(results, *result)
		if err != nil && result.Processed == nil {
			errs = append(errs, fmt.Errorf("%s: %w", result.Input, err))
		}
	}

	return results, errors.Join(errs...)
}

func (s *IngestService) notify(ctx context.Context, n driven.Notification) {
	if s.notifier != nil {
		s.notifier.Notify(ctx, n)
	}
}

// uploadSource describes the original input for registration.
func uploadSource(input domain.Input, doc *domain.ProcessedDocument) domain.UploadSource {
	if input.IsURL() {
		return domain.UploadSource{Name: doc.Name, URL: input.URL}
	}
	return domain.UploadSource{
		Name:     doc.Name,
		MIMEType: MIMETypeFor(doc.Name),
		Size:     doc.Size,
	}
}
