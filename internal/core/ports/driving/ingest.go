package driving

import (
	"context"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

// IngestService classifies, processes and registers documents.
type IngestService interface {
	// ProcessFile runs the file path: detect, read, classify, dispatch.
	// Processing failures are recorded on the returned document; only a
	// read failure is returned as an error.
	ProcessFile(ctx context.Context, file domain.FileInput) (*domain.ProcessedDocument, error)

	// ProcessURL runs the URL path: fetch, route by content type, dispatch.
	// Processing failures are recorded on the returned document; URL parse
	// and fetch failures are returned as errors.
	ProcessURL(ctx context.Context, rawURL string) (*domain.ProcessedDocument, error)

	// Process takes the URL path when input.URL is set, the file path otherwise.
	Process(ctx context.Context, input domain.Input) (*domain.ProcessedDocument, error)

	// Ingest processes the input, registers the result and notifies.
	Ingest(ctx context.Context, input domain.Input) (*domain.IngestResult, error)

	// IngestBatch ingests inputs one at a time, in order.
	IngestBatch(ctx context.Context, inputs []domain.Input) ([]domain.IngestResult, error)
}
