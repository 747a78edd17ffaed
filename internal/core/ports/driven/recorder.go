package driven

import (
	"time"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

// IngestRecorder observes finished ingestions for metrics.
type IngestRecorder interface {
	// ObserveIngest records one processed document and how long it took.
	ObserveIngest(docType domain.DocumentType, status domain.Status, elapsed time.Duration)
}
