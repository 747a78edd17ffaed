package driven

import "context"

// Converter turns a binary or foreign format into Markdown text.
type Converter interface {
	// Name returns the converter name for logging.
	Name() string

	// Convert returns the Markdown rendering of raw.
	// It returns domain.ErrConversionUnavailable when it cannot handle raw.
	Convert(ctx context.Context, raw []byte) (string, error)
}
