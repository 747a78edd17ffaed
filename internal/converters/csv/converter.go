// Package csv renders comma-separated data as a Markdown table.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter turns CSV into a Markdown table whose header is the first record.
type Converter struct {
	comma rune
}

// Option configures a Converter.
type Option func(*Converter)

// WithComma sets the field delimiter (default ',').
func WithComma(r rune) Option {
	return func(c *Converter) {
		c.comma = r
	}
}

// New creates a CSV converter.
func New(opts ...Option) *Converter {
	c := &Converter{comma: ','}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the converter name.
func (c *Converter) Name() string {
	return "csv"
}

// Convert parses raw and renders it as a Markdown table. Short rows are
// padded to the widest record.
func (c *Converter) Convert(_ context.Context, raw []byte) (string, error) {
	r := csv.NewReader(strings.NewReader(string(raw)))
	r.Comma = c.comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	width := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: parse csv: %v", domain.ErrConversionUnavailable, err)
		}
		records = append(records, rec)
		width = max(width, len(rec))
	}

	if len(records) == 0 {
		return "", fmt.Errorf("%w: csv has no records", domain.ErrConversionUnavailable)
	}

	var b strings.Builder
	writeRow(&b, records[0], width)

	sep := make([]string, width)
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep, width)

	for _, rec := range records[1:] {
		writeRow(&b, rec, width)
	}
	return b.String(), nil
}

func writeRow(b *strings.Builder, cells []string, width int) {
	b.WriteString("|")
	for i := 0; i < width; i++ {
		cell := ""
		if i < len(cells) {
			cell = escapeCell(cells[i])
		}
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

func escapeCell(s string) string {
	return cellReplacer.Replace(strings.TrimSpace(s))
}
