// Package pdf extracts page text from PDF files with pdfcpu and renders it
// as Markdown, one section per page.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter renders PDF text as "## Page N" sections.
type Converter struct{}

// New creates a PDF converter.
func New() *Converter {
	return &Converter{}
}

// Name returns the converter name.
func (c *Converter) Name() string {
	return "pdf"
}

// Convert reads raw as a PDF and returns its text. Pages without text
// are skipped. A PDF with no text at all is reported as unavailable.
func (c *Converter) Convert(ctx context.Context, raw []byte) (string, error) {
	if len(raw) == 0 {
		return "", fmt.Errorf("%w: empty pdf", domain.ErrConversionUnavailable)
	}

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(raw), conf)
	if err != nil {
		return "", fmt.Errorf("%w: pdfcpu read: %v", domain.ErrConversionUnavailable, err)
	}

	var b strings.Builder
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text := pageText(pdfCtx, pageNr)
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## Page %d\n\n%s\n", pageNr, text)
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("%w: no text content found in pdf", domain.ErrConversionUnavailable)
	}
	return b.String(), nil
}

func pageText(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return ""
	}
	return streamText(data)
}
