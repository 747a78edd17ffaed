// Package html sanitises fetched HTML and converts it to Markdown.
package html

import (
	"context"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driven"
)

// Ensure Converter implements the interface.
var _ driven.Converter = (*Converter)(nil)

// Converter strips scripts and unsafe markup, then renders CommonMark
// with tables.
type Converter struct {
	policy *bluemonday.Policy
	md     *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links against the given base URL.
func WithDomain(baseURL string) Option {
	return func(c *Converter) {
		c.domain = baseURL
	}
}

// New creates an HTML converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		policy: bluemonday.UGCPolicy(),
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the converter name.
func (c *Converter) Name() string {
	return "html"
}

// Convert sanitises raw and returns its Markdown rendering.
func (c *Converter) Convert(_ context.Context, raw []byte) (string, error) {
	return c.ConvertPage(raw, c.domain)
}

// ConvertPage converts raw, resolving relative links against pageURL.
func (c *Converter) ConvertPage(raw []byte, pageURL string) (string, error) {
	clean := c.policy.SanitizeBytes(raw)

	var (
		md  string
		err error
	)
	if pageURL != "" {
		md, err = c.md.ConvertString(string(clean), converter.WithDomain(pageURL))
	} else {
		md, err = c.md.ConvertString(string(clean))
	}
	if err != nil {
		return "", fmt.Errorf("%w: html to markdown: %v", domain.ErrConversionUnavailable, err)
	}

	md = strings.TrimSpace(md)
	if md == "" {
		return "", fmt.Errorf("%w: html has no text content", domain.ErrConversionUnavailable)
	}
	return md, nil
}
