// Package upload holds the caller-side checks that upload surfaces (CLI and
// HTTP) apply before handing a file to the ingest service.
package upload

import (
	"fmt"
	"mime"
	"slices"
	"strings"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/detector"
)

// AllowedMIMETypes lists the declared types accepted without an extension check.
var AllowedMIMETypes = []string{
	"text/plain",
	"application/json",
	"text/markdown",
	"application/pdf",
	"text/csv",
	"application/rdf+xml",
	"text/turtle",
	"text/n3",
}

// AllowedExtensions lists the filename suffixes accepted regardless of declared type.
var AllowedExtensions = []string{"json", "md", "pdf", "csv", "rdf", "ttl", "n3"}

// Allowed reports whether a file with the given name and declared MIME type
// may be uploaded. Either a listed MIME type or a listed extension suffices.
func Allowed(name, mimeType string) bool {
	if slices.Contains(AllowedMIMETypes, baseMIMEType(mimeType)) {
		return true
	}
	return slices.Contains(AllowedExtensions, detector.Extension(name))
}

// Validate returns domain.ErrUnsupportedType when the file may not be uploaded.
func Validate(name, mimeType string) error {
	if Allowed(name, mimeType) {
		return nil
	}
	return fmt.Errorf("%w: %s: supported extensions are %s",
		domain.ErrUnsupportedType, name, strings.Join(AllowedExtensions, ", "))
}

// baseMIMEType strips parameters such as charset.
func baseMIMEType(t string) string {
	if t == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(t)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(t))
	}
	return mt
}
