// Package detector classifies input documents by filename extension and,
// for JSON, by a content sniff for JSON-LD.
package detector

import (
	"encoding/json"
	"strings"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

// extensionTypes maps lowercase extensions to document types.
var extensionTypes = map[string]domain.DocumentType{
	"json":     domain.DocumentTypeJSON,
	"rdf":      domain.DocumentTypeRDF,
	"ttl":      domain.DocumentTypeRDF,
	"n3":       domain.DocumentTypeRDF,
	"md":       domain.DocumentTypeMarkdown,
	"markdown": domain.DocumentTypeMarkdown,
	"pdf":      domain.DocumentTypePDF,
	"csv":      domain.DocumentTypeCSV,
	"ppt":      domain.DocumentTypePPT,
	"pptx":     domain.DocumentTypePPT,
}

// Detect maps a filename to a document type using the suffix after its
// last dot. Unknown or missing extensions yield text.
func Detect(filename string) domain.DocumentType {
	if t, ok := extensionTypes[Extension(filename)]; ok {
		return t
	}
	return domain.DocumentTypeText
}

// Extension returns the lowercase suffix after the last dot, or "" when
// the filename has no dot.
func Extension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}

// IsJSONLD reports whether content is a JSON object with a top-level
// @context or @type key. Invalid JSON and non-object roots return false.
func IsJSONLD(content string) bool {
	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &root); err != nil {
		return false
	}
	if root == nil {
		return false
	}
	_, hasContext := root["@context"]
	_, hasType := root["@type"]
	return hasContext || hasType
}

// Classify returns the final document type for a file: the extension type,
// upgraded from json to json-ld when the content sniff succeeds. No other
// reclassification happens.
func Classify(filename, content string) domain.DocumentType {
	t := Detect(filename)
	if t == domain.DocumentTypeJSON && IsJSONLD(content) {
		return domain.DocumentTypeJSONLD
	}
	return t
}
