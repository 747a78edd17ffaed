package domain

import "io"

// FileInput is a file-like handle supplied by an upload surface.
type FileInput struct {
	// Name is the original filename; its extension drives detection.
	Name string

	// Content yields the file bytes. It is read to the end exactly once.
	Content io.Reader
}

// Input is either a file or a URL. URL takes precedence when both are set.
type Input struct {
	File *FileInput
	URL  string
}

// IsURL returns true if the input should take the URL path.
func (in Input) IsURL() bool {
	return in.URL != ""
}

// Label returns a short human-readable description of the input.
func (in Input) Label() string {
	if in.IsURL() {
		return in.URL
	}
	if in.File != nil {
		return in.File.Name
	}
	return ""
}

// UploadSource describes the original source handed to registration.
type UploadSource struct {
	// Name is the filename or URL hostname.
	Name string

	// MIMEType is the declared or extension-derived MIME type of a file.
	MIMEType string

	// Size is the source size in bytes.
	Size int64

	// URL is set for URL sources.
	URL string
}

// IsURL returns true for URL sources.
func (s UploadSource) IsURL() bool {
	return s.URL != ""
}

// UploadOptions is the bundle registration stores alongside the source.
type UploadOptions struct {
	Content  string
	Entities []Entity
	Status   Status
}

// IngestResult pairs a processed document with its stored record.
type IngestResult struct {
	// Input is the label of the input (filename or URL).
	Input string `json:"input" yaml:"input"`

	// Processed is nil when the input failed before a document existed.
	Processed *ProcessedDocument `json:"processed,omitempty" yaml:"processed,omitempty"`

	// Stored is nil when registration did not happen.
	Stored *Document `json:"stored,omitempty" yaml:"stored,omitempty"`

	// Err is the failure that prevented processing or registration.
	Err error `json:"-" yaml:"-"`
}

// Failed returns true if the input produced no stored document.
func (r IngestResult) Failed() bool {
	return r.Err != nil
}
