package domain

import "time"

// DocumentType classifies an ingested document and selects its processor.
type DocumentType string

// Supported document types.
const (
	// DocumentTypeText is plain text and the fallback for unknown extensions.
	DocumentTypeText DocumentType = "text"

	// DocumentTypeURL is a document fetched from a URL.
	DocumentTypeURL DocumentType = "url"

	// DocumentTypePDF is a PDF file.
	DocumentTypePDF DocumentType = "pdf"

	// DocumentTypeCSV is comma-separated tabular data.
	DocumentTypeCSV DocumentType = "csv"

	// DocumentTypeJSON is plain JSON.
	DocumentTypeJSON DocumentType = "json"

	// DocumentTypeJSONLD is JSON carrying linked-data keys (@context or @type).
	DocumentTypeJSONLD DocumentType = "json-ld"

	// DocumentTypeRDF covers RDF/XML, Turtle and N3 files.
	DocumentTypeRDF DocumentType = "rdf"

	// DocumentTypeMarkdown is a Markdown file.
	DocumentTypeMarkdown DocumentType = "md"

	// DocumentTypePPT is a PowerPoint presentation.
	DocumentTypePPT DocumentType = "ppt"
)

// AllDocumentTypes returns every document type in declaration order.
func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeText,
		DocumentTypeURL,
		DocumentTypePDF,
		DocumentTypeCSV,
		DocumentTypeJSON,
		DocumentTypeJSONLD,
		DocumentTypeRDF,
		DocumentTypeMarkdown,
		DocumentTypePPT,
	}
}

// IsValid returns true if the document type is recognised.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeText, DocumentTypeURL, DocumentTypePDF, DocumentTypeCSV,
		DocumentTypeJSON, DocumentTypeJSONLD, DocumentTypeRDF, DocumentTypeMarkdown,
		DocumentTypePPT:
		return true
	default:
		return false
	}
}

// IsStructured returns true for JSON and JSON-LD.
func (t DocumentType) IsStructured() bool {
	return t == DocumentTypeJSON || t == DocumentTypeJSONLD
}

// String returns the string representation.
func (t DocumentType) String() string {
	return string(t)
}

// Status is the lifecycle state of a document.
type Status string

// Document lifecycle states.
const (
	// StatusPending is a stored document that has not been processed yet.
	StatusPending Status = "pending"

	// StatusProcessing is a document currently in the pipeline.
	StatusProcessing Status = "processing"

	// StatusCompleted is a document whose processing returned without error.
	StatusCompleted Status = "completed"

	// StatusError is a document whose processing failed.
	StatusError Status = "error"
)

// IsTerminal returns true for completed and error.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// String returns the string representation.
func (s Status) String() string {
	return string(s)
}

// Entity is a named concept extracted from a document.
type Entity struct {
	// Name identifies the entity (heading text, code span, IRI, @id or key path).
	Name string `json:"name" yaml:"name"`

	// Type is a free-form classification tag.
	Type string `json:"type" yaml:"type"`

	// Aliases lists alternative names.
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Entity type tags emitted by the built-in processors.
const (
	EntityTypeHeading  = "heading"
	EntityTypeCode     = "code"
	EntityTypeResource = "resource"
	EntityTypeUnknown  = "unknown"
)

// Relationship links two entities. No processor populates it yet.
type Relationship struct {
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Type   string `json:"type" yaml:"type"`
}

// UnknownErrorMessage is recorded when a processing failure carries no message.
const UnknownErrorMessage = "Unknown error"

// ProcessedDocument is the record produced by a single ingestion call.
// Entities and Relationships are nil when the type has no extraction step
// and non-nil (possibly empty) otherwise.
type ProcessedDocument struct {
	// ID is a process-local random identifier.
	ID string `json:"id" yaml:"id"`

	// Name is the original filename or the URL hostname.
	Name string `json:"name" yaml:"name"`

	// Type is the final document type after classification.
	Type DocumentType `json:"type" yaml:"type"`

	// Size is the byte length of the input.
	Size int64 `json:"size" yaml:"size"`

	// Status is processing until the orchestrator finishes.
	Status Status `json:"status" yaml:"status"`

	// Content is the raw or converted text.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Entities are in extraction order.
	Entities []Entity `json:"entities,omitempty" yaml:"entities,omitempty"`

	// Relationships are reserved for linkage extraction.
	Relationships []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`

	// Error is set only when Status is StatusError.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// CreatedAt is when orchestration started.
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	// URL is set only for URL-sourced documents.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Complete marks the document as successfully processed.
func (d *ProcessedDocument) Complete() {
	d.Status = StatusCompleted
	d.Error = ""
}

// Fail marks the document as failed with the error's message.
func (d *ProcessedDocument) Fail(err error) {
	d.Status = StatusError
	d.Error = UnknownErrorMessage
	if err != nil && err.Error() != "" {
		d.Error = err.Error()
	}
}

// HasExtraction reports whether a processor populated the entity list.
func (d *ProcessedDocument) HasExtraction() bool {
	return d.Entities != nil
}

// Document is the stored record returned by the registration collaborator.
type Document struct {
	// ID is the store-assigned identifier.
	ID string `json:"id" yaml:"id"`

	// Name is the filename or URL hostname.
	Name string `json:"name" yaml:"name"`

	// Type is the MIME type for files and "url" for URL sources.
	Type string `json:"type" yaml:"type"`

	// Size is the source size in bytes (0 for URLs).
	Size int64 `json:"size" yaml:"size"`

	// Status is the processing outcome recorded at registration.
	Status Status `json:"status" yaml:"status"`

	// UploadedAt is when the document was registered.
	UploadedAt time.Time `json:"uploadedAt" yaml:"uploadedAt"`

	// URL is set for URL sources.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Content is the processed text.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Entities are the extracted entities.
	Entities []Entity `json:"entities,omitempty" yaml:"entities,omitempty"`
}
