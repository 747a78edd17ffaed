// Package domain defines the core business entities for kgingest.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentType: The closed set of ingestible formats
//   - Entity: A named concept extracted from a document
//   - ProcessedDocument: The record produced by one ingestion call
//   - Document: The stored record returned by registration
//   - Input: A file handle or URL supplied by a driving adapter
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
