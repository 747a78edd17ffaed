package mcp

import (
	"github.com/custodia-labs/kgingest/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Ingest classifies, processes and registers documents.
	Ingest driving.IngestService

	// Document reads stored documents. Without it, resources report not found.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	return nil
}
