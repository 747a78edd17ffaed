// Package mcp provides an MCP (Model Context Protocol) server adapter for kgingest.
// It lets AI assistants ingest documents and read the stored results.
package mcp

import "errors"

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("mcp: ingest service is required")
