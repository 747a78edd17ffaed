package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/detector"
)

// IngestURLInput is the input schema for the ingest_url tool.
type IngestURLInput struct {
	URL string `json:"url" jsonschema:"the http or https URL to fetch and ingest"`
}

// IngestContentInput is the input schema for the ingest_content tool.
type IngestContentInput struct {
	Name    string `json:"name" jsonschema:"filename whose extension selects the processor, e.g. notes.md"`
	Content string `json:"content" jsonschema:"the document text"`
}

// IngestOutput is the output schema for the ingest tools.
type IngestOutput struct {
	DocumentID string          `json:"document_id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Status     string          `json:"status"`
	Error      string          `json:"error,omitempty"`
	Entities   []domain.Entity `json:"entities"`
}

// DetectInput is the input schema for the detect_type tool.
type DetectInput struct {
	Filename string `json:"filename" jsonschema:"the filename to classify"`
	Content  string `json:"content,omitempty" jsonschema:"optional content used to tell JSON-LD from plain JSON"`
}

// DetectOutput is the output schema for the detect_type tool.
type DetectOutput struct {
	Type   string `json:"type"`
	JSONLD bool   `json:"json_ld"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_url",
		Description: "Fetch a URL, extract its entities and store the result",
	}, s.handleIngestURL)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_content",
		Description: "Ingest document text under a filename and store the result",
	}, s.handleIngestContent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detect_type",
		Description: "Report the document type a filename and optional content classify as",
	}, s.handleDetectType)
}

// handleIngestURL handles the ingest_url tool invocation.
func (s *Server) handleIngestURL(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestURLInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if strings.TrimSpace(input.URL) == "" {
		return nil, IngestOutput{}, fmt.Errorf("%w: url is required", domain.ErrInvalidInput)
	}
	return s.ingest(ctx, domain.Input{URL: input.URL})
}

// handleIngestContent handles the ingest_content tool invocation.
func (s *Server) handleIngestContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestContentInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, IngestOutput{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	return s.ingest(ctx, domain.Input{File: &domain.FileInput{
		Name:    input.Name,
		Content: strings.NewReader(input.Content),
	}})
}

func (s *Server) ingest(ctx context.Context, input domain.Input) (*mcp.CallToolResult, IngestOutput, error) {
	result, err := s.ports.Ingest.Ingest(ctx, input)
	if err != nil {
		return nil, IngestOutput{}, fmt.Errorf("ingesting %s: %w", input.Label(), err)
	}

	output := IngestOutput{
		Name:     result.Processed.Name,
		Type:     result.Processed.Type.String(),
		Status:   result.Processed.Status.String(),
		Error:    result.Processed.Error,
		Entities: result.Processed.Entities,
	}
	if output.Entities == nil {
		output.Entities = []domain.Entity{}
	}
	if result.Stored != nil {
		output.DocumentID = result.Stored.ID
	}
	return nil, output, nil
}

// handleDetectType handles the detect_type tool invocation.
func (s *Server) handleDetectType(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DetectInput,
) (*mcp.CallToolResult, DetectOutput, error) {
	t := detector.Classify(input.Filename, input.Content)
	return nil, DetectOutput{
		Type:   t.String(),
		JSONLD: t == domain.DocumentTypeJSONLD,
	}, nil
}
