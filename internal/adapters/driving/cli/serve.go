package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgingest/internal/adapters/driving/api"
	"github.com/custodia-labs/kgingest/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API for uploads, URL ingestion and document access.

Routes:
  GET    /healthz
  GET    /metrics
  POST   /api/detect
  POST   /api/data/documents          (multipart field "file")
  POST   /api/data/documents/url      ({"url": "..."})
  GET    /api/data/documents
  GET    /api/data/documents/{id}
  DELETE /api/data/documents/{id}
  *      /mcp                         (MCP over streamable HTTP)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// Serve flags.
var (
	serveAddr      string
	serveMaxUpload int64
	serveValidate  bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from server.addr)")
	serveCmd.Flags().Int64Var(&serveMaxUpload, "max-upload", api.DefaultMaxUploadBytes, "Maximum upload size in bytes")
	serveCmd.Flags().BoolVar(&serveValidate, "validate", true, "Reject uploads whose type is not an accepted upload type")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}
	logger.SetVerbose(true)

	server, err := newAPIServer()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = serverAddr
	}
	if addr == "" {
		return errors.New("no listen address: set --addr or server.addr")
	}

	cmd.Printf("kgingest API listening on %s\n", addr)
	if err := server.ListenAndServe(cmd.Context(), addr); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}

func newAPIServer() (*api.Server, error) {
	mcpServer, err := newMCPServer()
	if err != nil {
		return nil, err
	}

	opts := []api.Option{
		api.WithLogger(logger.L()),
		api.WithMCP(mcpServer.Handler()),
		api.WithMaxUploadBytes(serveMaxUpload),
		api.WithUploadValidation(serveValidate),
	}
	if ingestMetrics != nil {
		opts = append(opts, api.WithMetrics(ingestMetrics))
	}

	return api.NewServer(api.Ports{Ingest: ingestService, Document: documentService}, opts...)
}
