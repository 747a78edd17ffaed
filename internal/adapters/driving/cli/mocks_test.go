package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/custodia-labs/kgingest/internal/adapters/driven/fetcher"
	"github.com/custodia-labs/kgingest/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driving"
	"github.com/custodia-labs/kgingest/internal/core/services"
	"github.com/custodia-labs/kgingest/internal/metrics"
	"github.com/custodia-labs/kgingest/internal/processors"
)

// testServices holds the services injected for one test.
type testServices struct {
	ingest   *services.IngestService
	docs     *services.DocumentService
	settings *services.SettingsService
	metrics  *metrics.Metrics
}

// setupTestServices injects in-memory services and resets global flags on cleanup.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	m := metrics.New()
	docs := services.NewDocumentService(memory.NewDocumentStore())
	ts := &testServices{
		docs:     docs,
		settings: services.NewSettingsService(memory.NewConfigStore()),
		metrics:  m,
		ingest: services.NewIngestService(
			processors.NewDefaultRegistry(),
			fetcher.New(fetcher.Config{}),
			docs,
			services.WithRecorder(m),
		),
	}

	oldIngest, oldDocs, oldSettings := ingestService, documentService, settingsService
	oldMetrics, oldAddr := ingestMetrics, serverAddr

	ingestService = ts.ingest
	documentService = ts.docs
	settingsService = ts.settings
	ingestMetrics = ts.metrics
	serverAddr = domain.DefaultServerAddr

	t.Cleanup(func() {
		ingestService, documentService, settingsService = oldIngest, oldDocs, oldSettings
		ingestMetrics, serverAddr = oldMetrics, oldAddr
		resetFlags()
	})
	return ts
}

func resetFlags() {
	verbose = false
	outputFormat = outputText
	ingestStdin = false
	ingestName = defaultStdinName
	ingestValidate = true
	watchSettle = defaultSettle
	watchValidate = true
	serveAddr = ""
	rootCmd.SetIn(nil)
}

// executeCommand runs the root command with args and returns combined output.
func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// ingestContent registers a document through the ingest service.
func ingestContent(t *testing.T, ts *testServices, name, content string) *domain.Document {
	t.Helper()

	result, err := ts.ingest.Ingest(context.Background(), domain.Input{
		File: &domain.FileInput{Name: name, Content: strings.NewReader(content)},
	})
	if err != nil {
		t.Fatalf("ingest %s: %v", name, err)
	}
	return result.Stored
}

// failingDocumentService fails every call.
type failingDocumentService struct {
	driving.DocumentService
}

var errStoreDown = errors.New("store unavailable")

func (failingDocumentService) List(context.Context) ([]domain.Document, error) {
	return nil, errStoreDown
}

func (failingDocumentService) Delete(context.Context, string) error {
	return errStoreDown
}
