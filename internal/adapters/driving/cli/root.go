// Package cli implements the kgingest command line.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/kgingest/internal/adapters/driven/notify"
	"github.com/custodia-labs/kgingest/internal/app"
	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/core/ports/driving"
	"github.com/custodia-labs/kgingest/internal/logger"
	"github.com/custodia-labs/kgingest/internal/metrics"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by commands. Set by bootstrap or injected by tests.
var (
	ingestService   driving.IngestService
	documentService driving.DocumentService
	settingsService driving.SettingsService
	ingestMetrics   *metrics.Metrics
	serverAddr      string

	application *app.App
)

// Global flags.
var (
	verbose      bool
	configDir    string
	storeBackend string
	outputFormat string
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "kgingest",
	Short: "Classify and extract documents for a knowledge graph",
	Long: `kgingest detects the format of files and URLs, extracts their content
and entities, and registers the results in a local document store.

Supported formats: JSON, JSON-LD, RDF (rdf, ttl, n3), Markdown, PDF, CSV,
PowerPoint and plain text.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print pipeline messages to stderr")
	flags.StringVar(&configDir, "config-dir", "", "Config directory (default ~/.kgingest)")
	flags.StringVar(&storeBackend, "store", "", "Storage backend: memory or sqlite (default from settings)")
	flags.StringVarP(&outputFormat, "output", "o", outputText, "Output format: text, json or yaml")
}

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeApplication()

	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	switch outputFormat {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("%w: output format %q", domain.ErrInvalidInput, outputFormat)
	}

	if cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}
	if ingestService != nil || documentService != nil || settingsService != nil {
		return nil
	}

	a, err := app.New(app.Options{
		ConfigDir: configDir,
		Backend:   domain.StorageBackend(storeBackend),
		Notifier:  notify.NewWriter(cmd.ErrOrStderr()),
	})
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}

	application = a
	ingestService = a.Ingest
	documentService = a.Documents
	settingsService = a.Settings
	ingestMetrics = a.Metrics
	serverAddr = a.Config.Server.Addr
	return nil
}

func closeApplication() {
	if application == nil {
		return
	}
	if err := application.Close(); err != nil {
		logger.Error("%v", err)
	}
	application = nil
}

// render writes v as JSON or YAML, or calls text for the text format.
func render(cmd *cobra.Command, v any, text func()) error {
	return renderTo(cmd.OutOrStdout(), outputFormat, v, text)
}

func renderTo(w io.Writer, format string, v any, text func()) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text()
		return nil
	}
}
