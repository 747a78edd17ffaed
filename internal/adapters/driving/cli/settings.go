package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgingest/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change fetch, storage, server and logging settings.

Settings are stored in config.toml in the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting by its dotted key.

Keys:
  fetch.timeout_seconds   HTTP timeout for URL ingestion
  fetch.max_bytes         Maximum response body size
  fetch.user_agent        User-Agent header
  fetch.rate_per_second   Fetch throttle (0 = unlimited)
  fetch.convert_html      Convert text/html bodies to Markdown
  storage.backend         memory or sqlite
  storage.data_dir        SQLite data directory
  server.addr             Listen address for serve
  log.level               debug, info, warn or error`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingEntry is one key of the show output.
type settingEntry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	values := settingValues(settings)
	entries := make([]settingEntry, 0, len(values))
	for _, key := range settingsService.Keys() {
		entries = append(entries, settingEntry{Key: key, Value: values[key]})
	}

	return render(cmd, entries, func() {
		cmd.Println("Settings:")
		cmd.Println()
		for _, e := range entries {
			value := e.Value
			if value == "" {
				value = "(default)"
			}
			cmd.Printf("  %-22s %s\n", e.Key, value)
		}
	})
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}

	cmd.Println("Settings restored to defaults.")
	return nil
}

func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"fetch.timeout_seconds": strconv.Itoa(s.Fetch.TimeoutSeconds),
		"fetch.max_bytes":       strconv.Itoa(s.Fetch.MaxBytes),
		"fetch.user_agent":      s.Fetch.UserAgent,
		"fetch.rate_per_second": strconv.Itoa(s.Fetch.RatePerSecond),
		"fetch.convert_html":    strconv.FormatBool(s.Fetch.ConvertHTML),
		"storage.backend":       string(s.Storage.Backend),
		"storage.data_dir":      s.Storage.DataDir,
		"server.addr":           s.Server.Addr,
		"log.level":             s.Log.Level,
	}
}
