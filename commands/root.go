package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/penwyp/go-activity-monitor/internal/config"
	"github.com/penwyp/go-activity-monitor/internal/core/timeline"
	"github.com/penwyp/go-activity-monitor/internal/data/client"
	"github.com/penwyp/go-activity-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-activity-monitor/internal/util"
	"github.com/spf13/cobra"
)

var (
	// Config file
	configPath string

	// Loaded from flags, file and environment before any command runs
	settings *config.Config

	rootCmd = &cobra.Command{
		Use:   "go-activity-monitor [flags]",
		Short: "Activity tracker dashboard for the terminal",
		Long: `go-activity-monitor renders the statistics of an activity tracker backend:
daily active hours, per-application usage, the active/inactive timeline rebuilt
from lock and unlock events, and the raw event log.

Without a subcommand it fetches every dataset once and prints a snapshot.

Examples:
  go-activity-monitor                                   # Snapshot from http://localhost:5000
  go-activity-monitor --server tracker.lan:5000         # Snapshot from another backend
  go-activity-monitor --output json                     # Snapshot as JSON
  go-activity-monitor --output summary --timezone UTC   # Totals only, UTC clock
  go-activity-monitor top                               # Live dashboard fed by websocket pushes
  go-activity-monitor top --push redis                  # Live dashboard fed by redis pub/sub`,
		PersistentPreRunE: loadSettings,
		RunE:              runSnapshot,
		SilenceUsage:      true,
	}
)

const (
	defaultLogFile    = "~/.go-activity-monitor/logs/app.log"
	defaultConfigFile = "~/.go-activity-monitor/config.yaml"
)

func init() {
	// Backend and config
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default "+defaultConfigFile+")")
	rootCmd.PersistentFlags().String("server", "http://localhost:5000",
		"Tracker backend base URL")
	rootCmd.PersistentFlags().Duration("request-timeout", 0,
		"Timeout for each backend request (default 15s)")

	// Display configuration
	rootCmd.PersistentFlags().String("timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().String("time-format", "24h",
		"Time format (12h or 24h)")

	// Output configuration
	rootCmd.Flags().StringP("output", "o", "table",
		"Output format (table, json, csv, summary)")

	// System and debugging
	rootCmd.PersistentFlags().Bool("debug", false,
		"Enable debug mode")
}

// loadSettings resolves the configuration, then starts logging and the time provider
func loadSettings(cmd *cobra.Command, args []string) error {
	path, required := expandPath(defaultConfigFile), false
	if configPath != "" {
		path, required = expandPath(configPath), true
	}

	cfg, err := config.Load(path, required, cmd.Flags())
	if err != nil {
		return err
	}
	settings = cfg

	// Determine log level based on debug flag
	logLevel := "info"
	if cfg.Debug {
		logLevel = "debug"
	}

	// Initialize logging
	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(logLevel, logFile, cfg.Debug); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := util.InitializeTimeProvider(cfg.Timezone, cfg.TimeFormat); err != nil {
		return fmt.Errorf("failed to initialize timezone: %w", err)
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	f, err := formatter.New(settings.Output)
	if err != nil {
		return err
	}

	c, err := client.New(settings.Server, client.WithTimeout(settings.RequestTimeout))
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), settings.RequestTimeout)
	defer cancel()

	util.LogInfo("Fetching snapshot", util.F("server", c.BaseURL()), util.F("output", settings.Output))
	snap, err := c.FetchAll(ctx)
	if err != nil {
		util.LogError("Snapshot fetch failed", util.F("error", err))
		return err
	}

	return f.Format(cmd.OutOrStdout(), buildReport(snap, util.GetTimeProvider()))
}

// buildReport pairs the fetched datasets with the timeline rebuilt at tp's now
func buildReport(snap *client.Snapshot, tp *util.TimeProvider) *formatter.Report {
	builder := timeline.NewBuilder(timeline.WithClock(tp.Now))
	return &formatter.Report{
		DailySummary:   snap.DailySummary,
		AppUsage:       snap.AppUsage,
		ActivityEvents: snap.ActivityEvents,
		Timeline:       builder.Build(snap.ActivityEvents),
		GeneratedAt:    tp.Now(),
	}
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
