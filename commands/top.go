package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-activity-monitor/internal/application/top"
	"github.com/penwyp/go-activity-monitor/internal/config"
	"github.com/penwyp/go-activity-monitor/internal/util"
	"github.com/spf13/cobra"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Live activity dashboard",
	Long: `Similar to Linux top command, keeps the dashboard on screen and redraws it
whenever the backend pushes a new dataset.

Every dataset is fetched once at start. After that each push replaces the
matching view. Push transports:
- ws:    websocket frames {"event": "...", "data": [...]} (default, <server>/ws)
- redis: pub/sub channels <prefix>:daily_summary_update and friends
- file:  JSON files rewritten in a watched directory
- none:  the initial fetch only; press r to fetch again

Keys: q quit, r refetch, p pause, t layout, h help`,
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	// Push flags
	topCmd.Flags().String("push", "ws",
		"Push transport (ws, redis, file, none)")
	topCmd.Flags().String("push-url", "",
		"Websocket push endpoint (default derived from --server)")
	topCmd.Flags().String("redis-addr", "localhost:6379",
		"Redis address for the redis transport")
	topCmd.Flags().String("redis-prefix", "activity",
		"Channel prefix for the redis transport")
	topCmd.Flags().String("watch-dir", "",
		"Directory watched by the file transport")

	// Display flags
	topCmd.Flags().Float64("refresh-per-second", 1,
		"Display refresh rate (0.1-20 Hz)")
}

func runTop(cmd *cobra.Command, args []string) error {
	orchestrator, err := top.NewOrchestrator(newTopConfig(settings))
	if err != nil {
		return err
	}

	// Set up signal handling
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	util.LogInfo("Dashboard starting", util.F("server", settings.Server), util.F("push", settings.Push.Transport))
	return orchestrator.Run(ctx)
}

// newTopConfig maps the loaded settings onto the dashboard configuration
func newTopConfig(cfg *config.Config) *top.TopConfig {
	watchDir := cfg.Push.WatchDir
	if watchDir != "" {
		watchDir = expandPath(watchDir)
	}
	return &top.TopConfig{
		ServerURL:      cfg.Server,
		RequestTimeout: cfg.RequestTimeout,
		PushTransport:  cfg.Push.Transport,
		PushURL:        cfg.Push.URL,
		RedisAddr:      cfg.Push.RedisAddr,
		RedisPrefix:    cfg.Push.RedisPrefix,
		WatchDir:       watchDir,
		Timezone:       cfg.Timezone,
		TimeFormat:     cfg.TimeFormat,
		UIRefreshRate:  cfg.RefreshPerSecond,
	}
}
