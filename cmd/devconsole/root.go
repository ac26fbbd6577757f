package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/devconsole/internal/config"
	"github.com/jmylchreest/devconsole/internal/geometry"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		corner     string
		sink       string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "devconsole",
	Short: "Floating on-screen debug console for the terminal",
	Long: `devconsole draws a draggable debug control over a terminal UI and
collects printed messages into a scrollable log panel.

The newest message flashes beside the control for a few seconds. Drag the
control to snap it to a corner; a quick flick snaps in the flick's direction.
Click it (or press ` + "`" + `) to open the panel.

Messages come from piped stdin, a followed file (--follow) or a demo stream
(--demo). With --headless they are captured without the interactive
console until every source ends.

Running devconsole without a subcommand launches the interactive console.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(configPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.corner != "" {
			if _, err := geometry.ParseCorner(globalOpts.corner); err != nil {
				return err
			}
			cfg.Control.Corner = globalOpts.corner
		}
		if globalOpts.sink != "" {
			cfg.Output.Sink = globalOpts.sink
		}

		return nil
	},
	RunE: runConsole,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/devconsole/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.corner, "corner", "",
		"Starting corner (top-left, top-right, bottom-left, bottom-right)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.sink, "sink", "",
		"Where printed messages are echoed (auto, stdout, stderr, none, or a file)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	opts := &slog.HandlerOptions{
		Level: logLevel(),
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

func logLevel() slog.Level {
	if globalOpts.verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// configPath returns the config file in use.
func configPath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}
