package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/devconsole/internal/config"
	"github.com/jmylchreest/devconsole/internal/console"
	"github.com/jmylchreest/devconsole/internal/export"
	"github.com/jmylchreest/devconsole/internal/source"
	"github.com/jmylchreest/devconsole/internal/store"
	"github.com/jmylchreest/devconsole/internal/tui"
)

var runOpts struct {
	follow       string
	demo         bool
	demoInterval time.Duration
	noWatch      bool
	headless     bool
	dump         string
}

func init() {
	rootCmd.Flags().StringVarP(&runOpts.follow, "follow", "f", "",
		"Follow a file and print each appended line")
	rootCmd.Flags().BoolVar(&runOpts.demo, "demo", false,
		"Log sample messages periodically")
	rootCmd.Flags().DurationVar(&runOpts.demoInterval, "demo-interval", 2*time.Second,
		"Interval between demo messages")
	rootCmd.Flags().BoolVar(&runOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
	rootCmd.Flags().BoolVar(&runOpts.headless, "headless", false,
		"Capture without the interactive console until every feed ends")
	rootCmd.Flags().StringVar(&runOpts.dump, "dump", "",
		"On exit, write the captured log to stdout (json, yaml, plain)")
}

func runConsole(cmd *cobra.Command, args []string) error {
	var dump export.FormatType
	if runOpts.dump != "" {
		var err error
		if dump, err = export.ParseFormat(runOpts.dump); err != nil {
			return err
		}
	}

	if err := config.EnsureStateDir(); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// The TUI owns the terminal, so devconsole's own logs go to a file.
	logFile, err := tea.LogToFile(config.DebugLogPath(), "devconsole")
	if err != nil {
		return fmt.Errorf("failed to open debug log: %w", err)
	}
	defer logFile.Close()

	fileHandler := slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel()})
	fileLogger := slog.New(fileHandler)

	c := console.New(store.Default(), nil, nil)

	sinks := newSinkSwitcher(c, config.OutputLogPath(), !runOpts.headless, fileLogger)
	if err := sinks.open(cfg.Output.Sink); err != nil {
		return err
	}
	defer sinks.Close()

	// Records logged here land in the console as well as the debug log.
	appLogger := slog.New(console.NewHandler(c, fileHandler, slog.LevelInfo))
	slog.SetDefault(appLogger)

	feeds := buildFeeds(c, appLogger, fileLogger)

	watchPath := configPath()
	if runOpts.noWatch {
		watchPath = ""
	}

	fileLogger.Info("starting console",
		"corner", cfg.Control.Corner,
		"sink", cfg.Output.Sink,
		"feeds", len(feeds),
		"headless", runOpts.headless,
	)

	if runOpts.headless {
		err = runHeadless(cmd.Context(), c, feeds)
	} else {
		opts := tui.RunOptions{
			Config:     cfg,
			Console:    c,
			Logger:     fileLogger,
			ConfigPath: watchPath,
			Feeds:      feeds,
		}
		// A --sink flag outranks the file.
		if globalOpts.sink == "" {
			opts.OnReload = sinks.reload
		}
		err = tui.Run(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	if dump != "" {
		f := export.NewFormatter(dump, export.DefaultFormatterOptions())
		if err := f.Format(cmd.OutOrStdout(), c.Store().Entries()); err != nil {
			return fmt.Errorf("failed to dump log: %w", err)
		}
	}
	return nil
}

// buildFeeds collects the message sources selected on the command line.
func buildFeeds(c *console.Console, appLogger, fileLogger *slog.Logger) []func(context.Context) {
	var feeds []func(context.Context)

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		feeds = append(feeds, func(ctx context.Context) {
			if err := source.ReadLines(ctx, os.Stdin, c.Writer()); err != nil && ctx.Err() == nil {
				fileLogger.Warn("stdin read failed", "error", err)
			}
		})
	}

	if runOpts.follow != "" {
		follower := source.NewFollower(runOpts.follow, c, fileLogger)
		feeds = append(feeds, func(ctx context.Context) {
			if err := follower.Run(ctx); err != nil {
				appLogger.Error("follow failed", "path", runOpts.follow, "error", err)
			}
		})
	}

	if runOpts.demo {
		feeds = append(feeds, func(ctx context.Context) {
			source.Demo(ctx, appLogger, runOpts.demoInterval)
		})
	}

	return feeds
}
