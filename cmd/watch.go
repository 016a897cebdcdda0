package cmd

import (
	"context"
	"os"

	"github.com/ryan-gang/bookmark-convert/internal/cmdutil"
	"github.com/ryan-gang/bookmark-convert/internal/config"
	"github.com/ryan-gang/bookmark-convert/internal/logger"
	"github.com/ryan-gang/bookmark-convert/internal/util"
	"github.com/ryan-gang/bookmark-convert/internal/watch"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.AddCommand(watchStartCmd)
	watchCmd.AddCommand(watchStopCmd)
	watchCmd.AddCommand(watchStatusCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch mode management commands",
	Long:  `Manage the watcher that monitors an export folder and converts new bookmark exports with the configured format.`,
}

func newWatcherOrExit(cfg config.ConfigProvider, log logger.LoggerInterface) *watch.Watcher {
	w, err := watch.New(cfg, cmdutil.NewConverter(cfg, registry, log), log, os.Stdout)
	if err != nil {
		util.LogError(util.WatchError, "creating watcher", err)
		os.Exit(1)
	}
	return w
}

var watchStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start watching the export folder",
	Long:  `Convert every new export in the configured watch path now and then again every configured interval, until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrExit(cmd, registry)
		if cfg.GetWatchPath() == "" {
			util.Red.Println("Watch path is not configured")
			util.Cyan.Println("Run 'bookmark-convert configure' to set an export folder")
			os.Exit(1)
		}
		log := cmdutil.LoggerOrExit(cmd, cfg)
		defer log.Close()

		w := newWatcherOrExit(cfg, log)
		if err := w.Start(context.Background()); err != nil {
			util.LogError(util.WatchError, "starting watcher", err)
			os.Exit(1)
		}
	},
}

var watchStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running watcher",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrExit(cmd, registry)
		w := newWatcherOrExit(cfg, logger.Noop())

		if err := w.Stop(); err != nil {
			util.Red.Println("Watcher is not running")
			return
		}
		util.Green.Println("Stop signal sent to watcher")
	},
}

var watchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check watcher status",
	Long:  `Check whether the watcher is running and display its configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrExit(cmd, registry)
		w := newWatcherOrExit(cfg, logger.Noop())

		pid, running := w.Status()
		if !running {
			util.Red.Println("Watcher is not running")
			os.Exit(1)
		}
		util.GreenBold.Printf("Watcher is running (PID %d)\n", pid)
		util.Cyan.Printf("Watching: %s\n", cfg.GetWatchPath())
		util.Cyan.Printf("Interval: %d minutes\n", cfg.GetWatchInterval())
		util.Cyan.Printf("Format: %s\n", cfg.GetDefaultFormat())
		util.Cyan.Printf("Converted exports: %d\n", len(w.Processed()))
	},
}
