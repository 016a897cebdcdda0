package cmd

import (
	"os"
	"strconv"
	"strings"

	"github.com/ryan-gang/bookmark-convert/internal/config"
	"github.com/ryan-gang/bookmark-convert/internal/encoder"
	"github.com/ryan-gang/bookmark-convert/internal/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configureCmd)
}

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure bookmark-convert settings",
	Long: `Configure the default output format, output folder, header language,
and the export folder monitored by watch mode.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")

		if _, err := os.Stat(configPath); err != nil {
			util.CyanBold.Println("Creating new configuration...")
		} else {
			util.CyanBold.Println("Updating existing configuration...")
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			util.Red.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}

		util.Cyan.Println("\nPress enter to keep the current value.")

		util.Cyan.Printf("Default format %v (current: %s): ", registry.AvailableFormats(), cfg.DefaultFormat)
		if format := strings.ToLower(util.ScanlineTrim()); format != "" {
			cfg.DefaultFormat = format
		}

		util.Cyan.Printf("Output folder (current: %q, \"-\" for the working directory): ", cfg.OutputDir)
		if dir := util.ScanlineTrim(); dir == "-" {
			cfg.OutputDir = ""
		} else if dir != "" {
			cfg.OutputDir = dir
		}

		util.Cyan.Printf("Header language %v (current: %s): ", encoder.Locales, cfg.Locale)
		if locale := util.ScanlineTrim(); locale != "" {
			cfg.Locale = locale
		}

		util.Cyan.Printf("Export folder to watch (current: %q, \"-\" to disable): ", cfg.WatchPath)
		if watchPath := util.ScanlineTrim(); watchPath == "-" {
			cfg.WatchPath = ""
		} else if watchPath != "" {
			cfg.WatchPath = watchPath
		}

		if cfg.WatchPath != "" {
			util.Cyan.Printf("Check interval in minutes (current: %d): ", cfg.WatchInterval)
			intervalStr := util.ScanlineTrim()
			if intervalStr != "" {
				if interval, err := strconv.Atoi(intervalStr); err == nil && interval > 0 {
					cfg.WatchInterval = interval
				}
			}
		}

		if err := cfg.Validate(registry.AvailableFormats()); err != nil {
			util.LogError(util.ConfigError, "validating configuration", err)
			os.Exit(1)
		}

		if err := config.Save(cfg, configPath); err != nil {
			util.Red.Printf("Error saving configuration: %v\n", err)
			os.Exit(1)
		}
		util.Green.Printf("Configuration saved to %s\n", configPath)

		util.CyanBold.Println("\nNext steps:")
		util.Cyan.Println("- Run 'bookmark-convert convert <files>' to convert exports")
		if cfg.WatchPath != "" {
			util.Cyan.Println("- Run 'bookmark-convert watch start' to monitor the export folder")
			util.Cyan.Println("- Run 'bookmark-convert watch status' to check the watcher")
		} else {
			util.Cyan.Println("- Run 'bookmark-convert configure' again to enable watch mode")
		}
	},
}
