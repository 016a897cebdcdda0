package cmd

import (
	"fmt"
	"os"

	"github.com/ryan-gang/bookmark-convert/internal/config"
	"github.com/ryan-gang/bookmark-convert/internal/encoder"
	"github.com/ryan-gang/bookmark-convert/internal/util"
	"github.com/spf13/cobra"
)

// registry holds every output format the commands can produce.
var registry = encoder.NewDefaultRegistry()

func init() {
	var configPath string
	configPath, err := config.DefaultConfigPath()
	if err != nil {
		util.Red.Println("Error setting default config path: ", err)
		os.Exit(1)
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", configPath, "Path to config file")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug logs")
}

var rootCmd = &cobra.Command{
	Use:   "bookmark-convert",
	Short: "Convert browser bookmark exports to spreadsheets, CSV, JSON and more",
	Long: `bookmark-convert reads the HTML bookmark files exported by Chrome, Firefox,
Edge and Safari and converts them into other formats.

Every link keeps its folder path, dates, domain and a coarse type so the
result can be sorted, filtered or imported elsewhere. Supported outputs are
Excel workbooks, CSV, JSON, a console listing and Flare link pages.

A watch mode can monitor an export folder and convert new exports as they
appear.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Show help if no command is provided
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
