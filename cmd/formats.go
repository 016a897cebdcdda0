package cmd

import (
	"github.com/ryan-gang/bookmark-convert/internal/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(formatsCmd)
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported output formats",
	Run: func(cmd *cobra.Command, args []string) {
		util.CyanBold.Println("Available formats:")
		for _, name := range registry.AvailableFormats() {
			util.Cyan.Printf("  %s\n", name)
		}
	},
}
