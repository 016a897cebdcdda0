package cmd

import (
	"os"

	"github.com/ryan-gang/bookmark-convert/internal/cmdutil"
	"github.com/ryan-gang/bookmark-convert/internal/converter"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats [FILE1] [FILE2] [DIR]",
	Short: "Print bookmark and folder counts",
	Long:  `Decode bookmark exports and print how many bookmarks and folders each contains, without writing any output.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrExit(cmd, registry)
		log := cmdutil.LoggerOrExit(cmd, cfg)
		defer log.Close()

		batch := &converter.Batch{
			Converter: cmdutil.NewConverter(cfg, registry, log),
			StatsOnly: true,
		}
		report := batch.Run(expandInputs(args))

		printReport(report, true)
		if len(report.Failures) > 0 {
			os.Exit(1)
		}
	},
}
