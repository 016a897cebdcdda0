package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lithammer/dedent"
	"github.com/ryan-gang/bookmark-convert/internal/cmdutil"
	"github.com/ryan-gang/bookmark-convert/internal/converter"
	"github.com/ryan-gang/bookmark-convert/internal/encoder"
	"github.com/ryan-gang/bookmark-convert/internal/source"
	"github.com/ryan-gang/bookmark-convert/internal/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("format", "f", "", "Output format, defaults to the configured one")
	convertCmd.Flags().StringP("output", "o", "", "Output file, used as a name prefix when several inputs are given")
	convertCmd.Flags().Bool("stats-only", false, "Only print bookmark and folder counts")
	convertCmd.Flags().StringSlice("encoding", nil, "Encodings to try in order, e.g. auto,utf-8,gbk")
}

var (
	convertLong = `Converts browser bookmark exports into another format.
Each argument can be an exported HTML file or a folder of exports.
With several inputs every file is written separately; an explicit output
name is then used as a prefix followed by the input file name.`

	convertExample = dedent.Dedent(`
		# Convert a Chrome export to an Excel workbook
		bookmark-convert convert bookmarks.html

		# Convert to CSV with an explicit output name
		bookmark-convert convert bookmarks.html -f csv -o my_bookmarks.csv

		# Convert every export in a folder to JSON, named export_<file>.json
		bookmark-convert convert ~/exports -f json -o export

		# Print counts without writing anything
		bookmark-convert convert chrome.html firefox.html --stats-only`,
	)
)

var convertCmd = &cobra.Command{
	Use:     "convert [FILE1] [FILE2] [DIR]",
	Short:   "Convert bookmark exports to another format",
	Long:    convertLong,
	Example: convertExample,
	Args:    cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := cmdutil.LoadConfigOrExit(cmd, registry)
		log := cmdutil.LoggerOrExit(cmd, cfg)
		defer log.Close()

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = cfg.GetDefaultFormat()
		}
		format = strings.ToLower(format)
		statsOnly, _ := cmd.Flags().GetBool("stats-only")
		if !statsOnly {
			if err := registry.Validate(format); err != nil {
				util.LogError(util.ConvertError, "selecting format", err)
				util.Cyan.Printf("Available formats: %s\n", strings.Join(registry.AvailableFormats(), ", "))
				os.Exit(1)
			}
		}

		var opts []converter.Option
		encodings, _ := cmd.Flags().GetStringSlice("encoding")
		if len(encodings) > 0 {
			for _, enc := range encodings {
				if !source.Supported(enc) {
					util.LogErrorf(util.ConfigError, "selecting encoding", "unsupported encoding %q", enc)
					os.Exit(1)
				}
			}
			opts = append(opts, converter.WithReader(source.NewReader(encodings...)))
		}

		inputs := expandInputs(args)
		output, _ := cmd.Flags().GetString("output")
		if output == "" && len(inputs) > 1 {
			output = strings.TrimSuffix(encoder.DefaultPrefix, "_")
		}
		if dir := cfg.GetOutputDir(); dir != "" && !filepath.IsAbs(output) {
			if output == "" {
				output = filepath.Join(dir, encoder.DefaultPrefix+startedAt())
			} else {
				output = filepath.Join(dir, output)
			}
		}

		batch := &converter.Batch{
			Converter: cmdutil.NewConverter(cfg, registry, log, opts...),
			Format:    format,
			Output:    output,
			StatsOnly: statsOnly,
			Options:   encoder.Options{Writer: os.Stdout, Locale: cfg.GetLocale()},
		}
		report := batch.Run(inputs)

		printReport(report, statsOnly)
		if len(report.Failures) > 0 {
			os.Exit(1)
		}
	},
}

// expandInputs replaces folders with the exports they contain. Paths that
// cannot be listed are passed through so the batch reports them.
func expandInputs(args []string) []string {
	var inputs []string
	for _, arg := range args {
		files, err := source.Discover(arg)
		if err != nil {
			if !errors.Is(err, source.ErrNotFound) {
				util.LogError(util.FileError, "listing "+arg, err)
			}
			inputs = append(inputs, arg)
			continue
		}
		if len(files) == 0 {
			util.Red.Printf("No bookmark exports found in %s\n", arg)
		}
		inputs = append(inputs, files...)
	}
	return inputs
}

func startedAt() string {
	return time.Now().Format("20060102_150405")
}

func printReport(report converter.BatchReport, statsOnly bool) {
	for _, failure := range report.Failures {
		util.LogError(util.ConvertError, "converting "+failure.Input, failure.Err)
	}
	for _, skipped := range report.Skipped {
		util.Red.Printf("File %s does not exist, skipped\n", skipped)
	}
	for _, empty := range report.Empty {
		util.Magenta.Printf("No bookmarks found in %s\n", empty)
	}

	util.CyanBold.Println("\nSummary:")
	util.Cyan.Printf("Files processed: %d\n", report.Tally.Files)
	util.Cyan.Printf("Total bookmarks: %d\n", report.Tally.Bookmarks)
	util.Cyan.Printf("Total folders: %d\n", report.Tally.Folders)

	if statsOnly {
		for _, stats := range report.Stats {
			util.Cyan.Printf("  %s: %d bookmarks, %d folders\n", stats.Input, stats.Bookmarks, stats.Folders)
		}
		return
	}

	var outputs []string
	for _, result := range report.Results {
		if result.Output != "" {
			outputs = append(outputs, result.Output)
		}
	}
	if len(outputs) > 0 {
		util.GreenBold.Println("Output files:")
		for _, output := range outputs {
			util.Green.Printf("  %s\n", output)
		}
	}
}
