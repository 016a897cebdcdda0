package converter

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
	"github.com/ryan-gang/bookmark-convert/internal/encoder"
	"github.com/ryan-gang/bookmark-convert/internal/source"
)

// FileStats pairs an input with its own decode counts.
type FileStats struct {
	Input string
	bookmark.Tally
}

// Failure records an input that could not be processed.
type Failure struct {
	Input string
	Err   error
}

// BatchReport summarises a batch run.
type BatchReport struct {
	Results  []*Result
	Skipped  []string
	Empty    []string
	Failures []Failure
	Stats    []FileStats
	Tally    bookmark.Tally
}

// Batch converts several inputs one after another.
type Batch struct {
	Converter *Converter
	Format    string
	Output    string // explicit target, used as prefix with several inputs
	StatsOnly bool
	Options   encoder.Options
}

// Run processes inputs sequentially. Missing inputs are skipped and per-file
// failures are collected without stopping the remaining files.
func (b *Batch) Run(inputs []string) BatchReport {
	var report BatchReport
	log := b.Converter.logger

	for _, input := range inputs {
		if b.StatsOnly {
			stats, err := b.Converter.Stats(input)
			if err != nil {
				b.fail(&report, input, err)
				continue
			}
			report.Stats = append(report.Stats, FileStats{Input: input, Tally: stats})
			continue
		}

		result, err := b.Converter.Convert(input, b.Format, b.target(input, len(inputs)), b.Options)
		if err != nil {
			b.fail(&report, input, err)
			if errors.Is(err, encoder.ErrUnsupportedFormat) {
				break
			}
			continue
		}
		if result == nil {
			report.Empty = append(report.Empty, input)
			continue
		}
		report.Results = append(report.Results, result)
	}

	report.Tally = b.Converter.Tally()
	log.Debugf("Batch finished: %d converted, %d failed", len(report.Results), len(report.Failures))
	return report
}

func (b *Batch) fail(report *BatchReport, input string, err error) {
	if errors.Is(err, source.ErrNotFound) {
		b.Converter.logger.Warnf("File %s does not exist, skipping", input)
		report.Skipped = append(report.Skipped, input)
		return
	}
	report.Failures = append(report.Failures, Failure{Input: input, Err: err})
}

// target derives the output name for input; with several inputs an explicit
// output acts as a prefix joined to the slugged input base name.
func (b *Batch) target(input string, total int) string {
	if b.Output == "" || total <= 1 {
		return b.Output
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name := slug.Make(base)
	if name == "" {
		name = base
	}
	return b.Output + "_" + name
}
