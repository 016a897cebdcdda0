package encoder

import (
	"encoding/csv"
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
)

// CSVEncoder writes a UTF-8 CSV file with a byte order mark so spreadsheet
// tools detect the encoding.
type CSVEncoder struct{}

func (CSVEncoder) Name() string { return "csv" }

func (CSVEncoder) Encode(records []bookmark.Record, target string, opts Options) (string, error) {
	path := ResolveTarget(target, opts.now(), ".csv")

	file, err := createFile(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	bom := transform.NewWriter(file, unicode.UTF8BOM.NewEncoder())
	w := csv.NewWriter(bom)
	w.UseCRLF = true

	if err := w.Write(Fields); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(fieldValues(r)); err != nil {
			return "", fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := bom.Close(); err != nil {
		return "", fmt.Errorf("flushing %s: %w", path, err)
	}
	return path, file.Close()
}
