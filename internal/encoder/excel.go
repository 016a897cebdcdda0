package encoder

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
)

// embeddedIconLabel replaces data: URL icons in the icon column.
const embeddedIconLabel = "[embedded image]"

// ExcelEncoder writes an .xlsx workbook with a bookmark sheet and a
// statistics sheet.
type ExcelEncoder struct{}

func (ExcelEncoder) Name() string { return "excel" }

func (ExcelEncoder) Encode(records []bookmark.Record, target string, opts Options) (string, error) {
	path := ResolveTarget(target, opts.now(), ".xlsx")
	l := labelsFor(opts.Locale)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", l.sheet); err != nil {
		return "", fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(Fields))
	for i, field := range Fields {
		header[i] = l.columns[field]
	}
	if err := f.SetSheetRow(l.sheet, "A1", &header); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		icon := r.Icon
		if bookmark.IsEmbeddedImage(icon) {
			icon = embeddedIconLabel
		}
		row := []interface{}{
			r.Title,
			r.URL,
			r.Domain,
			r.Folder,
			r.AddDate,
			r.LastModified,
			string(r.Type),
			r.HasIcon,
			icon,
		}
		if err := f.SetSheetRow(l.sheet, cell, &row); err != nil {
			return "", fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.NewSheet(l.statsSheet); err != nil {
		return "", fmt.Errorf("adding statistics sheet: %w", err)
	}
	stats := countTypes(records)
	statRows := [][]interface{}{
		{l.statItem, l.statCount},
		{l.total, len(records)},
		{l.website, stats[bookmark.TypeWebsite]},
		{l.local, stats[bookmark.TypeLocal]},
		{l.other, stats[bookmark.TypeOther] + stats[bookmark.TypeUnknown]},
	}
	for i := range statRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(l.statsSheet, cell, &statRows[i]); err != nil {
			return "", fmt.Errorf("writing statistics: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return path, nil
}

func countTypes(records []bookmark.Record) map[bookmark.Type]int {
	counts := make(map[bookmark.Type]int, len(bookmark.Types))
	for _, r := range records {
		counts[r.Type]++
	}
	return counts
}

