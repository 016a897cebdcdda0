package encoder

import (
	"encoding/json"
	"fmt"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
)

// JSONEncoder writes the records as an indented JSON array.
type JSONEncoder struct{}

func (JSONEncoder) Name() string { return "json" }

func (JSONEncoder) Encode(records []bookmark.Record, target string, opts Options) (string, error) {
	path := ResolveTarget(target, opts.now(), ".json")

	file, err := createFile(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if records == nil {
		records = []bookmark.Record{}
	}
	enc := json.NewEncoder(file)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	return path, file.Close()
}
