package encoder

import (
	"fmt"
	"strings"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
)

// ConsoleEncoder prints a numbered listing instead of writing a file.
type ConsoleEncoder struct{}

func (ConsoleEncoder) Name() string { return "stdout" }

func (ConsoleEncoder) Encode(records []bookmark.Record, _ string, opts Options) (string, error) {
	w := opts.writer()
	l := labelsFor(opts.Locale)
	rule := strings.Repeat("-", 60)

	for i, r := range records {
		fmt.Fprintf(w, "%3d. %s\n", i+1, r.Title)
		fmt.Fprintf(w, "    %s: %s\n", l.url, r.URL)
		fmt.Fprintf(w, "    %s: %s\n", l.folder, r.Folder)
		fmt.Fprintf(w, "    %s: %s\n", l.kind, r.Type)
		fmt.Fprintln(w, rule)
	}
	_, err := fmt.Fprintf(w, "\n"+l.summary+"\n", len(records))
	return "", err
}
