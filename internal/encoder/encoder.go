package encoder

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
)

// Options carries encoder settings that are not part of the records.
type Options struct {
	Writer io.Writer        // console output, os.Stdout when nil
	Now    func() time.Time // clock for default file names
	Locale string           // header language, "en" when empty
}

func (o Options) writer() io.Writer {
	if o.Writer == nil {
		return os.Stdout
	}
	return o.Writer
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// Encoder serializes a record sequence into one output artifact.
type Encoder interface {
	// Name returns the format name the encoder is registered under
	Name() string

	// Encode writes records to target and returns the artifact location,
	// or "" when nothing is written to disk
	Encode(records []bookmark.Record, target string, opts Options) (string, error)
}

// Func adapts a plain function to the Encoder contract.
type Func func(records []bookmark.Record, target string, opts Options) (string, error)

type funcEncoder struct {
	name string
	fn   Func
}

func (f funcEncoder) Name() string { return f.name }

func (f funcEncoder) Encode(records []bookmark.Record, target string, opts Options) (string, error) {
	return f.fn(records, target, opts)
}

// DefaultPrefix starts every generated output file name.
const DefaultPrefix = "bookmarks_"

// ResolveTarget returns target with the canonical extension exts[0] appended
// when it carries none of exts. An empty target becomes a timestamped name.
func ResolveTarget(target string, now time.Time, exts ...string) string {
	if target == "" {
		return DefaultPrefix + now.Format("20060102_150405") + exts[0]
	}
	for _, ext := range exts {
		if strings.HasSuffix(target, ext) {
			return target
		}
	}
	return target + exts[0]
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}
