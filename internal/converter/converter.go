package converter

import (
	"fmt"
	"strings"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
	"github.com/ryan-gang/bookmark-convert/internal/decoder"
	"github.com/ryan-gang/bookmark-convert/internal/encoder"
	"github.com/ryan-gang/bookmark-convert/internal/logger"
	"github.com/ryan-gang/bookmark-convert/internal/source"
)

// Reader loads the text of an input file.
type Reader interface {
	ReadFile(path string) (text string, encoding string, err error)
}

// Result describes one finished conversion.
type Result struct {
	Input    string
	Output   string // empty for console output
	Encoding string
	Records  int
}

// Converter runs decode then encode for one input at a time.
type Converter struct {
	registry *encoder.Registry
	decoder  *decoder.Decoder
	reader   Reader
	logger   logger.LoggerInterface
	tally    *bookmark.Tally
}

// Option configures the Converter.
type Option func(*Converter)

func WithDecoder(d *decoder.Decoder) Option {
	return func(c *Converter) {
		c.decoder = d
	}
}

func WithReader(r Reader) Option {
	return func(c *Converter) {
		c.reader = r
	}
}

func WithLogger(l logger.LoggerInterface) Option {
	return func(c *Converter) {
		c.logger = l
	}
}

// WithTally sets the session accumulator every decode adds to.
func WithTally(t *bookmark.Tally) Option {
	return func(c *Converter) {
		c.tally = t
	}
}

func New(registry *encoder.Registry, opts ...Option) *Converter {
	c := &Converter{
		registry: registry,
		reader:   source.NewReader(),
		logger:   logger.Noop(),
		tally:    &bookmark.Tally{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.decoder == nil {
		c.decoder = decoder.New(decoder.WithLogger(c.logger))
	}
	return c
}

// Tally returns the session totals accumulated so far.
func (c *Converter) Tally() bookmark.Tally {
	return *c.tally
}

// Formats lists the output formats this converter can produce.
func (c *Converter) Formats() []string {
	return c.registry.AvailableFormats()
}

// Convert decodes inputPath and encodes it as format. A file without
// bookmarks returns a nil Result and a nil error.
func (c *Converter) Convert(inputPath, format, target string, opts encoder.Options) (*Result, error) {
	if err := c.registry.Validate(format); err != nil {
		return nil, err
	}

	c.logger.Infof("Converting %s -> %s", inputPath, format)

	records, enc, err := c.decode(inputPath, nil)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		c.logger.Warnf("No bookmarks found in %s", inputPath)
		return nil, nil
	}
	c.logger.Infof("Decoded %d bookmarks from %s", len(records), inputPath)

	output, err := c.registry.Encode(records, format, target, opts)
	if err != nil {
		c.logger.Errorf("Encoding %s as %s failed: %v", inputPath, format, err)
		return nil, fmt.Errorf("encoding %s as %s: %w", inputPath, format, err)
	}
	c.logger.Infof("Conversion finished: %s", strings.ToUpper(format))

	return &Result{
		Input:    inputPath,
		Output:   output,
		Encoding: enc,
		Records:  len(records),
	}, nil
}

// Stats decodes inputPath without encoding and returns its own counts.
func (c *Converter) Stats(inputPath string) (bookmark.Tally, error) {
	var file bookmark.Tally
	if _, _, err := c.decode(inputPath, &file); err != nil {
		return bookmark.Tally{}, err
	}
	return file, nil
}

func (c *Converter) decode(inputPath string, file *bookmark.Tally) ([]bookmark.Record, string, error) {
	text, enc, err := c.reader.ReadFile(inputPath)
	if err != nil {
		c.logger.Errorf("Reading %s failed: %v", inputPath, err)
		return nil, "", err
	}
	c.logger.Debugf("Read %s using %s", inputPath, enc)

	var counts bookmark.Tally
	records, err := c.decoder.Decode(text, &counts)
	if err != nil {
		c.logger.Errorf("Decoding %s failed: %v", inputPath, err)
		return nil, "", err
	}
	c.tally.Add(counts)
	if file != nil {
		file.Add(counts)
	}
	return records, enc, nil
}
