package encoder

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
	"github.com/ryan-gang/bookmark-convert/internal/logger"
)

// ErrUnsupportedFormat is returned for format names nobody registered.
var ErrUnsupportedFormat = errors.New("unsupported output format")

const unsupportedFormatCode = "UNSUPPORTED_FORMAT"

// Registry manages all output encoders
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]Encoder
	logger   logger.LoggerInterface
}

// NewRegistry creates an empty encoder registry
func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[string]Encoder),
		logger:   logger.Noop(),
	}
}

// NewDefaultRegistry creates a registry holding the built-in formats.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ExcelEncoder{})
	r.Register(CSVEncoder{})
	r.Register(JSONEncoder{})
	r.Register(ConsoleEncoder{})
	r.Register(FlareEncoder{})
	return r
}

// SetLogger sets the logger used to report replaced registrations.
func (r *Registry) SetLogger(l logger.LoggerInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = l
}

// Register adds an encoder under its name. The last registration wins.
func (r *Registry) Register(enc Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := enc.Name()
	if _, exists := r.encoders[name]; exists {
		r.logger.Warnf("Encoder %s already registered, replacing it", name)
	}
	r.encoders[name] = enc
}

// RegisterFunc registers fn under name.
func (r *Registry) RegisterFunc(name string, fn Func) {
	r.Register(funcEncoder{name: name, fn: fn})
}

// Get retrieves an encoder by name
func (r *Registry) Get(name string) (Encoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, exists := r.encoders[name]
	return enc, exists
}

// AvailableFormats returns all registered format names, sorted
func (r *Registry) AvailableFormats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.encoders))
	for name := range r.encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate fails with ErrUnsupportedFormat when name is not registered.
func (r *Registry) Validate(name string) error {
	if _, ok := r.Get(name); ok {
		return nil
	}
	available := r.AvailableFormats()
	return goerrors.Wrap(ErrUnsupportedFormat, goerrors.CategoryValidation,
		fmt.Sprintf("unsupported output format %q (available: %s)", name, strings.Join(available, ", "))).
		WithTextCode(unsupportedFormatCode)
}

// Encode dispatches records to the encoder registered as name and returns its
// result unchanged.
func (r *Registry) Encode(records []bookmark.Record, name, target string, opts Options) (string, error) {
	enc, ok := r.Get(name)
	if !ok {
		return "", r.Validate(name)
	}
	return enc.Encode(records, target, opts)
}
