package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gogs/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

var (
	// ErrNotFound reports a missing input path.
	ErrNotFound = errors.New("input not found")
	// ErrUnreadable reports input that no candidate encoding could decode.
	ErrUnreadable = errors.New("no candidate encoding could read the input")
)

// Auto asks the reader to sniff the charset at that point of the list.
const Auto = "auto"

// DefaultEncodings is the order tried when none is configured. The strict
// decoders run before the single-byte ones, which accept any input.
var DefaultEncodings = []string{"utf-8", "gbk", Auto, "latin-1", "iso-8859-1"}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader loads bookmark exports, trying each encoding in turn.
type Reader struct {
	Encodings []string
}

func NewReader(encodings ...string) *Reader {
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}
	return &Reader{Encodings: encodings}
}

// ReadFile returns the decoded text of path and the encoding that worked.
func (r *Reader) ReadFile(path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	text, name, err := r.Decode(data)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", path, err)
	}
	return text, name, nil
}

// Decode converts raw bytes to text.
func (r *Reader) Decode(data []byte) (string, string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return string(data[len(utf8BOM):]), "utf-8", nil
	}
	if len(data) > 0 && !isText(data) {
		return "", "", fmt.Errorf("%w: binary content (%s)", ErrUnreadable, mimetype.Detect(data).String())
	}

	encodings := r.Encodings
	if len(encodings) == 0 {
		encodings = DefaultEncodings
	}
	for _, name := range encodings {
		if strings.EqualFold(name, Auto) {
			name = sniff(data)
			if name == "" {
				continue
			}
		}
		if text, ok := decodeAs(data, name); ok {
			return text, canonicalName(name), nil
		}
	}
	return "", "", ErrUnreadable
}

func isText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// sniff returns the detected charset when chardet is confident enough and
// names a multi-byte charset. Single-byte guesses are left to the explicit
// fallbacks.
func sniff(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result.Confidence < 50 {
		return ""
	}
	if !multiByte[canonicalName(result.Charset)] {
		return ""
	}
	return result.Charset
}

var multiByte = map[string]bool{
	"utf-8":   true,
	"gbk":     true,
	"gb18030": true,
}

func canonicalName(name string) string {
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		return "utf-8"
	case "gbk", "gb2312", "gb-2312":
		return "gbk"
	case "gb18030", "gb-18030":
		return "gb18030"
	case "latin-1", "latin1", "iso-8859-1":
		return "latin-1"
	default:
		return strings.ToLower(name)
	}
}

func decodeAs(data []byte, name string) (string, bool) {
	var enc encoding.Encoding
	switch strings.ToLower(name) {
	case "utf8", "utf-8":
		if !utf8.Valid(data) {
			return "", false
		}
		return string(data), true
	case "gbk", "gb2312", "gb-2312":
		enc = simplifiedchinese.GBK
	case "gb18030", "gb-18030":
		enc = simplifiedchinese.GB18030
	case "latin-1", "latin1", "iso-8859-1":
		enc = charmap.ISO8859_1
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	default:
		return "", false
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	// invalid multi-byte sequences come back as U+FFFD rather than errors
	if bytes.ContainsRune(out, utf8.RuneError) && !bytes.ContainsRune(data, utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// Supported reports whether name is an encoding the reader understands.
func Supported(name string) bool {
	if strings.EqualFold(name, Auto) {
		return true
	}
	_, ok := decodeAs(nil, name)
	return ok
}
