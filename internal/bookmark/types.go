package bookmark

import (
	"strconv"
	"strings"
	"time"

	"github.com/vincent-petithory/dataurl"
)

const (
	UntitledTitle   = "untitled"
	RootFolder      = "Bookmarks Bar"
	UnknownDate     = "unknown date"
	FolderSeparator = " > "
	DateLayout      = "2006-01-02 15:04:05"
)

// Type classifies a bookmark by the scheme of its URL.
type Type string

const (
	TypeWebsite    Type = "website"
	TypeLocal      Type = "local"
	TypeJavascript Type = "javascript"
	TypeEmail      Type = "email"
	TypeOther      Type = "other"
	TypeUnknown    Type = "unknown"
)

// Types lists every Type in display order.
var Types = []Type{TypeWebsite, TypeLocal, TypeJavascript, TypeEmail, TypeOther, TypeUnknown}

// Record represents a single decoded bookmark link
type Record struct {
	Title        string `json:"title" yaml:"title"`
	URL          string `json:"url" yaml:"url"`
	Domain       string `json:"domain" yaml:"domain"`
	Folder       string `json:"folder" yaml:"folder"`
	AddDate      string `json:"add_date" yaml:"add_date"`
	LastModified string `json:"last_modified" yaml:"last_modified"`
	Type         Type   `json:"bookmark_type" yaml:"bookmark_type"`
	HasIcon      bool   `json:"has_icon" yaml:"has_icon"`
	Icon         string `json:"icon" yaml:"icon"`
}

// Tally accumulates decode counts. Callers own it and decide whether it spans
// one file or a whole session.
type Tally struct {
	Files     int `json:"files"`
	Bookmarks int `json:"bookmarks"`
	Folders   int `json:"folders"`
}

// Add folds other into t.
func (t *Tally) Add(other Tally) {
	t.Files += other.Files
	t.Bookmarks += other.Bookmarks
	t.Folders += other.Folders
}

// ExtractDomain returns the authority of url without a leading "www.".
// URLs without a scheme separator yield an empty domain.
func ExtractDomain(url string) string {
	idx := strings.Index(url, "://")
	if idx < 0 {
		return ""
	}
	rest := url[idx+3:]
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		rest = rest[:slash]
	}
	return strings.TrimPrefix(rest, "www.")
}

// Classify maps a URL onto one of the six bookmark types.
func Classify(url string) Type {
	if url == "" {
		return TypeUnknown
	}

	lower := strings.ToLower(url)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return TypeWebsite
	case strings.HasPrefix(lower, "file://"):
		return TypeLocal
	case strings.HasPrefix(lower, "javascript:"):
		return TypeJavascript
	case strings.HasPrefix(lower, "mailto:"):
		return TypeEmail
	default:
		return TypeOther
	}
}

// ConvertTimestamp renders an epoch-seconds attribute with DateLayout in loc
// (time.Local when nil). Non-numeric or out-of-range values yield UnknownDate.
func ConvertTimestamp(raw string, loc *time.Location) string {
	if raw == "" || !isDigits(raw) {
		return UnknownDate
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return UnknownDate
	}
	if loc == nil {
		loc = time.Local
	}
	ts := time.Unix(secs, 0).In(loc)
	if ts.Year() < 1 || ts.Year() > 9999 {
		return UnknownDate
	}
	return ts.Format(DateLayout)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsEmbeddedImage reports whether icon holds an inline data:image/... blob
// rather than a link to an icon.
func IsEmbeddedImage(icon string) bool {
	if len(icon) < 5 || !strings.EqualFold(icon[:5], "data:") {
		return false
	}
	if du, err := dataurl.DecodeString(icon); err == nil {
		return strings.EqualFold(du.Type, "image")
	}
	// malformed payloads still count when the media type says image
	return strings.HasPrefix(strings.ToLower(icon), "data:image/")
}
