package decoder

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
	"github.com/ryan-gang/bookmark-convert/internal/logger"
)

// Decoder turns a Netscape-style bookmark export into flat records.
type Decoder struct {
	logger logger.LoggerInterface
	loc    *time.Location
	// build is swapped in tests to exercise the per-link recovery
	build func(link *goquery.Selection, folder string, loc *time.Location) bookmark.Record
}

// Option configures the Decoder.
type Option func(*Decoder)

// WithLogger sets the logger used for warnings about skipped links.
func WithLogger(l logger.LoggerInterface) Option {
	return func(d *Decoder) {
		d.logger = l
	}
}

// WithLocation sets the time zone used to render timestamps.
func WithLocation(loc *time.Location) Option {
	return func(d *Decoder) {
		d.loc = loc
	}
}

// New returns a Decoder that logs nowhere and renders local time.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		logger: logger.Noop(),
		loc:    time.Local,
		build:  buildRecord,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode parses markup and returns one record per link in document order.
// A document without a <dl> root yields no records and no error. Counts are
// added to tally when it is non-nil.
func (d *Decoder) Decode(markup string, tally *bookmark.Tally) ([]bookmark.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing bookmark markup: %w", err)
	}

	root := doc.Find("dl").First()
	if root.Length() == 0 {
		d.logger.Warn("No <DL> root found, nothing to decode")
		if tally != nil {
			tally.Files++
		}
		return []bookmark.Record{}, nil
	}

	w := &walker{
		decoder: d,
		doc:     doc,
		records: make([]bookmark.Record, 0),
	}
	w.visit(root.Get(0))

	d.logger.Debugf("Decoded %d bookmarks in %d folders", len(w.records), w.folders)
	if tally != nil {
		tally.Files++
		tally.Bookmarks += len(w.records)
		tally.Folders += w.folders
	}
	return w.records, nil
}

// walker does a single depth-first pass, keeping the folder label of every
// open <dl> on a stack so each link reads its path without ancestor queries.
type walker struct {
	decoder *Decoder
	doc     *goquery.Document
	stack   []string
	folders int
	records []bookmark.Record
}

func (w *walker) visit(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Dl:
			label := folderLabel(n)
			if label != "" {
				w.folders++
			}
			w.stack = append(w.stack, label)
			w.visitChildren(n)
			w.stack = w.stack[:len(w.stack)-1]
			return
		case atom.A:
			w.link(n)
		}
	}
	w.visitChildren(n)
}

func (w *walker) visitChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.visit(c)
	}
}

func (w *walker) link(n *html.Node) {
	rec, err := w.parseLink(n)
	if err != nil {
		w.decoder.logger.Warnf("Skipping bookmark: %v", err)
		return
	}
	w.records = append(w.records, rec)
}

func (w *walker) parseLink(n *html.Node) (rec bookmark.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed link: %v", r)
		}
	}()
	return w.decoder.build(w.doc.FindNodes(n), w.folderPath(), w.decoder.loc), nil
}

func (w *walker) folderPath() string {
	labels := make([]string, 0, len(w.stack))
	for _, label := range w.stack {
		if label != "" {
			labels = append(labels, label)
		}
	}
	return cleanFolder(strings.Join(labels, bookmark.FolderSeparator))
}

// folderLabel returns the text of the nearest <h3> preceding dl among its
// siblings, which names the folder the list belongs to.
func folderLabel(dl *html.Node) string {
	for s := dl.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.DataAtom == atom.H3 {
			return strings.TrimSpace(nodeText(s))
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}

func cleanFolder(path string) string {
	path = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(path), ">"))
	if path == "" {
		return bookmark.RootFolder
	}
	return path
}

func buildRecord(link *goquery.Selection, folder string, loc *time.Location) bookmark.Record {
	title := strings.TrimSpace(link.Text())
	if title == "" {
		title = bookmark.UntitledTitle
	}
	url := strings.TrimSpace(link.AttrOr("href", ""))
	icon := link.AttrOr("icon", "")

	return bookmark.Record{
		Title:        title,
		URL:          url,
		Domain:       bookmark.ExtractDomain(url),
		Folder:       folder,
		AddDate:      bookmark.ConvertTimestamp(link.AttrOr("add_date", ""), loc),
		LastModified: bookmark.ConvertTimestamp(link.AttrOr("last_modified", ""), loc),
		Type:         bookmark.Classify(url),
		HasIcon:      icon != "",
		Icon:         icon,
	}
}
