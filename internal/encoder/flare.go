package encoder

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ryan-gang/bookmark-convert/internal/bookmark"
	"github.com/ryan-gang/bookmark-convert/internal/util"
)

// FlareDocument is the category/link YAML layout used by Flare dashboards.
type FlareDocument struct {
	Categories []FlareCategory `yaml:"categories"`
	Links      []FlareLink     `yaml:"links"`
}

type FlareCategory struct {
	ID    int    `yaml:"id"`
	Title string `yaml:"title"`
}

type FlareLink struct {
	Name     string `yaml:"name"`
	Link     string `yaml:"link"`
	Icon     string `yaml:"icon,omitempty"`
	Category int    `yaml:"category,omitempty"`
}

// FlareEncoder writes records as a categories + links YAML file, one
// category per distinct folder path.
type FlareEncoder struct{}

func (FlareEncoder) Name() string { return "flare" }

func (FlareEncoder) Encode(records []bookmark.Record, target string, opts Options) (string, error) {
	path := ResolveTarget(target, opts.now(), ".yml", ".yaml")
	doc := BuildFlare(records)
	w := opts.writer()

	if err := writeFlare(path, doc); err != nil {
		util.Red.Fprintf(w, "Error saving file: %v\n", err)
		return "", err
	}

	util.GreenBold.Fprintf(w, "Exported %d bookmarks to: %s\n", len(records), path)
	util.Cyan.Fprintf(w, "Categories: %d\n", len(doc.Categories))
	util.Cyan.Fprintf(w, "Links: %d\n", len(doc.Links))
	return path, nil
}

// BuildFlare derives the category registry from the sorted distinct folders
// and links every record to its folder's category id.
func BuildFlare(records []bookmark.Record) FlareDocument {
	seen := make(map[string]bool)
	folders := make([]string, 0)
	for _, r := range records {
		if r.Folder != "" && !seen[r.Folder] {
			seen[r.Folder] = true
			folders = append(folders, r.Folder)
		}
	}
	sort.Strings(folders)

	doc := FlareDocument{
		Categories: make([]FlareCategory, 0, len(folders)),
		Links:      make([]FlareLink, 0, len(records)),
	}
	ids := make(map[string]int, len(folders))
	for i, folder := range folders {
		ids[folder] = i + 1
		doc.Categories = append(doc.Categories, FlareCategory{ID: i + 1, Title: folder})
	}

	for _, r := range records {
		link := FlareLink{Name: r.Title, Link: r.URL}
		if r.Icon != "" && !bookmark.IsEmbeddedImage(r.Icon) {
			link.Icon = r.Icon
		}
		link.Category = ids[r.Folder]
		doc.Links = append(doc.Links, link)
	}
	return doc
}

func writeFlare(path string, doc FlareDocument) error {
	file, err := createFile(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	enc := yaml.NewEncoder(file)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}
