package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var exportExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

// Discover expands path into bookmark export files. A file is returned as is;
// a directory yields its .html/.htm files, sorted.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("bookmark path is not accessible: %v", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("error reading bookmark directory: %v", err)
	}

	var exports []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if !exportExtensions[strings.ToLower(filepath.Ext(file.Name()))] {
			continue
		}
		exports = append(exports, filepath.Join(path, file.Name()))
	}
	sort.Strings(exports)
	return exports, nil
}
