package watch

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const maxProcessed = 1000

type ProcessedExport struct {
	Path      string    `json:"path"`
	Hash      string    `json:"hash"`
	Output    string    `json:"output,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ProcessedState struct {
	Exports   []ProcessedExport `json:"exports"`
	LastCheck time.Time         `json:"last_check"`
}

// Processor remembers which export contents were already converted.
type Processor struct {
	statePath string
	state     ProcessedState
}

func NewProcessor(statePath string) (*Processor, error) {
	processor := &Processor{
		statePath: statePath,
		state:     ProcessedState{Exports: make([]ProcessedExport, 0)},
	}
	if err := processor.loadState(); err != nil {
		return nil, err
	}
	return processor, nil
}

// FilterNew returns the files whose current content has not been converted,
// along with their content hashes.
func (p *Processor) FilterNew(files []string) ([]string, map[string]string, error) {
	processedHashes := make(map[string]bool, len(p.state.Exports))
	for _, processed := range p.state.Exports {
		processedHashes[processed.Hash] = true
	}

	var fresh []string
	hashes := make(map[string]string)
	for _, file := range files {
		hash, err := hashFile(file)
		if err != nil {
			return nil, nil, err
		}
		if !processedHashes[hash] {
			fresh = append(fresh, file)
			hashes[file] = hash
		}
	}
	return fresh, hashes, nil
}

// MarkProcessed records a converted export and persists the state.
func (p *Processor) MarkProcessed(path, hash, output string, now time.Time) error {
	p.state.Exports = append(p.state.Exports, ProcessedExport{
		Path:      path,
		Hash:      hash,
		Output:    output,
		Timestamp: now,
	})
	p.state.LastCheck = now

	if len(p.state.Exports) > maxProcessed {
		sort.SliceStable(p.state.Exports, func(i, j int) bool {
			return p.state.Exports[i].Timestamp.After(p.state.Exports[j].Timestamp)
		})
		p.state.Exports = p.state.Exports[:maxProcessed]
	}

	return p.saveState()
}

// Processed returns the recorded exports.
func (p *Processor) Processed() []ProcessedExport {
	return p.state.Exports
}

func hashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return fmt.Sprintf("%x", md5.Sum(data)), nil
}

func (p *Processor) loadState() error {
	data, err := os.ReadFile(p.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading processed state: %w", err)
	}

	if err := json.Unmarshal(data, &p.state); err != nil {
		return fmt.Errorf("failed to load processed state: %w", err)
	}
	return nil
}

func (p *Processor) saveState() error {
	data, err := json.MarshalIndent(p.state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.statePath), 0755); err != nil {
		return err
	}
	return os.WriteFile(p.statePath, data, 0644)
}
