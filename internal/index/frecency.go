package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// frecencyEntry records the usage of a single file
type frecencyEntry struct {
	Count      int       `json:"count"`
	LastAccess time.Time `json:"last_access"`
}

// FrecencyTracker persists per-file access history and turns it into a
// combined frequency+recency score. The store survives sessions; it is the
// only state that does.
type FrecencyTracker struct {
	mu       sync.Mutex
	filePath string
	entries  map[string]frecencyEntry
}

// DefaultFrecencyPath returns the store location under the user config dir
func DefaultFrecencyPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	return filepath.Join(configDir, "fpick", "frecency.json")
}

// NewFrecencyTracker loads the store at filePath, starting empty if the
// file is missing or unparseable.
func NewFrecencyTracker(filePath string) *FrecencyTracker {
	t := &FrecencyTracker{
		filePath: filePath,
		entries:  make(map[string]frecencyEntry),
	}

	data, err := os.ReadFile(filePath)
	if err == nil {
		// A corrupt store is discarded rather than surfaced
		_ = json.Unmarshal(data, &t.entries)
	}
	if t.entries == nil {
		t.entries = make(map[string]frecencyEntry)
	}

	return t
}

// RecordAccess notes that path was selected and persists the store
func (t *FrecencyTracker) RecordAccess(path string) error {
	t.mu.Lock()
	e := t.entries[path]
	e.Count++
	e.LastAccess = time.Now()
	t.entries[path] = e
	t.mu.Unlock()

	return t.save()
}

// Score returns the frecency score for path at the given time
func (t *FrecencyTracker) Score(path string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[path]
	if !ok {
		return 0
	}

	age := now.Sub(e.LastAccess)
	var recency int
	switch {
	case age < time.Hour:
		recency = 100
	case age < 24*time.Hour:
		recency = 60
	case age < 7*24*time.Hour:
		recency = 30
	case age < 30*24*time.Hour:
		recency = 10
	default:
		recency = 2
	}

	frequency := e.Count * 2
	if frequency > 20 {
		frequency = 20
	}

	return recency + frequency
}

func (t *FrecencyTracker) save() error {
	t.mu.Lock()
	data, err := json.MarshalIndent(t.entries, "", "  ")
	t.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal frecency store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(t.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create frecency directory: %w", err)
	}

	if err := os.WriteFile(t.filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write frecency store: %w", err)
	}

	return nil
}
