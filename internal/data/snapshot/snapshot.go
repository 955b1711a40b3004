// Package snapshot keeps the last successfully fetched dose records on disk
// so a failed fetch degrades to stale data instead of a blank dashboard.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
)

// Cache is a single-file snapshot of raw dose records.
type Cache struct {
	path string
}

type envelope struct {
	SavedAt time.Time  `json:"savedAt"`
	Records []dose.Raw `json:"records"`
}

// New creates a cache at path; the parent directory must exist.
func New(path string) *Cache {
	return &Cache{path: path}
}

// Save atomically replaces the snapshot with the given records.
func (c *Cache) Save(records []dose.Raw) error {
	data, err := sonic.Marshal(envelope{SavedAt: time.Now().UTC(), Records: records})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot records and when they were saved. A missing
// snapshot returns empty records and a zero time, not an error.
func (c *Cache) Load() ([]dose.Raw, time.Time, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("read snapshot: %w", err)
	}

	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, time.Time{}, fmt.Errorf("parse snapshot: %w", err)
	}
	return env.Records, env.SavedAt, nil
}

// Path returns the snapshot file location, used by the live view to watch
// for changes.
func (c *Cache) Path() string {
	return filepath.Clean(c.path)
}
