// Package tracker wires the stores, the configuration, and the projection
// engine into the load -> normalize -> project pipeline every command runs.
package tracker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ChaseCares/pill-doser/internal/config"
	"github.com/ChaseCares/pill-doser/internal/core/dose"
	"github.com/ChaseCares/pill-doser/internal/core/projection"
	"github.com/ChaseCares/pill-doser/internal/core/timeline"
	"github.com/ChaseCares/pill-doser/internal/data/snapshot"
	"github.com/ChaseCares/pill-doser/internal/data/store"
	"github.com/ChaseCares/pill-doser/internal/data/store/sheet"
	"github.com/ChaseCares/pill-doser/internal/data/store/sqlite"
	"github.com/ChaseCares/pill-doser/internal/presentation/formatter"
	"github.com/ChaseCares/pill-doser/internal/util"
)

const (
	dbFileName       = "doses.db"
	snapshotFileName = "events.snapshot.json"
)

// Tracker owns the pipeline dependencies.
type Tracker struct {
	cfg      *config.Config
	store    store.Store
	snapshot *snapshot.Cache
	engine   *projection.Engine
	clock    Clock
}

// New builds a tracker from configuration: the sheet endpoint when one is
// configured, the local database otherwise. The data directory is created
// on demand.
func New(cfg *config.Config) (*Tracker, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory is not configured")
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	var st store.Store
	if cfg.SheetURL != "" {
		st = sheet.NewClient(cfg.SheetURL)
		util.LogDebugf("using sheet endpoint %s", cfg.SheetURL)
	} else {
		local, err := sqlite.Open(filepath.Join(cfg.DataDir, dbFileName))
		if err != nil {
			return nil, err
		}
		st = local
		util.LogDebugf("using local store in %s", cfg.DataDir)
	}

	return NewWithStore(cfg, st), nil
}

// NewWithStore builds a tracker around an explicit store. Used by tests and
// by the serve command, which brings its own store.
func NewWithStore(cfg *config.Config, st store.Store) *Tracker {
	anchor := projection.AnchorFirstEvent
	if cfg.BackProject {
		anchor = projection.AnchorBackProjected
	}
	return &Tracker{
		cfg:      cfg,
		store:    st,
		snapshot: snapshot.New(filepath.Join(cfg.DataDir, snapshotFileName)),
		engine:   projection.NewWithAnchor(anchor),
		clock:    RealClock{},
	}
}

// WithClock swaps the clock; for tests.
func (t *Tracker) WithClock(clock Clock) *Tracker {
	t.clock = clock
	return t
}

// Store exposes the configured store for the serve command.
func (t *Tracker) Store() store.Store { return t.store }

// SnapshotPath is the on-disk location of the last-known-good snapshot; the
// live view watches it for changes.
func (t *Tracker) SnapshotPath() string { return t.snapshot.Path() }

// Close releases the underlying store.
func (t *Tracker) Close() error { return t.store.Close() }

// Load fetches raw records, falling back to the last-known-good snapshot on
// fetch failure. An upstream fault degrades to stale-or-empty data with a
// warning; it never aborts the report.
func (t *Tracker) Load(ctx context.Context) ([]dose.Raw, error) {
	records, err := t.store.Events(ctx)
	if err != nil {
		util.LogWarnf("event fetch failed, falling back to snapshot: %v", err)
		cached, savedAt, snapErr := t.snapshot.Load()
		if snapErr != nil {
			util.LogWarnf("snapshot unavailable: %v", snapErr)
			return nil, nil
		}
		if !savedAt.IsZero() {
			util.LogWarnf("showing snapshot from %s", savedAt.Format(time.RFC3339))
		}
		return cached, nil
	}

	if err := t.snapshot.Save(records); err != nil {
		util.LogWarnf("snapshot save failed: %v", err)
	}
	return records, nil
}

// Report runs the full pipeline and returns the projection at the current
// clock instant, bundled for rendering.
func (t *Tracker) Report(ctx context.Context) (formatter.Report, error) {
	records, err := t.Load(ctx)
	if err != nil {
		return formatter.Report{}, err
	}

	events, warnings := dose.Normalize(records)
	for _, w := range warnings {
		util.LogWarn(w.String())
	}

	now := t.clock.Now()
	rate := t.cfg.Rate()
	return formatter.Report{
		GeneratedAt: now,
		Rate:        rate,
		Result:      t.engine.Project(rate, events, now),
	}, nil
}

// Events returns the normalized, ascending timeline for the list command.
func (t *Tracker) Events(ctx context.Context) ([]dose.Event, error) {
	records, err := t.Load(ctx)
	if err != nil {
		return nil, err
	}
	events, warnings := dose.Normalize(records)
	for _, w := range warnings {
		util.LogWarn(w.String())
	}
	return timeline.Sort(events), nil
}

// Add records a dose of the given amount at the given instant.
func (t *Tracker) Add(ctx context.Context, amount float64, at time.Time) error {
	if amount <= 0 {
		return fmt.Errorf("dose amount must be positive, got %v", amount)
	}
	if err := t.store.Append(ctx, dose.NewRaw(amount, at)); err != nil {
		return fmt.Errorf("record dose: %w", err)
	}
	util.LogInfof("recorded dose of %s at %s", util.FormatAmount(amount), at.UTC().Format(time.RFC3339))
	return nil
}

// Remove deletes the most recently added record with the exact timestamp.
func (t *Tracker) Remove(ctx context.Context, timestamp string) (bool, error) {
	removed, err := t.store.Remove(ctx, timestamp)
	if err != nil {
		return false, fmt.Errorf("remove dose: %w", err)
	}
	if removed {
		util.LogInfof("removed dose at %s", timestamp)
	}
	return removed, nil
}
