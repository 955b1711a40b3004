// Package store defines the persistence contract for dose records. The core
// never touches a store directly; the tracker fetches a snapshot of records
// and hands it to the projection engine.
package store

import (
	"context"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
)

// Store is the narrow contract every persistence backend implements.
//
// Remove is keyed on the exact timestamp string and takes the most recently
// added match: record identity is the timestamp alone, and when duplicates
// exist the product intent is "remove the entry I just added".
type Store interface {
	// Events returns all recorded doses in insertion order.
	Events(ctx context.Context) ([]dose.Raw, error)
	// Append records one dose.
	Append(ctx context.Context, record dose.Raw) error
	// Remove deletes the latest record whose timestamp matches exactly,
	// reporting whether anything was removed.
	Remove(ctx context.Context, timestamp string) (bool, error)
	// Close releases the backend.
	Close() error
}
