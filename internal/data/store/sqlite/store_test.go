package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "doses.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("  ")
	assert.Error(t, err)
}

func TestAppendAndEvents(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, dose.Raw{Amount: 1.0, Timestamp: "2024-03-01T08:00:00Z"}))
	require.NoError(t, s.Append(ctx, dose.Raw{Amount: "0.5", Timestamp: "2024-03-01T20:00:00Z"}))

	records, err := s.Events(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Insertion order is preserved and amounts survive as text
	assert.Equal(t, "1", records[0].Amount)
	assert.Equal(t, "2024-03-01T08:00:00Z", records[0].Timestamp)
	assert.Equal(t, "0.5", records[1].Amount)
}

func TestEventsEmpty(t *testing.T) {
	s := openTestStore(t)

	records, err := s.Events(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRemoveTakesLatestMatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Two distinct doses recorded at the identical instant
	require.NoError(t, s.Append(ctx, dose.Raw{Amount: "0.5", Timestamp: "2024-03-01T08:00:00Z"}))
	require.NoError(t, s.Append(ctx, dose.Raw{Amount: "0.25", Timestamp: "2024-03-01T08:00:00Z"}))

	removed, err := s.Remove(ctx, "2024-03-01T08:00:00Z")
	require.NoError(t, err)
	assert.True(t, removed)

	records, err := s.Events(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "0.5", records[0].Amount)
}

func TestRemoveNoMatch(t *testing.T) {
	s := openTestStore(t)

	removed, err := s.Remove(context.Background(), "2024-03-01T08:00:00Z")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doses.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Append(ctx, dose.Raw{Amount: 1.0, Timestamp: "2024-03-01T08:00:00Z"}))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	records, err := s2.Events(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
