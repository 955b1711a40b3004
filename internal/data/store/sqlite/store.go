// Package sqlite provides the local SQLite-backed dose store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	_ "modernc.org/sqlite"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
)

const schema = `
CREATE TABLE IF NOT EXISTS doses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    amount TEXT NOT NULL,
    recorded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_doses_recorded_at ON doses(recorded_at);
`

// Store persists dose records in a local SQLite database.
type Store struct {
	sqlDB *sql.DB
}

// Open opens the database at path, creating it and the schema when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Events returns all recorded doses in insertion order.
func (s *Store) Events(ctx context.Context) ([]dose.Raw, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT amount, recorded_at FROM doses ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query doses: %w", err)
	}
	defer rows.Close()

	var records []dose.Raw
	for rows.Next() {
		var amount, recordedAt string
		if err := rows.Scan(&amount, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan dose row: %w", err)
		}
		records = append(records, dose.Raw{Amount: amount, Timestamp: recordedAt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dose rows: %w", err)
	}
	return records, nil
}

// Append records one dose.
func (s *Store) Append(ctx context.Context, record dose.Raw) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO doses (amount, recorded_at) VALUES (?, ?)`,
		amountText(record.Amount), record.Timestamp)
	if err != nil {
		return fmt.Errorf("insert dose: %w", err)
	}
	return nil
}

// Remove deletes the most recently added record with the exact timestamp.
func (s *Store) Remove(ctx context.Context, timestamp string) (bool, error) {
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM doses WHERE id = (
		    SELECT id FROM doses WHERE recorded_at = ? ORDER BY id DESC LIMIT 1
		)`, timestamp)
	if err != nil {
		return false, fmt.Errorf("delete dose: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete dose result: %w", err)
	}
	return affected > 0, nil
}

// amountText renders a number-like amount for the TEXT column. Malformed
// amounts are stored as-is so normalization stays the single place that
// decides how to degrade them.
func amountText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		data, err := sonic.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(data)
	}
}
