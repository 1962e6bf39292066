package repository

import (
	"context"
	"fmt"

	"github.com/kkurihara/planboard/internal/db"
	"github.com/kkurihara/planboard/internal/wbs"
)

// SQLiteCounterRepo allocates contiguous code sequence ranges atomically
// using the code_counters table. The counter is the single source of truth
// for the highest allocated number; codes are never derived by scanning
// issued records, which races under concurrent writers.
type SQLiteCounterRepo struct {
	db db.DBTX
}

// NewSQLiteCounterRepo creates a new SQLiteCounterRepo.
func NewSQLiteCounterRepo(conn db.DBTX) *SQLiteCounterRepo {
	return &SQLiteCounterRepo{db: conn}
}

// Reserve advances the (projectID, prefix) counter by count and returns
// the first sequence number of the reserved range. The counter row is
// created lazily on first use. SQLite serializes the UPDATE, so two
// concurrent reservations can never observe the same range.
func (r *SQLiteCounterRepo) Reserve(ctx context.Context, projectID, prefix string, count int) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO code_counters (project_id, prefix, last_seq) VALUES (?, ?, 0)`
	if _, err := r.db.ExecContext(ctx, seedQuery, projectID, prefix); err != nil {
		return 0, fmt.Errorf("seeding counter for %s/%s: %v: %w", projectID, prefix, err, wbs.ErrAllocationFailed)
	}

	allocQuery := `UPDATE code_counters
		SET last_seq = last_seq + ?
		WHERE project_id = ? AND prefix = ?
		RETURNING last_seq`
	var last int
	if err := r.db.QueryRowContext(ctx, allocQuery, count, projectID, prefix).Scan(&last); err != nil {
		return 0, fmt.Errorf("reserving %d codes for %s/%s: %v: %w", count, projectID, prefix, err, wbs.ErrAllocationFailed)
	}

	return last - count + 1, nil
}
