package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kkurihara/planboard/internal/db"
	"github.com/kkurihara/planboard/internal/domain"
)

const holidayColumns = `id, project_id, date, end_date, name, created_at`

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

func (r *SQLiteHolidayRepo) Create(ctx context.Context, h *domain.Holiday) error {
	query := `INSERT INTO holidays (` + holidayColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.ProjectID,
		h.Date.Format(dateLayout),
		nullableTimeToString(h.EndDate, dateLayout),
		h.Name,
		h.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting holiday: %w", err)
	}
	return nil
}

func (r *SQLiteHolidayRepo) ListForProject(ctx context.Context, projectID string) ([]*domain.Holiday, error) {
	query := `SELECT ` + holidayColumns + ` FROM holidays
		WHERE project_id IS NULL OR project_id = ? ORDER BY date`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing holidays: %w", err)
	}
	defer rows.Close()

	var holidays []*domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var projID, endStr sql.NullString
		var dateStr, createdAtStr string
		if err := rows.Scan(&h.ID, &projID, &dateStr, &endStr, &h.Name, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning holiday row: %w", err)
		}
		if projID.Valid {
			h.ProjectID = &projID.String
		}
		h.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday date: %w", err)
		}
		h.EndDate = parseNullableTime(endStr, dateLayout)
		h.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing holiday created_at: %w", err)
		}
		holidays = append(holidays, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return holidays, nil
}

func (r *SQLiteHolidayRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting holiday: %w", err)
	}
	return nil
}
