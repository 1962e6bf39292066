package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kkurihara/planboard/internal/db"
	"github.com/kkurihara/planboard/internal/domain"
	"github.com/kkurihara/planboard/internal/wbs"
)

const projectColumns = `id, name, start_date, end_date, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	return r.scanProject(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProjectRow(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		p.Name,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) scanProject(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var startStr, endStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(&p.ID, &p.Name, &startStr, &endStr, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", wbs.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return populateProject(&p, startStr, endStr, createdAtStr, updatedAtStr)
}

func scanProjectRow(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var startStr, endStr sql.NullString
	var createdAtStr, updatedAtStr string

	if err := rows.Scan(&p.ID, &p.Name, &startStr, &endStr, &createdAtStr, &updatedAtStr); err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return populateProject(&p, startStr, endStr, createdAtStr, updatedAtStr)
}

func populateProject(p *domain.Project, startStr, endStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Project, error) {
	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	p.StartDate = parseNullableTime(startStr, dateLayout)
	p.EndDate = parseNullableTime(endStr, dateLayout)
	return p, nil
}
