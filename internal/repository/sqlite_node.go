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

// nodeColumns is the canonical SELECT column list for wbs_nodes.
const nodeColumns = `id, project_id, parent_id, level, order_index, title, weight,
		progress, status, start_date, end_date, actual_start_date, actual_end_date,
		assignees, created_at, updated_at`

// maxAncestorWalk bounds the reparent cycle check. The tree is at most
// five levels deep (root plus L1..L4), so a longer walk means corruption.
const maxAncestorWalk = 8

// SQLiteNodeRepo implements NodeRepo using a SQLite database.
type SQLiteNodeRepo struct {
	db db.DBTX
}

// NewSQLiteNodeRepo creates a new SQLiteNodeRepo.
func NewSQLiteNodeRepo(conn db.DBTX) *SQLiteNodeRepo {
	return &SQLiteNodeRepo{db: conn}
}

func (r *SQLiteNodeRepo) Create(ctx context.Context, n *domain.WbsNode) error {
	query := `INSERT INTO wbs_nodes (` + nodeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.ProjectID,
		n.ParentID, // *string: nil becomes SQL NULL
		int(n.Level),
		n.OrderIndex,
		n.Title,
		nullableFloatToValue(n.Weight),
		n.Progress,
		string(n.Status),
		nullableTimeToString(n.StartDate, dateLayout),
		nullableTimeToString(n.EndDate, dateLayout),
		nullableTimeToString(n.ActualStartDate, dateLayout),
		nullableTimeToString(n.ActualEndDate, dateLayout),
		assigneesToJSON(n.Assignees),
		n.CreatedAt.Format(time.RFC3339),
		n.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting wbs node: %w", err)
	}
	return nil
}

func (r *SQLiteNodeRepo) GetByID(ctx context.Context, id string) (*domain.WbsNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM wbs_nodes WHERE id = ?`
	return r.scanNode(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteNodeRepo) GetRoot(ctx context.Context, projectID string) (*domain.WbsNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM wbs_nodes WHERE project_id = ? AND parent_id IS NULL`
	return r.scanNode(r.db.QueryRowContext(ctx, query, projectID))
}

func (r *SQLiteNodeRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WbsNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM wbs_nodes WHERE project_id = ? ORDER BY level, order_index`
	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing wbs nodes by project: %w", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteNodeRepo) ListChildren(ctx context.Context, parentID string) ([]*domain.WbsNode, error) {
	query := `SELECT ` + nodeColumns + ` FROM wbs_nodes WHERE parent_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("listing child wbs nodes: %w", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteNodeRepo) CountChildren(ctx context.Context, parentID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wbs_nodes WHERE parent_id = ?`, parentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting child wbs nodes: %w", err)
	}
	return count, nil
}

func (r *SQLiteNodeRepo) AncestorChain(ctx context.Context, id string) ([]*domain.WbsNode, error) {
	query := `WITH RECURSIVE chain AS (
		SELECT ` + nodeColumns + `, 0 AS depth FROM wbs_nodes
		WHERE id = (SELECT parent_id FROM wbs_nodes WHERE id = ?)
		UNION ALL
		SELECT ` + prefixedNodeColumns("p") + `, chain.depth + 1 FROM wbs_nodes p
		JOIN chain ON p.id = chain.parent_id
	)
	SELECT ` + nodeColumns + ` FROM chain ORDER BY depth`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("walking ancestor chain: %w", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteNodeRepo) Subtree(ctx context.Context, id string) ([]*domain.WbsNode, error) {
	query := `WITH RECURSIVE sub AS (
		SELECT ` + nodeColumns + `, 0 AS depth FROM wbs_nodes WHERE id = ?
		UNION ALL
		SELECT ` + prefixedNodeColumns("c") + `, sub.depth + 1 FROM wbs_nodes c
		JOIN sub ON c.parent_id = sub.id
	)
	SELECT ` + nodeColumns + ` FROM sub ORDER BY depth, order_index`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("walking subtree: %w", err)
	}
	defer rows.Close()
	return r.scanNodes(rows)
}

func (r *SQLiteNodeRepo) MaxSubtreeLevel(ctx context.Context, id string) (domain.Level, error) {
	query := `WITH RECURSIVE sub(id, level) AS (
		SELECT id, level FROM wbs_nodes WHERE id = ?
		UNION ALL
		SELECT c.id, c.level FROM wbs_nodes c JOIN sub ON c.parent_id = sub.id
	)
	SELECT COALESCE(MAX(level), -1) FROM sub`
	var max int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&max); err != nil {
		return 0, fmt.Errorf("computing max subtree level: %w", err)
	}
	if max < 0 {
		return 0, fmt.Errorf("wbs node %s: %w", id, wbs.ErrNotFound)
	}
	return domain.Level(max), nil
}

func (r *SQLiteNodeRepo) Update(ctx context.Context, n *domain.WbsNode) error {
	query := `UPDATE wbs_nodes SET parent_id = ?, level = ?, order_index = ?, title = ?,
		weight = ?, progress = ?, status = ?, start_date = ?, end_date = ?,
		actual_start_date = ?, actual_end_date = ?, assignees = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		n.ParentID,
		int(n.Level),
		n.OrderIndex,
		n.Title,
		nullableFloatToValue(n.Weight),
		n.Progress,
		string(n.Status),
		nullableTimeToString(n.StartDate, dateLayout),
		nullableTimeToString(n.EndDate, dateLayout),
		nullableTimeToString(n.ActualStartDate, dateLayout),
		nullableTimeToString(n.ActualEndDate, dateLayout),
		assigneesToJSON(n.Assignees),
		n.UpdatedAt.Format(time.RFC3339),
		n.ID,
	)
	if err != nil {
		return fmt.Errorf("updating wbs node: %w", err)
	}
	return nil
}

func (r *SQLiteNodeRepo) Reparent(ctx context.Context, id, newParentID string, newOrder int, newLevel domain.Level) error {
	if err := r.checkAcyclic(ctx, id, newParentID); err != nil {
		return err
	}
	query := `UPDATE wbs_nodes SET parent_id = ?, order_index = ?, level = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		newParentID, newOrder, int(newLevel), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("reparenting wbs node: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("wbs node %s: %w", id, wbs.ErrNotFound)
	}
	return nil
}

// checkAcyclic walks parent pointers up from the new parent. The walk must
// terminate at a root within maxAncestorWalk steps and must never pass
// through the node being moved.
func (r *SQLiteNodeRepo) checkAcyclic(ctx context.Context, id, newParentID string) error {
	if id == newParentID {
		return fmt.Errorf("wbs node %s cannot be its own parent: %w", id, wbs.ErrInvalidNode)
	}
	current := newParentID
	for i := 0; i < maxAncestorWalk; i++ {
		var parent sql.NullString
		err := r.db.QueryRowContext(ctx,
			`SELECT parent_id FROM wbs_nodes WHERE id = ?`, current).Scan(&parent)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("wbs node %s: %w", current, wbs.ErrNotFound)
			}
			return fmt.Errorf("checking ancestry of %s: %w", current, err)
		}
		if !parent.Valid {
			return nil // reached the project root
		}
		if parent.String == id {
			return fmt.Errorf("reparenting %s under its own descendant %s: %w", id, newParentID, wbs.ErrInvalidNode)
		}
		current = parent.String
	}
	return fmt.Errorf("ancestor walk from %s did not terminate: %w", newParentID, wbs.ErrInvalidNode)
}

func (r *SQLiteNodeRepo) ShiftSubtreeLevels(ctx context.Context, id string, delta int) error {
	query := `UPDATE wbs_nodes SET level = level + ? WHERE id IN (
		WITH RECURSIVE sub(id) AS (
			SELECT id FROM wbs_nodes WHERE parent_id = ?
			UNION ALL
			SELECT c.id FROM wbs_nodes c JOIN sub ON c.parent_id = sub.id
		)
		SELECT id FROM sub
	)`
	if _, err := r.db.ExecContext(ctx, query, delta, id); err != nil {
		return fmt.Errorf("shifting subtree levels of %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteNodeRepo) ShiftOrdersFrom(ctx context.Context, parentID string, fromOrder, delta int) error {
	query := `UPDATE wbs_nodes SET order_index = order_index + ? WHERE parent_id = ? AND order_index >= ?`
	if _, err := r.db.ExecContext(ctx, query, delta, parentID, fromOrder); err != nil {
		return fmt.Errorf("shifting sibling orders under %s: %w", parentID, err)
	}
	return nil
}

func (r *SQLiteNodeRepo) ResequenceChildren(ctx context.Context, parentID string) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM wbs_nodes WHERE parent_id = ? ORDER BY order_index`, parentID)
	if err != nil {
		return fmt.Errorf("listing children for resequence: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning child id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating child ids: %w", err)
	}

	for i, id := range ids {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE wbs_nodes SET order_index = ? WHERE id = ?`, i, id); err != nil {
			return fmt.Errorf("resequencing child %s: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteNodeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM wbs_nodes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting wbs node: %w", err)
	}
	return nil
}

// prefixedNodeColumns qualifies the canonical column list with a table
// alias for use inside recursive CTEs.
func prefixedNodeColumns(alias string) string {
	return alias + `.id, ` + alias + `.project_id, ` + alias + `.parent_id, ` +
		alias + `.level, ` + alias + `.order_index, ` + alias + `.title, ` +
		alias + `.weight, ` + alias + `.progress, ` + alias + `.status, ` +
		alias + `.start_date, ` + alias + `.end_date, ` + alias + `.actual_start_date, ` +
		alias + `.actual_end_date, ` + alias + `.assignees, ` + alias + `.created_at, ` +
		alias + `.updated_at`
}

// scanNode scans a single node from a *sql.Row.
func (r *SQLiteNodeRepo) scanNode(row *sql.Row) (*domain.WbsNode, error) {
	var n domain.WbsNode
	var levelInt int
	var parentID sql.NullString
	var weight sql.NullFloat64
	var statusStr, assigneesStr, createdAtStr, updatedAtStr string
	var startStr, endStr, actualStartStr, actualEndStr sql.NullString

	err := row.Scan(
		&n.ID, &n.ProjectID, &parentID, &levelInt, &n.OrderIndex, &n.Title, &weight,
		&n.Progress, &statusStr, &startStr, &endStr, &actualStartStr, &actualEndStr,
		&assigneesStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("wbs node: %w", wbs.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning wbs node: %w", err)
	}
	return populateNode(&n, levelInt, parentID, weight, statusStr, assigneesStr,
		createdAtStr, updatedAtStr, startStr, endStr, actualStartStr, actualEndStr)
}

// scanNodes scans multiple nodes from *sql.Rows.
func (r *SQLiteNodeRepo) scanNodes(rows *sql.Rows) ([]*domain.WbsNode, error) {
	var nodes []*domain.WbsNode
	for rows.Next() {
		var n domain.WbsNode
		var levelInt int
		var parentID sql.NullString
		var weight sql.NullFloat64
		var statusStr, assigneesStr, createdAtStr, updatedAtStr string
		var startStr, endStr, actualStartStr, actualEndStr sql.NullString

		err := rows.Scan(
			&n.ID, &n.ProjectID, &parentID, &levelInt, &n.OrderIndex, &n.Title, &weight,
			&n.Progress, &statusStr, &startStr, &endStr, &actualStartStr, &actualEndStr,
			&assigneesStr, &createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning wbs node row: %w", err)
		}
		node, err := populateNode(&n, levelInt, parentID, weight, statusStr, assigneesStr,
			createdAtStr, updatedAtStr, startStr, endStr, actualStartStr, actualEndStr)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs nodes: %w", err)
	}
	return nodes, nil
}

// populateNode fills in parsed fields on a WbsNode after scanning raw values.
func populateNode(
	n *domain.WbsNode,
	levelInt int,
	parentID sql.NullString,
	weight sql.NullFloat64,
	statusStr, assigneesStr, createdAtStr, updatedAtStr string,
	startStr, endStr, actualStartStr, actualEndStr sql.NullString,
) (*domain.WbsNode, error) {
	n.Level = domain.Level(levelInt)
	n.Status = domain.NodeStatus(statusStr)
	n.Assignees = assigneesFromJSON(assigneesStr)

	if parentID.Valid {
		n.ParentID = &parentID.String
	}
	if weight.Valid {
		n.Weight = &weight.Float64
	}

	var parseErr error
	n.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	n.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	n.StartDate = parseNullableTime(startStr, dateLayout)
	n.EndDate = parseNullableTime(endStr, dateLayout)
	n.ActualStartDate = parseNullableTime(actualStartStr, dateLayout)
	n.ActualEndDate = parseNullableTime(actualEndStr, dateLayout)

	return n, nil
}
