package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// SQLiteBaselineRepo implements BaselineRepo using a SQLite database.
// Writes are expected to run inside a unit of work so that version
// allocation, deactivation and snapshot inserts commit together.
type SQLiteBaselineRepo struct {
	db db.DBTX
}

func NewSQLiteBaselineRepo(conn db.DBTX) *SQLiteBaselineRepo {
	return &SQLiteBaselineRepo{db: conn}
}

const baselineColumns = `id, project_id, version, name, notes, is_active, approved_at, created_at`

func (r *SQLiteBaselineRepo) NextVersion(ctx context.Context, projectID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) + 1 FROM baselines WHERE project_id = ?`, projectID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("reading max baseline version: %w", err)
	}
	return next, nil
}

func (r *SQLiteBaselineRepo) DeactivateAll(ctx context.Context, projectID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE baselines SET is_active = 0 WHERE project_id = ? AND is_active = 1`, projectID)
	if err != nil {
		if isWriteConflict(err) {
			return domain.Conflict(domain.CodeVersionConflict, err, "deactivating baselines for project %s", projectID)
		}
		return fmt.Errorf("deactivating baselines: %w", err)
	}
	return nil
}

func (r *SQLiteBaselineRepo) Create(ctx context.Context, b *domain.Baseline) error {
	query := `INSERT INTO baselines (` + baselineColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		b.ID, b.ProjectID, b.Version, b.Name, b.Notes,
		boolToInt(b.IsActive),
		nullableTimeToString(b.ApprovedAt, time.RFC3339),
		b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isWriteConflict(err) {
			return domain.Conflict(domain.CodeVersionConflict, err, "baseline version %d already taken", b.Version)
		}
		return fmt.Errorf("inserting baseline: %w", err)
	}
	return nil
}

func (r *SQLiteBaselineRepo) CreateSnapshot(ctx context.Context, s *domain.BaselineSnapshot) error {
	plan, err := json.Marshal(s.DailyPlan)
	if err != nil {
		return fmt.Errorf("encoding daily plan: %w", err)
	}
	query := `INSERT INTO baseline_snapshots
		(id, baseline_id, wbs_item_id, total_manday, start_date, end_date, manpower_per_day, daily_plan)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		s.ID, s.BaselineID, s.WBSItemID, s.TotalManday,
		nullableTimeToString(s.StartDate, dateLayout),
		nullableTimeToString(s.EndDate, dateLayout),
		s.ManpowerPerDay, string(plan),
	)
	if err != nil {
		return fmt.Errorf("inserting baseline snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteBaselineRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Baseline, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+baselineColumns+` FROM baselines WHERE project_id = ? ORDER BY version DESC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing baselines: %w", err)
	}
	defer rows.Close()

	var out []*domain.Baseline
	for rows.Next() {
		b, err := scanBaseline(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating baselines: %w", err)
	}
	return out, nil
}

func (r *SQLiteBaselineRepo) GetByVersion(ctx context.Context, projectID string, version int) (*domain.Baseline, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+baselineColumns+` FROM baselines WHERE project_id = ? AND version = ?`, projectID, version)
	b, err := scanBaseline(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound(domain.CodeBaselineNotFound, "baseline v%d not found", version)
	}
	return b, err
}

func (r *SQLiteBaselineRepo) GetActive(ctx context.Context, projectID string) (*domain.Baseline, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+baselineColumns+` FROM baselines WHERE project_id = ? AND is_active = 1`, projectID)
	b, err := scanBaseline(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return b, err
}

func (r *SQLiteBaselineRepo) ListSnapshots(ctx context.Context, baselineID string) ([]*domain.BaselineSnapshot, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT s.id, s.baseline_id, s.wbs_item_id, s.total_manday,
			s.start_date, s.end_date, s.manpower_per_day, s.daily_plan
		FROM baseline_snapshots s
		JOIN wbs_items w ON w.id = s.wbs_item_id
		WHERE s.baseline_id = ?
		ORDER BY w.sort_order, w.wbs_code`, baselineID)
	if err != nil {
		return nil, fmt.Errorf("listing baseline snapshots: %w", err)
	}
	defer rows.Close()

	var out []*domain.BaselineSnapshot
	for rows.Next() {
		var s domain.BaselineSnapshot
		var startStr, endStr sql.NullString
		var planStr string
		if err := rows.Scan(&s.ID, &s.BaselineID, &s.WBSItemID, &s.TotalManday,
			&startStr, &endStr, &s.ManpowerPerDay, &planStr); err != nil {
			return nil, fmt.Errorf("scanning baseline snapshot: %w", err)
		}
		s.StartDate = parseNullableTime(startStr, dateLayout)
		s.EndDate = parseNullableTime(endStr, dateLayout)
		s.DailyPlan = map[string]float64{}
		if err := json.Unmarshal([]byte(planStr), &s.DailyPlan); err != nil {
			return nil, fmt.Errorf("decoding daily plan for snapshot %s: %w", s.ID, err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating baseline snapshots: %w", err)
	}
	return out, nil
}

func scanBaseline(row rowScanner) (*domain.Baseline, error) {
	var b domain.Baseline
	var isActive int
	var approvedStr sql.NullString
	var createdAtStr string
	err := row.Scan(&b.ID, &b.ProjectID, &b.Version, &b.Name, &b.Notes,
		&isActive, &approvedStr, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning baseline: %w", err)
	}
	b.IsActive = intToBool(isActive)
	b.ApprovedAt = parseNullableTime(approvedStr, time.RFC3339)
	if b.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &b, nil
}
