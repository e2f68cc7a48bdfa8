package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// SQLiteAllocationRepo implements AllocationRepo using a SQLite database.
type SQLiteAllocationRepo struct {
	db db.DBTX
}

func NewSQLiteAllocationRepo(conn db.DBTX) *SQLiteAllocationRepo {
	return &SQLiteAllocationRepo{db: conn}
}

const allocationColumns = `a.wbs_item_id, a.date, a.planned_manpower, a.actual_manpower, a.qty_done, a.notes, a.source, a.updated_at`

// Upsert inserts the cell or overwrites only the columns present on the
// patch. COALESCE keeps the stored value where the patch carries NULL.
func (r *SQLiteAllocationRepo) Upsert(ctx context.Context, p *domain.AllocationPatch) error {
	query := `INSERT INTO daily_allocations (wbs_item_id, date, planned_manpower, actual_manpower, qty_done, notes, source, updated_at)
		VALUES (?, ?, COALESCE(?, 0), COALESCE(?, 0), COALESCE(?, 0), COALESCE(?, ''), ?, ?)
		ON CONFLICT(wbs_item_id, date) DO UPDATE SET
			planned_manpower = COALESCE(?, daily_allocations.planned_manpower),
			actual_manpower = COALESCE(?, daily_allocations.actual_manpower),
			qty_done = COALESCE(?, daily_allocations.qty_done),
			notes = COALESCE(?, daily_allocations.notes),
			source = excluded.source,
			updated_at = excluded.updated_at`
	planned, manpower := nullableFloat(p.PlannedManpower), nullableFloat(p.ActualManpower)
	qty, notes := nullableFloat(p.QtyDone), nullableString(p.Notes)
	_, err := r.db.ExecContext(ctx, query,
		p.WBSItemID, p.Date.Format(dateLayout), planned, manpower, qty, notes,
		string(p.Source), nowUTC(),
		planned, manpower, qty, notes,
	)
	if err != nil {
		return fmt.Errorf("upserting allocation %s/%s: %w", p.WBSItemID, p.Date.Format(dateLayout), err)
	}
	return nil
}

func (r *SQLiteAllocationRepo) ListByItem(ctx context.Context, wbsItemID string) ([]*domain.DailyAllocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+allocationColumns+` FROM daily_allocations a WHERE a.wbs_item_id = ? ORDER BY a.date`, wbsItemID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations for item: %w", err)
	}
	return collectAllocations(rows)
}

func (r *SQLiteAllocationRepo) ListByProject(ctx context.Context, projectID string, from, to *time.Time) ([]*domain.DailyAllocation, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + allocationColumns + ` FROM daily_allocations a
		JOIN wbs_items w ON w.id = a.wbs_item_id
		WHERE w.project_id = ?`)
	args := []any{projectID}
	if from != nil {
		b.WriteString(` AND a.date >= ?`)
		args = append(args, from.Format(dateLayout))
	}
	if to != nil {
		b.WriteString(` AND a.date <= ?`)
		args = append(args, to.Format(dateLayout))
	}
	b.WriteString(` ORDER BY a.date, a.wbs_item_id`)

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("listing allocations for project: %w", err)
	}
	return collectAllocations(rows)
}

func collectAllocations(rows *sql.Rows) ([]*domain.DailyAllocation, error) {
	defer rows.Close()
	var out []*domain.DailyAllocation
	for rows.Next() {
		var a domain.DailyAllocation
		var dateStr, sourceStr, updatedAtStr string
		if err := rows.Scan(
			&a.WBSItemID, &dateStr,
			&a.PlannedManpower, &a.ActualManpower, &a.QtyDone,
			&a.Notes, &sourceStr, &updatedAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning allocation: %w", err)
		}
		var err error
		if a.Date, err = time.Parse(dateLayout, dateStr); err != nil {
			return nil, fmt.Errorf("parsing allocation date: %w", err)
		}
		a.Source = domain.AllocationSource(sourceStr)
		if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating allocations: %w", err)
	}
	return out, nil
}
