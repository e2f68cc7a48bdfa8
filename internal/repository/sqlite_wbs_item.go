package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// SQLiteWBSItemRepo implements WBSItemRepo using a SQLite database.
type SQLiteWBSItemRepo struct {
	db db.DBTX
}

func NewSQLiteWBSItemRepo(conn db.DBTX) *SQLiteWBSItemRepo {
	return &SQLiteWBSItemRepo{db: conn}
}

const wbsColumns = `id, project_id, parent_id, wbs_code, wbs_name, qty, unit, sort_order, level, is_summary, created_at, updated_at`

func (r *SQLiteWBSItemRepo) Create(ctx context.Context, w *domain.WBSItem) error {
	query := `INSERT INTO wbs_items (` + wbsColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.ProjectID, nullableString(w.ParentID),
		w.Code, w.Name, w.Qty, w.Unit,
		w.SortOrder, w.Level, boolToInt(w.IsSummary),
		w.CreatedAt.Format(time.RFC3339), w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Invalid(domain.CodeWBSDuplicate, "wbs code %q already exists in project", w.Code)
		}
		return fmt.Errorf("inserting wbs item: %w", err)
	}
	return nil
}

func (r *SQLiteWBSItemRepo) GetByID(ctx context.Context, id string) (*domain.WBSItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+wbsColumns+` FROM wbs_items WHERE id = ?`, id)
	w, err := scanWBSItem(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound(domain.CodeWBSNotFound, "wbs item %s not found", id)
	}
	return w, err
}

func (r *SQLiteWBSItemRepo) GetByCode(ctx context.Context, projectID, code string) (*domain.WBSItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+wbsColumns+` FROM wbs_items WHERE project_id = ? AND wbs_code = ?`, projectID, code)
	w, err := scanWBSItem(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound(domain.CodeWBSNotFound, "wbs item %s not found", code)
	}
	return w, err
}

func (r *SQLiteWBSItemRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WBSItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+wbsColumns+` FROM wbs_items WHERE project_id = ? ORDER BY sort_order, wbs_code`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing wbs items: %w", err)
	}
	defer rows.Close()

	var items []*domain.WBSItem
	for rows.Next() {
		w, err := scanWBSItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating wbs items: %w", err)
	}
	return items, nil
}

func (r *SQLiteWBSItemRepo) Update(ctx context.Context, w *domain.WBSItem) error {
	query := `UPDATE wbs_items SET parent_id = ?, wbs_code = ?, wbs_name = ?, qty = ?, unit = ?,
		sort_order = ?, level = ?, is_summary = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(w.ParentID), w.Code, w.Name, w.Qty, w.Unit,
		w.SortOrder, w.Level, boolToInt(w.IsSummary),
		w.UpdatedAt.Format(time.RFC3339), w.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Invalid(domain.CodeWBSDuplicate, "wbs code %q already exists in project", w.Code)
		}
		return fmt.Errorf("updating wbs item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound(domain.CodeWBSNotFound, "wbs item %s not found", w.ID)
	}
	return nil
}

func (r *SQLiteWBSItemRepo) Upsert(ctx context.Context, w *domain.WBSItem) error {
	query := `INSERT INTO wbs_items (` + wbsColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, wbs_code) DO UPDATE SET
			parent_id = excluded.parent_id,
			wbs_name = excluded.wbs_name,
			qty = excluded.qty,
			unit = excluded.unit,
			sort_order = excluded.sort_order,
			level = excluded.level,
			is_summary = excluded.is_summary,
			updated_at = excluded.updated_at
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		w.ID, w.ProjectID, nullableString(w.ParentID),
		w.Code, w.Name, w.Qty, w.Unit,
		w.SortOrder, w.Level, boolToInt(w.IsSummary),
		w.CreatedAt.Format(time.RFC3339), w.UpdatedAt.Format(time.RFC3339),
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("upserting wbs item %s: %w", w.Code, err)
	}
	return nil
}

func scanWBSItem(row rowScanner) (*domain.WBSItem, error) {
	var w domain.WBSItem
	var parentID sql.NullString
	var isSummary int
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&w.ID, &w.ProjectID, &parentID,
		&w.Code, &w.Name, &w.Qty, &w.Unit,
		&w.SortOrder, &w.Level, &isSummary,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning wbs item: %w", err)
	}
	if parentID.Valid {
		w.ParentID = &parentID.String
	}
	w.IsSummary = intToBool(isSummary)

	var parseErr error
	if w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if w.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &w, nil
}
