package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// SQLiteForecastRepo implements ForecastRepo using a SQLite database.
type SQLiteForecastRepo struct {
	db db.DBTX
}

func NewSQLiteForecastRepo(conn db.DBTX) *SQLiteForecastRepo {
	return &SQLiteForecastRepo{db: conn}
}

func (r *SQLiteForecastRepo) Create(ctx context.Context, f *domain.Forecast) error {
	query := `INSERT INTO forecasts
		(id, project_id, wbs_item_id, predicted_end_date, predicted_manday, confidence, risk_level, reasoning, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.ProjectID, f.WBSItemID,
		f.PredictedEndDate.Format(dateLayout),
		f.PredictedManday, f.Confidence, string(f.RiskLevel), f.Reasoning,
		f.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting forecast: %w", err)
	}
	return nil
}

func (r *SQLiteForecastRepo) ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.Forecast, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, project_id, wbs_item_id, predicted_end_date, predicted_manday,
			confidence, risk_level, reasoning, created_at
		FROM forecasts WHERE project_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing forecasts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Forecast
	for rows.Next() {
		var f domain.Forecast
		var endStr, riskStr, createdStr string
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.WBSItemID, &endStr, &f.PredictedManday,
			&f.Confidence, &riskStr, &f.Reasoning, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning forecast: %w", err)
		}
		if f.PredictedEndDate, err = time.Parse(dateLayout, endStr); err != nil {
			return nil, fmt.Errorf("parsing predicted_end_date: %w", err)
		}
		if f.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		f.RiskLevel = domain.RiskLevel(riskStr)
		out = append(out, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating forecasts: %w", err)
	}
	return out, nil
}
