package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
)

type SQLiteChatLogRepo struct {
	db db.DBTX
}

func NewSQLiteChatLogRepo(conn db.DBTX) *SQLiteChatLogRepo {
	return &SQLiteChatLogRepo{db: conn}
}

func (r *SQLiteChatLogRepo) Create(ctx context.Context, l *domain.ChatActionLog) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO chat_action_logs
		(id, project_id, actions, updated_count, error_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.ProjectID, l.Actions, l.UpdatedCount, l.ErrorCount, l.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting chat action log: %w", err)
	}
	return nil
}

func (r *SQLiteChatLogRepo) ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.ChatActionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, project_id, actions, updated_count, error_count, created_at
		FROM chat_action_logs WHERE project_id = ?
		ORDER BY created_at DESC, rowid DESC LIMIT ?`, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing chat action logs: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChatActionLog
	for rows.Next() {
		var l domain.ChatActionLog
		var createdStr string
		if err := rows.Scan(&l.ID, &l.ProjectID, &l.Actions, &l.UpdatedCount, &l.ErrorCount, &createdStr); err != nil {
			return nil, fmt.Errorf("scanning chat action log: %w", err)
		}
		if l.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
