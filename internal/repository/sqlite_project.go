package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/sitepace/internal/db"
	"github.com/alexanderramin/sitepace/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, code, name, start_date, end_date, status, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Code,
		p.Name,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		string(p.Status),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Invalid(domain.CodeProjectDuplicate, "project code %q already exists", p.Code)
		}
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound(domain.CodeProjectNotFound, "project %s not found", id)
	}
	return p, err
}

func (r *SQLiteProjectRepo) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE UPPER(code) = UPPER(?)`, code)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound(domain.CodeProjectNotFound, "project %s not found", code)
	}
	return p, err
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, code`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
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
	query := `UPDATE projects SET code = ?, name = ?, start_date = ?, end_date = ?, status = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Code,
		p.Name,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		string(p.Status),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Invalid(domain.CodeProjectDuplicate, "project code %q already exists", p.Code)
		}
		return fmt.Errorf("updating project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound(domain.CodeProjectNotFound, "project %s not found", p.ID)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanProject returns sql.ErrNoRows unwrapped so callers can map it.
func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var createdAtStr, updatedAtStr, statusStr string
	var startDateStr, endDateStr sql.NullString

	err := row.Scan(
		&p.ID, &p.Code, &p.Name,
		&startDateStr, &endDateStr,
		&statusStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Status = domain.ProjectStatus(statusStr)
	p.StartDate = parseNullableTime(startDateStr, dateLayout)
	p.EndDate = parseNullableTime(endDateStr, dateLayout)

	var parseErr error
	p.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	p.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &p, nil
}
