package repo

import (
	"context"

	dom "propboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `task_id, user_id, title, description, completed, status, label, priority, due_date, image_url, portfolio_id, created_at, updated_at`

type TaskRepo interface {
	GetByID(ctx context.Context, userID, id string) (dom.Task, error)
	List(ctx context.Context, opts ListOptions) ([]dom.Task, error)
	Save(ctx context.Context, t dom.Task) (dom.Task, error)
	Delete(ctx context.Context, userID, id string) error
	ClearImageURL(ctx context.Context, userID, id string) error
}

type PGTaskRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskRepo(db *pgxpool.Pool) *PGTaskRepo {
	return &PGTaskRepo{db: db}
}

func (r *PGTaskRepo) GetByID(ctx context.Context, userID, id string) (dom.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1 AND user_id = $2`
	var t dom.Task
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Status,
		&t.Label, &t.Priority, &t.DueDate, &t.ImageURL, &t.PortfolioID,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *PGTaskRepo) List(ctx context.Context, opts ListOptions) ([]dom.Task, error) {
	clauses, args := buildClauses(opts)
	rows, err := r.db.Query(ctx, `SELECT `+taskColumns+` FROM tasks`+clauses, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Task
	for rows.Next() {
		var t dom.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed,
			&t.Status, &t.Label, &t.Priority, &t.DueDate, &t.ImageURL, &t.PortfolioID,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Save upserts by primary key: a fresh entity inserts, an existing one
// updates in place.
func (r *PGTaskRepo) Save(ctx context.Context, t dom.Task) (dom.Task, error) {
	query := `
		INSERT INTO tasks (task_id, user_id, title, description, completed, status, label, priority, due_date, image_url, portfolio_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (task_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			completed = EXCLUDED.completed,
			status = EXCLUDED.status,
			label = EXCLUDED.label,
			priority = EXCLUDED.priority,
			due_date = EXCLUDED.due_date,
			image_url = EXCLUDED.image_url,
			portfolio_id = EXCLUDED.portfolio_id,
			updated_at = NOW()
		RETURNING ` + taskColumns
	var out dom.Task
	err := r.db.QueryRow(ctx, query,
		t.ID, t.UserID, t.Title, t.Description, t.Completed, t.Status,
		t.Label, t.Priority, t.DueDate, t.ImageURL, t.PortfolioID,
	).Scan(
		&out.ID, &out.UserID, &out.Title, &out.Description, &out.Completed, &out.Status,
		&out.Label, &out.Priority, &out.DueDate, &out.ImageURL, &out.PortfolioID,
		&out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTaskRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1 AND user_id = $2`, id, userID)
	return err
}

// ClearImageURL drops the legacy single-image path without touching the
// rest of the row.
func (r *PGTaskRepo) ClearImageURL(ctx context.Context, userID, id string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks SET image_url = NULL, updated_at = NOW() WHERE task_id = $1 AND user_id = $2`,
		id, userID)
	return err
}
