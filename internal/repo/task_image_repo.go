package repo

import (
	"context"

	dom "propboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TaskImageRepo tracks attachment rows for tasks. The primary key column
// is image_id, not the task_images-derived default.
type TaskImageRepo interface {
	ListByTask(ctx context.Context, taskID string) ([]dom.TaskImage, error)
	CountByTask(ctx context.Context, taskID string) (int, error)
	Save(ctx context.Context, img dom.TaskImage) (dom.TaskImage, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (dom.TaskImage, error)
}

type PGTaskImageRepo struct {
	db *pgxpool.Pool
}

func NewPGTaskImageRepo(db *pgxpool.Pool) *PGTaskImageRepo {
	return &PGTaskImageRepo{db: db}
}

func (r *PGTaskImageRepo) ListByTask(ctx context.Context, taskID string) ([]dom.TaskImage, error) {
	query := `
		SELECT image_id, task_id, path, created_at
		FROM task_images WHERE task_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.TaskImage
	for rows.Next() {
		var img dom.TaskImage
		if err := rows.Scan(&img.ID, &img.TaskID, &img.Path, &img.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, img)
	}
	return list, rows.Err()
}

func (r *PGTaskImageRepo) CountByTask(ctx context.Context, taskID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM task_images WHERE task_id = $1`, taskID).Scan(&n)
	return n, err
}

func (r *PGTaskImageRepo) Save(ctx context.Context, img dom.TaskImage) (dom.TaskImage, error) {
	query := `
		INSERT INTO task_images (image_id, task_id, path)
		VALUES ($1, $2, $3)
		ON CONFLICT (image_id) DO UPDATE SET path = EXCLUDED.path
		RETURNING image_id, task_id, path, created_at`
	var out dom.TaskImage
	err := r.db.QueryRow(ctx, query, img.ID, img.TaskID, img.Path).Scan(
		&out.ID, &out.TaskID, &out.Path, &out.CreatedAt,
	)
	return out, err
}

func (r *PGTaskImageRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM task_images WHERE image_id = $1`, id)
	return err
}

func (r *PGTaskImageRepo) GetByID(ctx context.Context, id string) (dom.TaskImage, error) {
	var img dom.TaskImage
	err := r.db.QueryRow(ctx,
		`SELECT image_id, task_id, path, created_at FROM task_images WHERE image_id = $1`, id,
	).Scan(&img.ID, &img.TaskID, &img.Path, &img.CreatedAt)
	return img, err
}
