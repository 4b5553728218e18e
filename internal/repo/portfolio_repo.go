package repo

import (
	"context"

	dom "propboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const portfolioColumns = `portfolio_id, user_id, name, description, created_at, updated_at`

type PortfolioRepo interface {
	GetByID(ctx context.Context, userID, id string) (dom.Portfolio, error)
	List(ctx context.Context, opts ListOptions) ([]dom.Portfolio, error)
	Save(ctx context.Context, p dom.Portfolio) (dom.Portfolio, error)
	Delete(ctx context.Context, userID, id string) error
}

type PGPortfolioRepo struct {
	db *pgxpool.Pool
}

func NewPGPortfolioRepo(db *pgxpool.Pool) *PGPortfolioRepo {
	return &PGPortfolioRepo{db: db}
}

func (r *PGPortfolioRepo) GetByID(ctx context.Context, userID, id string) (dom.Portfolio, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolios WHERE portfolio_id = $1 AND user_id = $2`
	var p dom.Portfolio
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *PGPortfolioRepo) List(ctx context.Context, opts ListOptions) ([]dom.Portfolio, error) {
	clauses, args := buildClauses(opts)
	rows, err := r.db.Query(ctx, `SELECT `+portfolioColumns+` FROM portfolios`+clauses, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Portfolio
	for rows.Next() {
		var p dom.Portfolio
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PGPortfolioRepo) Save(ctx context.Context, p dom.Portfolio) (dom.Portfolio, error) {
	query := `
		INSERT INTO portfolios (portfolio_id, user_id, name, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (portfolio_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			updated_at = NOW()
		RETURNING ` + portfolioColumns
	var out dom.Portfolio
	err := r.db.QueryRow(ctx, query, p.ID, p.UserID, p.Name, p.Description).Scan(
		&out.ID, &out.UserID, &out.Name, &out.Description, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGPortfolioRepo) Delete(ctx context.Context, userID, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM portfolios WHERE portfolio_id = $1 AND user_id = $2`, id, userID)
	return err
}
