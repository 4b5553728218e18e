package repo

import (
	"context"

	dom "propboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

const profileColumns = `user_id, full_name, date_of_birth, tasks_created, subscription_plan, tasks_limit, stripe_customer_id, created_at, updated_at`

type ProfileRepo interface {
	Get(ctx context.Context, userID string) (dom.Profile, error)
	// EnsureExists inserts an empty profile row if the user has none.
	// Idempotent; safe to call before every read.
	EnsureExists(ctx context.Context, userID string) error
	Update(ctx context.Context, p dom.Profile) (dom.Profile, error)
	IncrementTasksCreated(ctx context.Context, userID string) error
}

type PGProfileRepo struct {
	db *pgxpool.Pool
}

func NewPGProfileRepo(db *pgxpool.Pool) *PGProfileRepo {
	return &PGProfileRepo{db: db}
}

func (r *PGProfileRepo) Get(ctx context.Context, userID string) (dom.Profile, error) {
	var p dom.Profile
	err := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.FullName, &p.DateOfBirth, &p.TasksCreated,
		&p.SubscriptionPlan, &p.TasksLimit, &p.StripeCustomerID,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *PGProfileRepo) EnsureExists(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID)
	return err
}

func (r *PGProfileRepo) Update(ctx context.Context, p dom.Profile) (dom.Profile, error) {
	query := `
		UPDATE profiles SET
			full_name = $2,
			date_of_birth = $3,
			subscription_plan = $4,
			tasks_limit = $5,
			stripe_customer_id = $6,
			updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + profileColumns
	var out dom.Profile
	err := r.db.QueryRow(ctx, query,
		p.UserID, p.FullName, p.DateOfBirth, p.SubscriptionPlan, p.TasksLimit, p.StripeCustomerID,
	).Scan(&out.UserID, &out.FullName, &out.DateOfBirth, &out.TasksCreated,
		&out.SubscriptionPlan, &out.TasksLimit, &out.StripeCustomerID,
		&out.CreatedAt, &out.UpdatedAt)
	return out, err
}

// IncrementTasksCreated bumps both the profile counter and the
// usage_tracking row (kept in step for reporting).
func (r *PGProfileRepo) IncrementTasksCreated(ctx context.Context, userID string) error {
	if _, err := r.db.Exec(ctx,
		`UPDATE profiles SET tasks_created = tasks_created + 1, updated_at = NOW() WHERE user_id = $1`,
		userID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO usage_tracking (user_id, tasks_created)
		VALUES ($1, 1)
		ON CONFLICT (user_id) DO UPDATE SET
			tasks_created = usage_tracking.tasks_created + 1,
			updated_at = NOW()`, userID)
	return err
}
