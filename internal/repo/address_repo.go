package repo

import (
	"context"
	"time"

	dom "propboard/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AddressRepo manages canonical addresses and their temporal links to
// profiles. GetOrCreate delegates deduplication to the database function.
type AddressRepo interface {
	GetOrCreate(ctx context.Context, a dom.Address) (string, error)
	GetCurrentPrimary(ctx context.Context, userID, kind string) (dom.ProfileAddress, error)
	CloseValidity(ctx context.Context, linkID string, validTo time.Time) error
	InsertPrimary(ctx context.Context, link dom.ProfileAddress) (dom.ProfileAddress, error)
}

type PGAddressRepo struct {
	db *pgxpool.Pool
}

func NewPGAddressRepo(db *pgxpool.Pool) *PGAddressRepo {
	return &PGAddressRepo{db: db}
}

// GetOrCreate resolves a canonical address id, inserting the row if the
// content is new (dedup happens inside get_or_create_address).
func (r *PGAddressRepo) GetOrCreate(ctx context.Context, a dom.Address) (string, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`SELECT get_or_create_address($1, $2, $3, $4, $5, $6)`,
		a.Line1, a.Line2, a.City, a.Region, a.PostalCode, a.Country,
	).Scan(&id)
	return id, err
}

func (r *PGAddressRepo) GetCurrentPrimary(ctx context.Context, userID, kind string) (dom.ProfileAddress, error) {
	query := `
		SELECT id, user_id, address_id, kind, is_primary, valid_from, valid_to
		FROM profile_addresses
		WHERE user_id = $1 AND kind = $2 AND is_primary AND valid_to IS NULL
		ORDER BY valid_from DESC
		LIMIT 1`
	var pa dom.ProfileAddress
	err := r.db.QueryRow(ctx, query, userID, kind).Scan(
		&pa.ID, &pa.UserID, &pa.AddressID, &pa.Kind, &pa.IsPrimary, &pa.ValidFrom, &pa.ValidTo,
	)
	return pa, err
}

func (r *PGAddressRepo) CloseValidity(ctx context.Context, linkID string, validTo time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE profile_addresses SET valid_to = $2 WHERE id = $1`, linkID, validTo)
	return err
}

func (r *PGAddressRepo) InsertPrimary(ctx context.Context, link dom.ProfileAddress) (dom.ProfileAddress, error) {
	query := `
		INSERT INTO profile_addresses (id, user_id, address_id, kind, is_primary, valid_from)
		VALUES ($1, $2, $3, $4, TRUE, $5)
		RETURNING id, user_id, address_id, kind, is_primary, valid_from, valid_to`
	var out dom.ProfileAddress
	err := r.db.QueryRow(ctx, query,
		link.ID, link.UserID, link.AddressID, link.Kind, link.ValidFrom,
	).Scan(&out.ID, &out.UserID, &out.AddressID, &out.Kind, &out.IsPrimary, &out.ValidFrom, &out.ValidTo)
	return out, err
}
