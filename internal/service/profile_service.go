package service

import (
	"context"
	"errors"
	"time"

	dom "propboard/internal/domain"
	"propboard/internal/repo"

	"github.com/jackc/pgx/v5"
)

// CompletionStatus breaks down what a profile still needs before it
// counts as complete.
type CompletionStatus struct {
	Complete          bool `json:"complete"`
	HasFullName       bool `json:"has_full_name"`
	HasDateOfBirth    bool `json:"has_date_of_birth"`
	HasBillingAddress bool `json:"has_billing_address"`
}

// ProfileService handles profile completion and the temporal-versioned
// primary billing address.
type ProfileService struct {
	profiles  repo.ProfileRepo
	addresses repo.AddressRepo
	now       func() time.Time
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profiles repo.ProfileRepo, addresses repo.AddressRepo) *ProfileService {
	return &ProfileService{profiles: profiles, addresses: addresses, now: time.Now}
}

// GetCompletionStatus reports whether a profile is complete: non-empty
// full name, a date of birth that is not in the future, and a current
// primary billing address.
func (s *ProfileService) GetCompletionStatus(ctx context.Context, userID string) (CompletionStatus, error) {
	if err := s.profiles.EnsureExists(ctx, userID); err != nil {
		return CompletionStatus{}, err
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return CompletionStatus{}, err
	}
	now := s.now().UTC()

	var st CompletionStatus
	st.HasFullName = p.FullName != nil && *p.FullName != ""
	st.HasDateOfBirth = p.DateOfBirth != nil && !p.DateOfBirth.After(now)

	addr, err := s.addresses.GetCurrentPrimary(ctx, userID, dom.AddressKindBilling)
	switch {
	case err == nil:
		st.HasBillingAddress = addr.CurrentlyValid(now)
	case errors.Is(err, pgx.ErrNoRows):
		// no address yet
	default:
		return CompletionStatus{}, err
	}

	st.Complete = st.HasFullName && st.HasDateOfBirth && st.HasBillingAddress
	return st, nil
}

// UpdateDetails sets the profile's name and date of birth.
func (s *ProfileService) UpdateDetails(ctx context.Context, userID string, fullName *string, dateOfBirth *time.Time) (dom.Profile, error) {
	if err := s.profiles.EnsureExists(ctx, userID); err != nil {
		return dom.Profile{}, err
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return dom.Profile{}, err
	}
	if fullName != nil {
		p.FullName = fullName
	}
	if dateOfBirth != nil {
		p.DateOfBirth = dateOfBirth
	}
	return s.profiles.Update(ctx, p)
}

// UpsertPrimaryBillingAddress makes the given address the user's current
// primary billing address. The canonical address row is resolved (or
// created) through the database's dedup function; the previous primary,
// if any, is closed with valid_to one second before the new valid_from
// so the validity windows never overlap. The two writes are sequenced,
// not transactional.
func (s *ProfileService) UpsertPrimaryBillingAddress(ctx context.Context, userID string, a dom.Address) (dom.ProfileAddress, error) {
	addressID, err := s.addresses.GetOrCreate(ctx, a)
	if err != nil {
		return dom.ProfileAddress{}, err
	}
	validFrom := s.now().UTC()

	prev, err := s.addresses.GetCurrentPrimary(ctx, userID, dom.AddressKindBilling)
	switch {
	case err == nil:
		if err := s.addresses.CloseValidity(ctx, prev.ID, validFrom.Add(-time.Second)); err != nil {
			return dom.ProfileAddress{}, err
		}
	case errors.Is(err, pgx.ErrNoRows):
		// first billing address for this user
	default:
		return dom.ProfileAddress{}, err
	}

	return s.addresses.InsertPrimary(ctx, dom.ProfileAddress{
		ID:        dom.NewID(),
		UserID:    userID,
		AddressID: addressID,
		Kind:      dom.AddressKindBilling,
		IsPrimary: true,
		ValidFrom: validFrom,
	})
}
