package domain

import "time"

// AddressKindBilling is the only address kind this layer manages.
const AddressKindBilling = "billing"

// Address is a canonical, deduplicated postal address.
type Address struct {
	ID         string
	Line1      string
	Line2      *string
	City       string
	Region     *string
	PostalCode string
	Country    string
	CreatedAt  time.Time
}

// ProfileAddress links a user to an address for a validity window.
// At most one currently-valid primary row exists per (user, kind);
// the service sequences valid_to/valid_from to keep it that way.
type ProfileAddress struct {
	ID        string
	UserID    string
	AddressID string
	Kind      string
	IsPrimary bool
	ValidFrom time.Time
	ValidTo   *time.Time
}

// CurrentlyValid reports whether the row is valid at the given instant.
func (pa ProfileAddress) CurrentlyValid(now time.Time) bool {
	return !pa.ValidFrom.After(now) && pa.ValidTo == nil
}
