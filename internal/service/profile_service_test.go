package service

import (
	"context"
	"testing"
	"time"

	dom "propboard/internal/domain"

	"github.com/jackc/pgx/v5"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func completionFixture(p dom.Profile, addrErr error, addr dom.ProfileAddress) *ProfileService {
	profiles := &stubProfileRepo{
		getFn: func(context.Context, string) (dom.Profile, error) { return p, nil },
	}
	addresses := &stubAddressRepo{
		getCurrentPrimaryFn: func(context.Context, string, string) (dom.ProfileAddress, error) {
			if addrErr != nil {
				return dom.ProfileAddress{}, addrErr
			}
			return addr, nil
		},
	}
	svc := NewProfileService(profiles, addresses)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestGetCompletionStatus(t *testing.T) {
	name := "Aysha Nur"
	dob := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	future := testNow.AddDate(1, 0, 0)
	addr := dom.ProfileAddress{ID: "pa1", ValidFrom: testNow.Add(-24 * time.Hour)}

	tests := []struct {
		name    string
		profile dom.Profile
		addrErr error
		addr    dom.ProfileAddress
		want    CompletionStatus
	}{
		{
			name:    "empty profile",
			profile: dom.Profile{},
			addrErr: pgx.ErrNoRows,
			want:    CompletionStatus{},
		},
		{
			name:    "complete",
			profile: dom.Profile{FullName: &name, DateOfBirth: &dob},
			addr:    addr,
			want:    CompletionStatus{Complete: true, HasFullName: true, HasDateOfBirth: true, HasBillingAddress: true},
		},
		{
			name:    "future date of birth does not count",
			profile: dom.Profile{FullName: &name, DateOfBirth: &future},
			addr:    addr,
			want:    CompletionStatus{HasFullName: true, HasBillingAddress: true},
		},
		{
			name:    "no billing address",
			profile: dom.Profile{FullName: &name, DateOfBirth: &dob},
			addrErr: pgx.ErrNoRows,
			want:    CompletionStatus{HasFullName: true, HasDateOfBirth: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := completionFixture(tc.profile, tc.addrErr, tc.addr)
			got, err := svc.GetCompletionStatus(context.Background(), "u")
			if err != nil {
				t.Fatalf("GetCompletionStatus: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUpsertPrimaryBillingAddressFirstTime(t *testing.T) {
	addresses := &stubAddressRepo{
		getOrCreateFn: func(context.Context, dom.Address) (string, error) { return "addr-1", nil },
		getCurrentPrimaryFn: func(context.Context, string, string) (dom.ProfileAddress, error) {
			return dom.ProfileAddress{}, pgx.ErrNoRows
		},
		insertPrimaryFn: func(_ context.Context, link dom.ProfileAddress) (dom.ProfileAddress, error) {
			return link, nil
		},
	}
	svc := NewProfileService(&stubProfileRepo{}, addresses)
	svc.now = func() time.Time { return testNow }

	link, err := svc.UpsertPrimaryBillingAddress(context.Background(), "u", dom.Address{Line1: "1 Main St", City: "Astana", PostalCode: "010000", Country: "KZ"})
	if err != nil {
		t.Fatalf("UpsertPrimaryBillingAddress: %v", err)
	}
	if link.AddressID != "addr-1" || link.Kind != dom.AddressKindBilling || !link.IsPrimary {
		t.Errorf("link = %+v", link)
	}
	if !link.ValidFrom.Equal(testNow) {
		t.Errorf("valid_from = %v, want %v", link.ValidFrom, testNow)
	}
	if link.ValidTo != nil {
		t.Errorf("valid_to = %v, want open-ended", *link.ValidTo)
	}
}

func TestUpsertPrimaryBillingAddressClosesPrevious(t *testing.T) {
	var closedID string
	var closedAt time.Time
	addresses := &stubAddressRepo{
		getOrCreateFn: func(context.Context, dom.Address) (string, error) { return "addr-2", nil },
		getCurrentPrimaryFn: func(context.Context, string, string) (dom.ProfileAddress, error) {
			return dom.ProfileAddress{ID: "pa-old", AddressID: "addr-1", ValidFrom: testNow.Add(-48 * time.Hour)}, nil
		},
		closeValidityFn: func(_ context.Context, linkID string, validTo time.Time) error {
			closedID = linkID
			closedAt = validTo
			return nil
		},
		insertPrimaryFn: func(_ context.Context, link dom.ProfileAddress) (dom.ProfileAddress, error) {
			return link, nil
		},
	}
	svc := NewProfileService(&stubProfileRepo{}, addresses)
	svc.now = func() time.Time { return testNow }

	link, err := svc.UpsertPrimaryBillingAddress(context.Background(), "u", dom.Address{Line1: "2 Side St", City: "Astana", PostalCode: "010000", Country: "KZ"})
	if err != nil {
		t.Fatalf("UpsertPrimaryBillingAddress: %v", err)
	}
	if closedID != "pa-old" {
		t.Errorf("closed link = %q, want pa-old", closedID)
	}
	if want := testNow.Add(-time.Second); !closedAt.Equal(want) {
		t.Errorf("previous valid_to = %v, want one second before new valid_from (%v)", closedAt, want)
	}
	if !link.ValidFrom.Equal(testNow) {
		t.Errorf("new valid_from = %v, want %v", link.ValidFrom, testNow)
	}
}

func TestUpdateDetailsKeepsUnsetFields(t *testing.T) {
	name := "Old Name"
	dob := time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC)
	profiles := &stubProfileRepo{
		getFn: func(context.Context, string) (dom.Profile, error) {
			return dom.Profile{UserID: "u", FullName: &name, DateOfBirth: &dob}, nil
		},
		updateFn: func(_ context.Context, p dom.Profile) (dom.Profile, error) { return p, nil },
	}
	svc := NewProfileService(profiles, &stubAddressRepo{})

	newName := "New Name"
	p, err := svc.UpdateDetails(context.Background(), "u", &newName, nil)
	if err != nil {
		t.Fatalf("UpdateDetails: %v", err)
	}
	if p.FullName == nil || *p.FullName != "New Name" {
		t.Errorf("full name = %v", p.FullName)
	}
	if p.DateOfBirth == nil || !p.DateOfBirth.Equal(dob) {
		t.Error("date of birth should be untouched")
	}
}
