package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Profile carries per-user plan and usage state. Read-mostly; mutated by
// profile completion and subscription flows.
type Profile struct {
	UserID           string
	FullName         *string
	DateOfBirth      *time.Time
	TasksCreated     int
	SubscriptionPlan string
	TasksLimit       int
	StripeCustomerID *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
