package dto

import "time"

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UserResponse is returned when user info is needed (e.g. after login).
type UserResponse struct {
	ID    string `json:"user_id"`
	Email string `json:"email"`
}

// ProfileResponse mirrors the profiles row for the current user.
type ProfileResponse struct {
	UserID           string     `json:"user_id"`
	FullName         *string    `json:"full_name"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	TasksCreated     int        `json:"tasks_created"`
	SubscriptionPlan string     `json:"subscription_plan"`
	TasksLimit       int        `json:"tasks_limit"`
}

// UpdateProfileRequest sets profile details used for completion.
type UpdateProfileRequest struct {
	FullName    *string   `json:"full_name" binding:"omitempty,min=1,max=200"`
	DateOfBirth *FlexDate `json:"date_of_birth"`
}

// BillingAddressRequest is the JSON body for PUT /profile/billing-address.
type BillingAddressRequest struct {
	Line1      string  `json:"line1" binding:"required,min=1,max=200"`
	Line2      *string `json:"line2" binding:"omitempty,max=200"`
	City       string  `json:"city" binding:"required,min=1,max=100"`
	Region     *string `json:"region" binding:"omitempty,max=100"`
	PostalCode string  `json:"postal_code" binding:"required,min=1,max=20"`
	Country    string  `json:"country" binding:"required,len=2"`
}

// ProfileAddressResponse is the stored primary billing address link.
type ProfileAddressResponse struct {
	ID        string     `json:"id"`
	AddressID string     `json:"address_id"`
	Kind      string     `json:"kind"`
	IsPrimary bool       `json:"is_primary"`
	ValidFrom time.Time  `json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to"`
}
