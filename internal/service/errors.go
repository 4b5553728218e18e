package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrTitleRequired     = errors.New("title is required")
	ErrNameRequired      = errors.New("portfolio name is required")
	ErrInvalidPriority   = errors.New("invalid priority")

	// Attachment validation.
	ErrTooManyImages = errors.New("task already has the maximum number of images")
	ErrFileTooLarge  = errors.New("file exceeds the 1 MB limit")
	ErrNotAnImage    = errors.New("file is not an image")

	// Auth.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserGone           = errors.New("user no longer exists")
)
