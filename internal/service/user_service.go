package service

import (
	"context"
	"errors"
	"strings"

	dom "propboard/internal/domain"
	"propboard/internal/repo"
	"propboard/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles account auth logic.
type UserService struct {
	users    repo.UserRepo
	profiles repo.ProfileRepo
}

// NewUserService returns a new UserService.
func NewUserService(users repo.UserRepo, profiles repo.ProfileRepo) *UserService {
	return &UserService{users: users, profiles: profiles}
}

// ValidateCredentials checks email and password; returns the user if valid.
func (s *UserService) ValidateCredentials(ctx context.Context, email, password string) (dom.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrInvalidCredentials
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a new user with a hashed password and seeds an empty
// profile row for it.
func (s *UserService) Register(ctx context.Context, email, password string) (dom.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.users.Create(ctx, dom.NewID(), email, string(hash))
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	if err := s.profiles.EnsureExists(ctx, u.ID); err != nil {
		return dom.User{}, err
	}
	return u, nil
}

// EnsureUserValid re-checks that the user behind a session still exists.
// Defends against sessions outliving account deletion; callers drop the
// session when ErrUserGone comes back.
func (s *UserService) EnsureUserValid(ctx context.Context, userID string) (dom.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUserGone
		}
		return dom.User{}, err
	}
	return u, nil
}

// LoadProfile returns the user's profile, creating the row first if a
// backend trigger failed to. Idempotent.
func (s *UserService) LoadProfile(ctx context.Context, userID string) (dom.Profile, error) {
	if err := s.profiles.EnsureExists(ctx, userID); err != nil {
		return dom.Profile{}, err
	}
	return s.profiles.Get(ctx, userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
