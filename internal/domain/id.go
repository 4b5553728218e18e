package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidID is returned for empty or malformed entity identifiers.
var ErrInvalidID = errors.New("invalid id")

// NewID returns a fresh entity identifier.
func NewID() string {
	return uuid.NewString()
}

// ParseID validates an identifier coming from outside (path params,
// request bodies). Rejects empty strings and non-UUID values.
func ParseID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidID
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}
