package entity

import (
	"strings"

	domainerrors "gamestore/internal/domain/errors"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 30
)

// Username is a validated display handle. Uniqueness comparisons use the
// normalized (lowercase) form so "Ann_99" and "ann_99" are the same handle.
type Username struct {
	raw string
}

// NewUsername validates a raw username and returns the value object.
// Allowed characters are letters, digits, dot, underscore and hyphen.
func NewUsername(raw string) (Username, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Username{}, domainerrors.ErrInvalidUsername.WrapMessage("username is empty")
	}

	if len(trimmed) < usernameMinLength || len(trimmed) > usernameMaxLength {
		return Username{}, domainerrors.ErrInvalidUsername.WrapMessage("username length out of range")
	}

	for _, r := range trimmed {
		if !isUsernameRune(r) {
			return Username{}, domainerrors.ErrInvalidUsername.WrapMessage("username contains invalid characters")
		}
	}

	return Username{raw: trimmed}, nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-':
		return true
	default:
		return false
	}
}

// UsernameFromTrusted rebuilds a value from an already-validated string
// coming out of persistence. No validation is applied.
func UsernameFromTrusted(raw string) Username {
	return Username{raw: raw}
}

// String returns the username as entered (trimmed).
func (u Username) String() string {
	return u.raw
}

// Normalized returns the lowercase form used for case-insensitive comparison.
func (u Username) Normalized() string {
	return strings.ToLower(u.raw)
}

// IsZero reports whether the value is the empty Username.
func (u Username) IsZero() bool {
	return u.raw == ""
}

// Equals compares two usernames by normalized form.
func (u Username) Equals(other Username) bool {
	return u.Normalized() == other.Normalized()
}
