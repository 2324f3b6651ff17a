package entity

import (
	"strings"
	"unicode"

	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/service"
)

// passwordMinLength is the minimum accepted password length. The strength
// rules live here, once, so every entry point (register, admin create,
// reset, temporary password) enforces the identical policy.
const passwordMinLength = 8

// Password strength message keys, one per predicate.
const (
	PasswordTooShort         = "password_too_short"
	PasswordMissingUppercase = "password_missing_uppercase"
	PasswordMissingLowercase = "password_missing_lowercase"
	PasswordMissingDigit     = "password_missing_digit"
	PasswordMissingSpecial   = "password_missing_special"
)

// Password holds only the hash of a credential that passed the strength
// policy. The hasher is always passed in explicitly; the value object keeps
// no global state.
type Password struct {
	hash string
}

// PasswordViolations returns the message key of every strength rule the
// plaintext fails. An empty slice means the password is acceptable.
func PasswordViolations(plaintext string) []string {
	var violations []string

	if len(plaintext) < passwordMinLength {
		violations = append(violations, PasswordTooShort)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		violations = append(violations, PasswordMissingUppercase)
	}
	if !hasLower {
		violations = append(violations, PasswordMissingLowercase)
	}
	if !hasDigit {
		violations = append(violations, PasswordMissingDigit)
	}
	if !hasSpecial {
		violations = append(violations, PasswordMissingSpecial)
	}

	return violations
}

// NewPassword validates the plaintext against the strength policy and hashes
// it with the supplied hasher. The error names every failed predicate so the
// caller can tell the user exactly what is missing.
func NewPassword(plaintext string, hasher service.PasswordHasher) (Password, error) {
	if violations := PasswordViolations(plaintext); len(violations) > 0 {
		return Password{}, domainerrors.ErrWeakPassword.WrapMessage(strings.Join(violations, ", "))
	}

	hash, err := hasher.Hash(plaintext)
	if err != nil {
		return Password{}, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	return Password{hash: hash}, nil
}

// PasswordFromHash rebuilds a Password from a stored hash, for rehydrating
// accounts out of persistence. No policy check is applied.
func PasswordFromHash(hash string) Password {
	return Password{hash: hash}
}

// Hash returns the stored opaque hash.
func (p Password) Hash() string {
	return p.hash
}

// IsZero reports whether no hash is stored.
func (p Password) IsZero() bool {
	return p.hash == ""
}

// Verify delegates the plaintext comparison to the hasher.
func (p Password) Verify(plaintext string, hasher service.PasswordHasher) bool {
	return hasher.Check(plaintext, p.hash)
}
