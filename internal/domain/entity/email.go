// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"net/mail"
	"strings"

	domainerrors "gamestore/internal/domain/errors"
)

// EmailAddress is a validated, canonicalized email value object.
// The canonical form is the trimmed, lowercased address, so two values
// compare equal regardless of the casing the user typed.
type EmailAddress struct {
	canonical string
}

// NewEmailAddress validates a raw email string and returns its canonical form.
// It fails with ErrInvalidEmail when the input is empty or not a parseable
// mailbox address.
func NewEmailAddress(raw string) (EmailAddress, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return EmailAddress{}, domainerrors.ErrInvalidEmail.WrapMessage("email is empty")
	}

	parsed, err := mail.ParseAddress(trimmed)
	if err != nil || parsed.Address != trimmed {
		// Reject display-name forms like "Ann <ann@x.com>"; only the bare
		// mailbox address is a valid account identity.
		return EmailAddress{}, domainerrors.ErrInvalidEmail.WrapMessage("not a valid mailbox address")
	}

	return EmailAddress{canonical: strings.ToLower(trimmed)}, nil
}

// EmailAddressFromCanonical rebuilds a value from an already-canonical
// string coming out of persistence. No validation is applied.
func EmailAddressFromCanonical(canonical string) EmailAddress {
	return EmailAddress{canonical: canonical}
}

// String returns the canonical lowercase form of the address.
func (e EmailAddress) String() string {
	return e.canonical
}

// IsZero reports whether the value is the empty EmailAddress.
func (e EmailAddress) IsZero() bool {
	return e.canonical == ""
}

// Equals compares two addresses by canonical form.
func (e EmailAddress) Equals(other EmailAddress) bool {
	return e.canonical == other.canonical
}
