// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gamestore/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is returned when no account matches the lookup key.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the standard operations for account persistence.
// Email lookups use the canonical lowercase form; username lookups use the
// normalized form, so both are case-insensitive. The Exists checks are fast
// pre-filters for per-field error messages; the database unique indexes
// remain the source of truth under concurrent registration.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by canonical email.
	FindByEmail(ctx context.Context, email entity.EmailAddress) (*entity.Account, error)

	// FindByUsername retrieves a single account by normalized username.
	FindByUsername(ctx context.Context, username entity.Username) (*entity.Account, error)

	// ExistsByEmail reports whether an account owns the canonical email.
	ExistsByEmail(ctx context.Context, email entity.EmailAddress) (bool, error)

	// ExistsByUsername reports whether an account owns the normalized username.
	ExistsByUsername(ctx context.Context, username entity.Username) (bool, error)

	// List returns all accounts, newest first.
	List(ctx context.Context) ([]*entity.Account, error)

	// Create persists a new account.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
