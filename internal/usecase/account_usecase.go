package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CreateAccountInput defines the admin path for creating an account. The
// password is system-generated and marked temporary; the caller picks the
// profile type.
type CreateAccountInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	ProfileType string `json:"profileType"`
}

// UpdateAccountInput changes non-status profile fields. Empty fields are
// left untouched.
type UpdateAccountInput struct {
	AccountID uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
}

// AccountOutput is the identity snapshot returned by account queries.
// Password and token state never leave the application layer.
type AccountOutput struct {
	AccountID           uuid.UUID  `json:"accountId"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Username            string     `json:"username"`
	ProfileType         string     `json:"profileType"`
	AccountStatus       string     `json:"accountStatus"`
	IsTemporaryPassword bool       `json:"isTemporaryPassword"`
	EmailConfirmedAt    *time.Time `json:"emailConfirmedAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// AccountUsecase defines administrative account management operations.
type AccountUsecase interface {
	CreateAccount(ctx context.Context, input *CreateAccountInput) (*AccountOutput, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*AccountOutput, error)
	ListAccounts(ctx context.Context) ([]*AccountOutput, error)
	UpdateAccount(ctx context.Context, input *UpdateAccountInput) (*AccountOutput, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	BlockAccount(ctx context.Context, id uuid.UUID) error
	UnblockAccount(ctx context.Context, id uuid.UUID) error
	BanAccount(ctx context.Context, id uuid.UUID) error
}
