// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginInput defines the data required to log in. Identifier accepts either
// the email address or the username.
type LoginInput struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// ConfirmEmailInput identifies the pending confirmation challenge.
type ConfirmEmailInput struct {
	AccountID uuid.UUID `json:"accountId" validate:"required"`
	Token     string    `json:"token" validate:"required"`
}

// RequestPasswordResetInput starts the reset flow for an email address.
type RequestPasswordResetInput struct {
	Email string `json:"email" validate:"required"`
}

// ConfirmPasswordResetInput consumes a reset token with the new password.
type ConfirmPasswordResetInput struct {
	AccountID       uuid.UUID `json:"accountId" validate:"required"`
	Token           string    `json:"token" validate:"required"`
	NewPassword     string    `json:"newPassword" validate:"required"`
	ConfirmPassword string    `json:"confirmPassword" validate:"required"`
}

// RequestEmailChangeInput starts a change of the primary email address.
// AccountID comes from the authenticated session, not the request body.
type RequestEmailChangeInput struct {
	AccountID uuid.UUID `json:"-"`
	NewEmail  string    `json:"newEmail" validate:"required"`
}

// ConfirmEmailChangeInput consumes a pending email-change token.
type ConfirmEmailChangeInput struct {
	AccountID uuid.UUID `json:"accountId" validate:"required"`
	Token     string    `json:"token" validate:"required"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's ID.
type RegisterOutput struct {
	AccountID uuid.UUID `json:"accountId"`
}

// LoginOutput returns the signed session token plus the identity snapshot.
type LoginOutput struct {
	AccountID     uuid.UUID `json:"accountId"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Token         string    `json:"token"`
	ProfileType   string    `json:"profileType"`
	AccountStatus string    `json:"accountStatus"`
}

// AuthUsecase defines the interface for the authentication and account
// lifecycle operations. This is the contract the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	ConfirmEmail(ctx context.Context, input *ConfirmEmailInput) error
	RequestPasswordReset(ctx context.Context, input *RequestPasswordResetInput) error
	ConfirmPasswordReset(ctx context.Context, input *ConfirmPasswordResetInput) error
	RequestEmailChange(ctx context.Context, input *RequestEmailChangeInput) error
	ConfirmEmailChange(ctx context.Context, input *ConfirmEmailChangeInput) error
}
