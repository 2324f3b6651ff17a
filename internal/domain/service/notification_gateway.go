package service

import "context"

// NotificationGateway defines the outbound email contract for account
// lifecycle notifications. Implementations deliver through an external
// provider; whether a send failure aborts the owning use case is decided by
// the use case, not here.
type NotificationGateway interface {
	// SendConfirmation delivers the email-confirmation link after registration.
	SendConfirmation(ctx context.Context, email, name, link string) error

	// SendPasswordReset delivers the password-reset link.
	SendPasswordReset(ctx context.Context, email, name, link string) error

	// SendEmailChangeConfirmation notifies the CURRENT address about a
	// pending change, so the existing owner can detect a hijack attempt.
	SendEmailChangeConfirmation(ctx context.Context, email, name, newEmail, link string) error

	// SendTemporaryPassword delivers an admin-assigned temporary password.
	SendTemporaryPassword(ctx context.Context, email, name, temporaryPassword, link string) error
}
