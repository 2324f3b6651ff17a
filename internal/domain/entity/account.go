package entity

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// EmailConfirmationTokenTTL is how long a registration confirmation
	// token stays valid.
	EmailConfirmationTokenTTL = 48 * time.Hour

	// PasswordResetTokenTTL is how long a password reset token stays valid.
	PasswordResetTokenTTL = 5 * time.Minute
)

// Account is the aggregate root for the user identity domain. It owns the
// identity fields, the password, the lifecycle status and all pending token
// state. Every mutation must go through the methods below so the state
// machine invariants hold; fields stay exported only for persistence mapping.
type Account struct {
	ID                  uuid.UUID
	Name                string
	Email               EmailAddress
	Username            Username
	Password            Password
	ProfileType         ProfileType
	Status              AccountStatus
	IsTemporaryPassword bool

	EmailConfirmationToken     string
	EmailConfirmationExpiresAt time.Time
	EmailConfirmedAt           *time.Time

	PasswordResetToken     string
	PasswordResetExpiresAt time.Time

	PendingEmail      EmailAddress
	PendingEmailToken string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates a self-registered account in Pending status with a
// fresh email-confirmation token. All field validation failures are
// accumulated into a single field-keyed ValidationError instead of failing
// on the first, so the caller can report every broken field at once.
func NewAccount(name, rawEmail, rawUsername, plaintext string, hasher service.PasswordHasher, now time.Time) (*Account, error) {
	validation := domainerrors.NewValidationError()

	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		validation.Add("name", "name_required")
	}

	email, err := NewEmailAddress(rawEmail)
	if err != nil {
		validation.Add("email", "invalid_email")
	}

	username, err := NewUsername(rawUsername)
	if err != nil {
		validation.Add("username", "invalid_username")
	}

	for _, violation := range PasswordViolations(plaintext) {
		validation.Add("password", violation)
	}

	if validation.HasErrors() {
		return nil, validation
	}

	password, err := NewPassword(plaintext, hasher)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash account password")
	}

	account := &Account{
		Name:        trimmedName,
		Email:       email,
		Username:    username,
		Password:    password,
		ProfileType: ProfileTypeCommonUser,
		Status:      AccountStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := account.GenerateEmailConfirmationToken(now); err != nil {
		return nil, err
	}

	return account, nil
}

// NewAdminCreatedAccount creates an account on behalf of an administrator.
// The profile type is caller-specified, the password is system-assigned and
// flagged temporary, and both a confirmation and a reset token are issued so
// the new user can confirm the address and set their own password.
func NewAdminCreatedAccount(name, rawEmail, rawUsername string, profileType ProfileType, temporaryPassword string, hasher service.PasswordHasher, now time.Time) (*Account, error) {
	account, err := NewAccount(name, rawEmail, rawUsername, temporaryPassword, hasher, now)
	if err != nil {
		return nil, err
	}

	if !profileType.IsValid() {
		return nil, domainerrors.NewValidationError().Add("profileType", "invalid_profile_type")
	}

	account.ProfileType = profileType
	account.IsTemporaryPassword = true

	if _, err := account.GeneratePasswordResetToken(now); err != nil {
		return nil, err
	}

	return account, nil
}

// GenerateEmailConfirmationToken issues a fresh opaque confirmation token,
// replacing any previous one, and returns it for the notification link.
func (a *Account) GenerateEmailConfirmationToken(now time.Time) (string, error) {
	if err := a.ensureNotBanned(); err != nil {
		return "", err
	}

	token, err := newOpaqueToken()
	if err != nil {
		return "", err
	}

	a.EmailConfirmationToken = token
	a.EmailConfirmationExpiresAt = now.Add(EmailConfirmationTokenTTL)
	a.touch(now)

	return token, nil
}

// ConfirmEmail consumes the confirmation token. On success the token is
// cleared so a replay fails, the confirmation time is recorded and the
// account activates immediately.
func (a *Account) ConfirmEmail(token string, now time.Time) error {
	if err := a.ensureNotBanned(); err != nil {
		return err
	}

	if a.EmailConfirmedAt != nil {
		return domainerrors.ErrEmailAlreadyConfirmed.WrapMessage("email was confirmed earlier")
	}

	if token == "" || a.EmailConfirmationToken == "" || token != a.EmailConfirmationToken {
		return domainerrors.ErrInvalidToken.WrapMessage("confirmation token mismatch")
	}

	if now.After(a.EmailConfirmationExpiresAt) {
		return domainerrors.ErrExpiredToken.WrapMessage("confirmation token expired")
	}

	confirmedAt := now
	a.EmailConfirmedAt = &confirmedAt
	a.EmailConfirmationToken = ""
	a.EmailConfirmationExpiresAt = time.Time{}
	a.touch(now)

	return a.Activate()
}

// Activate transitions a Pending account with a confirmed email to Active.
func (a *Account) Activate() error {
	if err := a.ensureNotBanned(); err != nil {
		return err
	}

	if a.Status != AccountStatusPending {
		return domainerrors.ErrInvalidStateTransition.WrapMessage("only a pending account can be activated")
	}

	if a.EmailConfirmedAt == nil {
		return domainerrors.ErrInvalidStateTransition.WrapMessage("email must be confirmed before activation")
	}

	a.Status = AccountStatusActive
	a.touch(time.Now())

	return nil
}

// Block transitions an Active account to Blocked.
func (a *Account) Block() error {
	if err := a.ensureNotBanned(); err != nil {
		return err
	}

	if a.Status != AccountStatusActive {
		return domainerrors.ErrInvalidStateTransition.WrapMessage("only an active account can be blocked")
	}

	a.Status = AccountStatusBlocked
	a.touch(time.Now())

	return nil
}

// Unblock transitions a Blocked account back to Active.
func (a *Account) Unblock() error {
	if err := a.ensureNotBanned(); err != nil {
		return err
	}

	if a.Status != AccountStatusBlocked {
		return domainerrors.ErrInvalidStateTransition.WrapMessage("only a blocked account can be unblocked")
	}

	a.Status = AccountStatusActive
	a.touch(time.Now())

	return nil
}

// Ban transitions the account to Banned from any state. Banning an already
// banned account is a no-op success.
func (a *Account) Ban() error {
	if a.Status == AccountStatusBanned {
		return nil
	}

	a.Status = AccountStatusBanned
	a.touch(time.Now())

	return nil
}

// GeneratePasswordResetToken issues a fresh opaque reset token with a
// 5-minute expiry, replacing any previous one.
func (a *Account) GeneratePasswordResetToken(now time.Time) (string, error) {
	if err := a.ensureNotBanned(); err != nil {
		return "", err
	}

	token, err := newOpaqueToken()
	if err != nil {
		return "", err
	}

	a.PasswordResetToken = token
	a.PasswordResetExpiresAt = now.Add(PasswordResetTokenTTL)
	a.touch(now)

	return token, nil
}

// ResetPassword consumes the reset token and replaces the password. The new
// password goes through the full strength policy. On success the token is
// cleared and the temporary-password flag drops.
func (a *Account) ResetPassword(token, plaintext string, hasher service.PasswordHasher, now time.Time) error {
	if err := a.ensureNotBanned(); err != nil {
		return err
	}

	if token == "" || a.PasswordResetToken == "" || token != a.PasswordResetToken {
		return domainerrors.ErrInvalidToken.WrapMessage("reset token mismatch")
	}

	if now.After(a.PasswordResetExpiresAt) {
		return domainerrors.ErrExpiredToken.WrapMessage("reset token expired")
	}

	password, err := NewPassword(plaintext, hasher)
	if err != nil {
		return err
	}

	a.Password = password
	a.PasswordResetToken = ""
	a.PasswordResetExpiresAt = time.Time{}
	a.IsTemporaryPassword = false
	a.touch(now)

	return nil
}

// SetTemporaryPassword hashes and stores a system-assigned password and
// flags the account so the password must be changed before full access.
func (a *Account) SetTemporaryPassword(plaintext string, hasher service.PasswordHasher) error {
	if err := a.ensureNotBanned(); err != nil {
		return err
	}

	password, err := NewPassword(plaintext, hasher)
	if err != nil {
		return err
	}

	a.Password = password
	a.IsTemporaryPassword = true
	a.touch(time.Now())

	return nil
}

// InitiateEmailChange stores the new address as pending together with a
// fresh token. The primary email stays untouched until the change is
// confirmed. The token is returned for the notification link.
func (a *Account) InitiateEmailChange(newEmail EmailAddress) (string, error) {
	if err := a.ensureNotBanned(); err != nil {
		return "", err
	}

	if newEmail.IsZero() {
		return "", domainerrors.ErrInvalidEmail.WrapMessage("new email is empty")
	}

	token, err := newOpaqueToken()
	if err != nil {
		return "", err
	}

	a.PendingEmail = newEmail
	a.PendingEmailToken = token
	a.touch(time.Now())

	return token, nil
}

// ConfirmEmailChange consumes the pending-email token and promotes the
// pending address to the primary email.
func (a *Account) ConfirmEmailChange(token string) error {
	if err := a.ensureNotBanned(); err != nil {
		return err
	}

	if a.PendingEmail.IsZero() || a.PendingEmailToken == "" {
		return domainerrors.ErrNoPendingEmailChange.WrapMessage("no email change pending")
	}

	if token == "" || token != a.PendingEmailToken {
		return domainerrors.ErrInvalidToken.WrapMessage("email change token mismatch")
	}

	a.Email = a.PendingEmail
	a.PendingEmail = EmailAddress{}
	a.PendingEmailToken = ""
	a.touch(time.Now())

	return nil
}

// VerifyPassword checks a plaintext candidate against the stored hash.
func (a *Account) VerifyPassword(plaintext string, hasher service.PasswordHasher) bool {
	return a.Password.Verify(plaintext, hasher)
}

// UpdateProfile changes the display name and/or username. Empty arguments
// leave the corresponding field untouched; non-empty ones are re-validated.
func (a *Account) UpdateProfile(name, rawUsername string) error {
	if err := a.ensureNotBanned(); err != nil {
		return err
	}

	if trimmed := strings.TrimSpace(name); trimmed != "" {
		a.Name = trimmed
	}

	if strings.TrimSpace(rawUsername) != "" {
		username, err := NewUsername(rawUsername)
		if err != nil {
			return err
		}
		a.Username = username
	}

	a.touch(time.Now())

	return nil
}

// TokenData returns the identity fields a TokenIssuer embeds into a session
// token.
func (a *Account) TokenData() service.AccountTokenData {
	return service.AccountTokenData{
		AccountID:     a.ID,
		Email:         a.Email.String(),
		Username:      a.Username.String(),
		ProfileType:   a.ProfileType.String(),
		AccountStatus: a.Status.String(),
	}
}

func (a *Account) ensureNotBanned() error {
	if a.Status == AccountStatusBanned {
		return domainerrors.ErrBannedAccount.WrapMessage("cannot operate on a banned account")
	}

	return nil
}

func (a *Account) touch(now time.Time) {
	a.UpdatedAt = now
}

// newOpaqueToken returns 32 random bytes hex-encoded. Tokens are stored on
// the account and compared verbatim; they carry no embedded payload.
func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to generate random token")
	}

	return hex.EncodeToString(buf), nil
}
