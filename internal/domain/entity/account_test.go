package entity

import (
	"testing"
	"time"

	domainerrors "gamestore/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHasher is a deterministic hasher so entity tests stay fast.
type testHasher struct{}

func (testHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (testHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

func mustNewAccount(t *testing.T) *Account {
	t.Helper()

	account, err := NewAccount("Test User", "test@example.com", "test_user", "Password1!", testHasher{}, time.Now())
	require.NoError(t, err)

	return account
}

func mustActiveAccount(t *testing.T) *Account {
	t.Helper()

	account := mustNewAccount(t)
	require.NoError(t, account.ConfirmEmail(account.EmailConfirmationToken, time.Now()))

	return account
}

func TestNewAccount_StartsPendingWithConfirmationToken(t *testing.T) {
	now := time.Now()
	account, err := NewAccount("  Test User  ", "Test@Example.com", "test_user", "Password1!", testHasher{}, now)

	require.NoError(t, err)
	assert.Equal(t, "Test User", account.Name)
	assert.Equal(t, "test@example.com", account.Email.String())
	assert.Equal(t, AccountStatusPending, account.Status)
	assert.Equal(t, ProfileTypeCommonUser, account.ProfileType)
	assert.False(t, account.IsTemporaryPassword)
	assert.NotEmpty(t, account.EmailConfirmationToken)
	assert.WithinDuration(t, now.Add(EmailConfirmationTokenTTL), account.EmailConfirmationExpiresAt, time.Second)
	assert.Nil(t, account.EmailConfirmedAt)
	assert.True(t, account.VerifyPassword("Password1!", testHasher{}))
}

func TestNewAccount_AccumulatesAllFieldErrors(t *testing.T) {
	_, err := NewAccount("", "broken", "!", "weak", testHasher{}, time.Now())

	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	fields := validationErr.Fields()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "password")
}

func TestNewAdminCreatedAccount_SetsTemporaryPasswordAndBothTokens(t *testing.T) {
	account, err := NewAdminCreatedAccount("Staff User", "staff@example.com", "staff_user", ProfileTypeAdmin, "Temp1234!", testHasher{}, time.Now())

	require.NoError(t, err)
	assert.Equal(t, ProfileTypeAdmin, account.ProfileType)
	assert.Equal(t, AccountStatusPending, account.Status)
	assert.True(t, account.IsTemporaryPassword)
	assert.NotEmpty(t, account.EmailConfirmationToken)
	assert.NotEmpty(t, account.PasswordResetToken)
}

func TestNewAdminCreatedAccount_RejectsUnknownProfileType(t *testing.T) {
	_, err := NewAdminCreatedAccount("Staff User", "staff@example.com", "staff_user", ProfileType("superuser"), "Temp1234!", testHasher{}, time.Now())

	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields(), "profileType")
}

func TestConfirmEmail_ActivatesAndClearsToken(t *testing.T) {
	account := mustNewAccount(t)
	token := account.EmailConfirmationToken

	require.NoError(t, account.ConfirmEmail(token, time.Now()))

	assert.Equal(t, AccountStatusActive, account.Status)
	assert.Empty(t, account.EmailConfirmationToken)
	assert.NotNil(t, account.EmailConfirmedAt)

	// Replay with the consumed token must fail.
	err := account.ConfirmEmail(token, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyConfirmed))
}

func TestConfirmEmail_WrongToken(t *testing.T) {
	account := mustNewAccount(t)

	err := account.ConfirmEmail("bogus", time.Now())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	assert.Equal(t, AccountStatusPending, account.Status)
}

func TestConfirmEmail_ExpiredToken(t *testing.T) {
	account := mustNewAccount(t)

	err := account.ConfirmEmail(account.EmailConfirmationToken, time.Now().Add(EmailConfirmationTokenTTL+time.Minute))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrExpiredToken))
	assert.Equal(t, AccountStatusPending, account.Status)
}

func TestStateMachine_Transitions(t *testing.T) {
	t.Run("block requires active", func(t *testing.T) {
		account := mustNewAccount(t)
		err := account.Block()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidStateTransition))
	})

	t.Run("block then unblock", func(t *testing.T) {
		account := mustActiveAccount(t)
		require.NoError(t, account.Block())
		assert.Equal(t, AccountStatusBlocked, account.Status)
		require.NoError(t, account.Unblock())
		assert.Equal(t, AccountStatusActive, account.Status)
	})

	t.Run("unblock requires blocked", func(t *testing.T) {
		account := mustActiveAccount(t)
		err := account.Unblock()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidStateTransition))
	})

	t.Run("ban works from any state and is idempotent", func(t *testing.T) {
		account := mustNewAccount(t)
		require.NoError(t, account.Ban())
		assert.Equal(t, AccountStatusBanned, account.Status)
		require.NoError(t, account.Ban())
		assert.Equal(t, AccountStatusBanned, account.Status)
	})

	t.Run("banned account rejects every other mutation", func(t *testing.T) {
		account := mustActiveAccount(t)
		require.NoError(t, account.Ban())

		assert.True(t, errors.Is(account.Block(), domainerrors.ErrBannedAccount))
		assert.True(t, errors.Is(account.Unblock(), domainerrors.ErrBannedAccount))
		assert.True(t, errors.Is(account.UpdateProfile("New Name", ""), domainerrors.ErrBannedAccount))

		_, err := account.GeneratePasswordResetToken(time.Now())
		assert.True(t, errors.Is(err, domainerrors.ErrBannedAccount))
	})
}

func TestResetPassword_ConsumesTokenOnce(t *testing.T) {
	account := mustActiveAccount(t)
	now := time.Now()

	token, err := account.GeneratePasswordResetToken(now)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(PasswordResetTokenTTL), account.PasswordResetExpiresAt, time.Second)

	require.NoError(t, account.ResetPassword(token, "NewPassword1!", testHasher{}, now))
	assert.True(t, account.VerifyPassword("NewPassword1!", testHasher{}))
	assert.Empty(t, account.PasswordResetToken)

	// Second use of the same token must fail.
	err = account.ResetPassword(token, "OtherPass1!", testHasher{}, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	assert.True(t, account.VerifyPassword("NewPassword1!", testHasher{}))
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	account := mustActiveAccount(t)
	now := time.Now()

	token, err := account.GeneratePasswordResetToken(now)
	require.NoError(t, err)

	err = account.ResetPassword(token, "NewPassword1!", testHasher{}, now.Add(PasswordResetTokenTTL+time.Second))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrExpiredToken))
	assert.True(t, account.VerifyPassword("Password1!", testHasher{}))
}

func TestResetPassword_EnforcesStrengthPolicy(t *testing.T) {
	account := mustActiveAccount(t)
	now := time.Now()

	token, err := account.GeneratePasswordResetToken(now)
	require.NoError(t, err)

	err = account.ResetPassword(token, "weak", testHasher{}, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrWeakPassword))
}

func TestResetPassword_ClearsTemporaryFlag(t *testing.T) {
	account := mustActiveAccount(t)
	require.NoError(t, account.SetTemporaryPassword("Temp1234!", testHasher{}))
	assert.True(t, account.IsTemporaryPassword)

	token, err := account.GeneratePasswordResetToken(time.Now())
	require.NoError(t, err)
	require.NoError(t, account.ResetPassword(token, "Chosen12!", testHasher{}, time.Now()))

	assert.False(t, account.IsTemporaryPassword)
	assert.True(t, account.VerifyPassword("Chosen12!", testHasher{}))
}

func TestEmailChange_PendingUntilConfirmed(t *testing.T) {
	account := mustActiveAccount(t)
	newEmail, err := NewEmailAddress("new@example.com")
	require.NoError(t, err)

	token, err := account.InitiateEmailChange(newEmail)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", account.Email.String())
	assert.Equal(t, "new@example.com", account.PendingEmail.String())

	require.NoError(t, account.ConfirmEmailChange(token))
	assert.Equal(t, "new@example.com", account.Email.String())
	assert.True(t, account.PendingEmail.IsZero())
	assert.Empty(t, account.PendingEmailToken)
}

func TestConfirmEmailChange_RequiresPendingChange(t *testing.T) {
	account := mustActiveAccount(t)

	err := account.ConfirmEmailChange("token")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNoPendingEmailChange))
}

func TestConfirmEmailChange_WrongToken(t *testing.T) {
	account := mustActiveAccount(t)
	newEmail, err := NewEmailAddress("new@example.com")
	require.NoError(t, err)
	_, err = account.InitiateEmailChange(newEmail)
	require.NoError(t, err)

	err = account.ConfirmEmailChange("bogus")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
	assert.Equal(t, "test@example.com", account.Email.String())
}

func TestUpdateProfile_EmptyFieldsKeepCurrentValues(t *testing.T) {
	account := mustActiveAccount(t)

	require.NoError(t, account.UpdateProfile("", ""))
	assert.Equal(t, "Test User", account.Name)
	assert.Equal(t, "test_user", account.Username.String())

	require.NoError(t, account.UpdateProfile("Renamed", "renamed_user"))
	assert.Equal(t, "Renamed", account.Name)
	assert.Equal(t, "renamed_user", account.Username.String())
}

func TestUpdateProfile_InvalidUsername(t *testing.T) {
	account := mustActiveAccount(t)

	err := account.UpdateProfile("", "bad name!")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidUsername))
	assert.Equal(t, "test_user", account.Username.String())
}

func TestTokenData_CarriesIdentityFields(t *testing.T) {
	account := mustActiveAccount(t)

	data := account.TokenData()

	assert.Equal(t, account.ID, data.AccountID)
	assert.Equal(t, "test@example.com", data.Email)
	assert.Equal(t, "test_user", data.Username)
	assert.Equal(t, "common_user", data.ProfileType)
	assert.Equal(t, "active", data.AccountStatus)
}
