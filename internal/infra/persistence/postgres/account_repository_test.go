package postgres

import (
	"testing"
	"time"

	"gamestore/internal/domain/entity"
	domainerrors "gamestore/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromAccountDomain_PopulatesUsernameKey(t *testing.T) {
	confirmedAt := time.Now()
	account := &entity.Account{
		ID:               uuid.New(),
		Name:             "Test User",
		Email:            entity.EmailAddressFromCanonical("ann@example.com"),
		Username:         entity.UsernameFromTrusted("Ann_99"),
		Password:         entity.PasswordFromHash("hash"),
		ProfileType:      entity.ProfileTypeCommonUser,
		Status:           entity.AccountStatusActive,
		EmailConfirmedAt: &confirmedAt,
	}

	accountM := fromAccountDomain(account)

	assert.Equal(t, "Ann_99", accountM.Username)
	// The unique index guards the lowercase form, so two casings of the same
	// handle collide at the database even when the pre-checks raced.
	assert.Equal(t, "ann_99", accountM.UsernameKey)
}

func TestAccountMapper_RoundTrip(t *testing.T) {
	confirmedAt := time.Now().Truncate(time.Second)
	original := &entity.Account{
		ID:                  uuid.New(),
		Name:                "Test User",
		Email:               entity.EmailAddressFromCanonical("ann@example.com"),
		Username:            entity.UsernameFromTrusted("Ann_99"),
		Password:            entity.PasswordFromHash("hash"),
		ProfileType:         entity.ProfileTypeAdmin,
		Status:              entity.AccountStatusActive,
		IsTemporaryPassword: true,

		EmailConfirmationToken:     "confirm-token",
		EmailConfirmationExpiresAt: confirmedAt.Add(48 * time.Hour),
		EmailConfirmedAt:           &confirmedAt,

		PasswordResetToken:     "reset-token",
		PasswordResetExpiresAt: confirmedAt.Add(5 * time.Minute),

		PendingEmail:      entity.EmailAddressFromCanonical("new@example.com"),
		PendingEmailToken: "pending-token",
	}

	restored := toAccountDomain(fromAccountDomain(original))

	require.NotNil(t, restored)
	assert.Equal(t, original, restored)
}

func TestAccountMapper_ZeroTimesMapToNull(t *testing.T) {
	account := &entity.Account{
		Email:    entity.EmailAddressFromCanonical("ann@example.com"),
		Username: entity.UsernameFromTrusted("ann_99"),
		Password: entity.PasswordFromHash("hash"),
		Status:   entity.AccountStatusPending,
	}

	accountM := fromAccountDomain(account)

	assert.Nil(t, accountM.EmailConfirmationExpiresAt)
	assert.Nil(t, accountM.PasswordResetExpiresAt)
	assert.True(t, toAccountDomain(accountM).EmailConfirmationExpiresAt.IsZero())
}

func TestTranslateAccountWriteError(t *testing.T) {
	t.Run("duplicate key stays field-neutral", func(t *testing.T) {
		err := translateAccountWriteError(gorm.ErrDuplicatedKey, "failed to create account")

		// Either the email or the username_key index may have tripped, so
		// neither field-specific conflict error would be safe to report.
		assert.True(t, errors.Is(err, domainerrors.ErrAccountIdentityConflict))
		assert.False(t, errors.Is(err, domainerrors.ErrEmailAlreadyExists))
		assert.False(t, errors.Is(err, domainerrors.ErrUsernameAlreadyExists))
	})

	t.Run("not-null violation", func(t *testing.T) {
		err := translateAccountWriteError(errors.New(`null value in column "name" violates not-null constraint`), "failed to create account")

		assert.True(t, errors.Is(err, domainerrors.ErrOperationFailed))
	})

	t.Run("other errors become database errors", func(t *testing.T) {
		err := translateAccountWriteError(errors.New("connection reset"), "failed to create account")

		var appErr domainerrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "DATABASE_EXECUTE_FAILED", appErr.ErrorCode())
	})
}
