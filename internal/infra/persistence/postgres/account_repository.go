package postgres

import (
	"context"
	"time"

	"gamestore/internal/domain/entity"
	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/repository"
	"gamestore/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository. It returns
// the repository as a repository.AccountRepository interface, adhering to
// dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by canonical email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email entity.EmailAddress) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email.String()).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// FindByUsername retrieves a single account by username, case-insensitively.
func (repo *accountRepository) FindByUsername(ctx context.Context, username entity.Username) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("username_key = ?", username.Normalized()).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by username")
	}

	return toAccountDomain(&accountM), nil
}

// ExistsByEmail reports whether an account owns the canonical email.
func (repo *accountRepository) ExistsByEmail(ctx context.Context, email entity.EmailAddress) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.AccountModel{}).Where("email = ?", email.String()).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count accounts by email")
	}

	return count > 0, nil
}

// ExistsByUsername reports whether an account owns the username,
// case-insensitively.
func (repo *accountRepository) ExistsByUsername(ctx context.Context, username entity.Username) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.AccountModel{}).Where("username_key = ?", username.Normalized()).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to count accounts by username")
	}

	return count > 0, nil
}

// List returns all accounts, newest first.
func (repo *accountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	var accountMs []model.AccountModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&accountMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountMs))
	for i := range accountMs {
		accounts = append(accounts, toAccountDomain(&accountMs[i]))
	}

	return accounts, nil
}

// Create persists a new account entity. Constraint violations surface as
// domain errors; the raw driver error never reaches the caller.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		return translateAccountWriteError(err, "failed to create account")
	}

	// Adopt the generated ID and timestamps.
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update modifies an existing account entity.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Save(accountM).Error; err != nil {
		return translateAccountWriteError(err, "failed to update account")
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Delete removes an account by ID.
func (repo *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AccountModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// translateAccountWriteError converts driver failures on account writes into
// domain errors. The translated duplicate-key error no longer names the
// constraint, and either the email or the username_key index may have
// tripped, so the conflict stays field-neutral; the transactional existence
// checks report the precise field in the common case.
func translateAccountWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrAccountIdentityConflict.WrapMessage("account identity already exists")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrOperationFailed.WrapMessage("missing required account information")
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models. The
// model stores canonical forms, so rehydration uses the trusted constructors.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:                  data.ID,
		Name:                data.Name,
		Email:               entity.EmailAddressFromCanonical(data.Email),
		Username:            entity.UsernameFromTrusted(data.Username),
		Password:            entity.PasswordFromHash(data.PasswordHash),
		ProfileType:         entity.ProfileType(data.ProfileType),
		Status:              entity.AccountStatus(data.Status),
		IsTemporaryPassword: data.IsTemporaryPassword,

		EmailConfirmationToken:     data.EmailConfirmationToken,
		EmailConfirmationExpiresAt: fromTimePtr(data.EmailConfirmationExpiresAt),
		EmailConfirmedAt:           data.EmailConfirmedAt,

		PasswordResetToken:     data.PasswordResetToken,
		PasswordResetExpiresAt: fromTimePtr(data.PasswordResetExpiresAt),

		PendingEmail:      entity.EmailAddressFromCanonical(data.PendingEmail),
		PendingEmailToken: data.PendingEmailToken,

		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel for persistence.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:                  data.ID,
		Name:                data.Name,
		Email:               data.Email.String(),
		Username:            data.Username.String(),
		UsernameKey:         data.Username.Normalized(),
		PasswordHash:        data.Password.Hash(),
		ProfileType:         data.ProfileType.String(),
		Status:              data.Status.String(),
		IsTemporaryPassword: data.IsTemporaryPassword,

		EmailConfirmationToken:     data.EmailConfirmationToken,
		EmailConfirmationExpiresAt: toTimePtr(data.EmailConfirmationExpiresAt),
		EmailConfirmedAt:           data.EmailConfirmedAt,

		PasswordResetToken:     data.PasswordResetToken,
		PasswordResetExpiresAt: toTimePtr(data.PasswordResetExpiresAt),

		PendingEmail:      data.PendingEmail.String(),
		PendingEmailToken: data.PendingEmailToken,

		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toTimePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}

func fromTimePtr(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}

	return *t
}
