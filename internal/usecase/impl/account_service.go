package impl

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"gamestore/config"
	deliverycontext "gamestore/internal/delivery/context"
	"gamestore/internal/domain/entity"
	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/repository"
	"gamestore/internal/domain/service"
	"gamestore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface for administrative
// account management.
type accountService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	notifier    service.NotificationGateway
	linkBaseURL string
	logger      *slog.Logger
	now         func() time.Time
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Notifier    service.NotificationGateway
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	linkBaseURL := ""
	if params.Config != nil && params.Config.Mail != nil {
		linkBaseURL = strings.TrimRight(params.Config.Mail.LinkBaseURL, "/")
	}

	return &accountService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		notifier:    params.Notifier,
		linkBaseURL: linkBaseURL,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateAccount creates an account on behalf of an administrator. The
// password is system-generated and temporary; the new user receives it by
// mail together with a reset link, and must change it before logging in.
func (srv *accountService) CreateAccount(ctx context.Context, input *usecase.CreateAccountInput) (*usecase.AccountOutput, error) {
	srv.log(ctx).Info("Admin creating account", slog.String("email", input.Email), slog.String("username", input.Username))

	profileType := entity.ProfileType(input.ProfileType)
	if input.ProfileType == "" {
		profileType = entity.ProfileTypeCommonUser
	}

	temporaryPassword, err := generateTemporaryPassword()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate temporary password")
	}

	account, err := entity.NewAdminCreatedAccount(input.Name, input.Email, input.Username, profileType, temporaryPassword, srv.hasher, srv.now())
	if err != nil {
		srv.log(ctx).Warn("Admin account validation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if err := checkIdentityAvailable(ctx, accountRepo, account.Email, account.Username); err != nil {
			return err
		}

		if err := accountRepo.Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create admin-assigned account")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute admin account creation transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute admin account creation transaction")
	}

	// The temporary password only exists in this mail; losing it would leave
	// the new user locked out, so a delivery failure is fatal.
	link := srv.temporaryPasswordLink(account)
	if err := srv.notifier.SendTemporaryPassword(ctx, account.Email.String(), account.Name, temporaryPassword, link); err != nil {
		srv.log(ctx).Error("Failed to send temporary password email", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, domainerrors.ErrNotificationFailed.WrapMessage("failed to send temporary password email")
	}

	srv.log(ctx).Debug("Admin account created", slog.Any("accountID", account.ID))

	return toAccountOutput(account), nil
}

// GetAccount retrieves a single account by ID.
func (srv *accountService) GetAccount(ctx context.Context, id uuid.UUID) (*usecase.AccountOutput, error) {
	account, err := srv.loadAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	return toAccountOutput(account), nil
}

// ListAccounts returns all accounts, newest first.
func (srv *accountService) ListAccounts(ctx context.Context) ([]*usecase.AccountOutput, error) {
	accounts, err := srv.accountRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list accounts", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list accounts")
	}

	outputs := make([]*usecase.AccountOutput, 0, len(accounts))
	for _, account := range accounts {
		outputs = append(outputs, toAccountOutput(account))
	}

	return outputs, nil
}

// UpdateAccount changes the display name and/or username. A new username is
// checked for availability before it is taken.
func (srv *accountService) UpdateAccount(ctx context.Context, input *usecase.UpdateAccountInput) (*usecase.AccountOutput, error) {
	srv.log(ctx).Info("Updating account profile", slog.Any("accountID", input.AccountID))

	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account to update not found")
			}

			return errors.Wrap(err, "failed to load account for update")
		}

		if trimmed := strings.TrimSpace(input.Username); trimmed != "" && !strings.EqualFold(trimmed, account.Username.String()) {
			username, err := entity.NewUsername(trimmed)
			if err != nil {
				return domainerrors.ErrInvalidUsername.WrapMessage("new username is not valid")
			}

			taken, err := accountRepo.ExistsByUsername(ctx, username)
			if err != nil {
				return errors.Wrap(err, "failed to check username availability")
			}
			if taken {
				return domainerrors.ErrUsernameAlreadyExists.WrapMessage("new username already taken")
			}
		}

		if err := account.UpdateProfile(input.Name, input.Username); err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist account update")
		}
		updated = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account update failed", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account update transaction")
	}

	srv.log(ctx).Debug("Account updated", slog.Any("accountID", input.AccountID))

	return toAccountOutput(updated), nil
}

// DeleteAccount removes an account permanently.
func (srv *accountService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting account", slog.Any("accountID", id))

	if err := srv.accountRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound.WrapMessage("account to delete not found")
		}
		srv.log(ctx).Error("Failed to delete account", slog.Any("accountID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete account")
	}

	return nil
}

// BlockAccount transitions an active account to blocked.
func (srv *accountService) BlockAccount(ctx context.Context, id uuid.UUID) error {
	return srv.transition(ctx, id, "block", func(account *entity.Account) error {
		return account.Block()
	})
}

// UnblockAccount transitions a blocked account back to active.
func (srv *accountService) UnblockAccount(ctx context.Context, id uuid.UUID) error {
	return srv.transition(ctx, id, "unblock", func(account *entity.Account) error {
		return account.Unblock()
	})
}

// BanAccount transitions the account to banned from any state.
func (srv *accountService) BanAccount(ctx context.Context, id uuid.UUID) error {
	return srv.transition(ctx, id, "ban", func(account *entity.Account) error {
		return account.Ban()
	})
}

// transition loads the account, applies one state-machine mutation and
// persists the result in a single transaction.
func (srv *accountService) transition(ctx context.Context, id uuid.UUID, name string, mutate func(*entity.Account) error) error {
	srv.log(ctx).Info("Applying account status transition", slog.Any("accountID", id), slog.String("transition", name))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account for status transition not found")
			}

			return errors.Wrap(err, "failed to load account for status transition")
		}

		if err := mutate(account); err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist status transition")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account status transition failed", slog.Any("accountID", id), slog.String("transition", name), slog.Any("error", err))

		return errors.Wrapf(err, "failed to execute %s transaction", name)
	}

	srv.log(ctx).Debug("Account status transition applied", slog.Any("accountID", id), slog.String("transition", name))

	return nil
}

func (srv *accountService) loadAccount(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("account not found")
		}
		srv.log(ctx).Error("Failed to load account", slog.Any("accountID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load account")
	}

	return account, nil
}

func (srv *accountService) temporaryPasswordLink(account *entity.Account) string {
	return srv.linkBaseURL + "/auth/reset-password?accountId=" + account.ID.String() + "&token=" + account.PasswordResetToken
}

func toAccountOutput(account *entity.Account) *usecase.AccountOutput {
	return &usecase.AccountOutput{
		AccountID:           account.ID,
		Name:                account.Name,
		Email:               account.Email.String(),
		Username:            account.Username.String(),
		ProfileType:         account.ProfileType.String(),
		AccountStatus:       account.Status.String(),
		IsTemporaryPassword: account.IsTemporaryPassword,
		EmailConfirmedAt:    account.EmailConfirmedAt,
		CreatedAt:           account.CreatedAt,
		UpdatedAt:           account.UpdatedAt,
	}
}

const (
	tempPasswordLength  = 16
	tempPasswordUpper   = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	tempPasswordLower   = "abcdefghijkmnpqrstuvwxyz"
	tempPasswordDigits  = "23456789"
	tempPasswordSymbols = "!@#$%&*+-_"
)

// generateTemporaryPassword builds a random password that satisfies the
// strength policy by construction: one character from every required class,
// padded with random picks from the full alphabet, then shuffled.
func generateTemporaryPassword() (string, error) {
	full := tempPasswordUpper + tempPasswordLower + tempPasswordDigits + tempPasswordSymbols

	chars := make([]byte, 0, tempPasswordLength)
	for _, class := range []string{tempPasswordUpper, tempPasswordLower, tempPasswordDigits, tempPasswordSymbols} {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	for len(chars) < tempPasswordLength {
		c, err := randomChar(full)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	for i := len(chars) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}

	return string(chars), nil
}

func randomChar(alphabet string) (byte, error) {
	idx, err := randomIndex(len(alphabet))
	if err != nil {
		return 0, err
	}

	return alphabet[idx], nil
}

func randomIndex(n int) (int, error) {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "failed to read random index")
	}

	return int(idx.Int64()), nil
}
