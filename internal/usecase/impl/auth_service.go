// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gamestore/config"
	deliverycontext "gamestore/internal/delivery/context"
	"gamestore/internal/domain/entity"
	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/repository"
	"gamestore/internal/domain/service"
	"gamestore/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	tokenIssuer service.TokenIssuer
	notifier    service.NotificationGateway
	linkBaseURL string
	logger      *slog.Logger
	now         func() time.Time
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	TokenIssuer service.TokenIssuer
	Notifier    service.NotificationGateway
	Config      *config.Config
	Logger      *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all
// dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	linkBaseURL := ""
	if params.Config != nil && params.Config.Mail != nil {
		linkBaseURL = strings.TrimRight(params.Config.Mail.LinkBaseURL, "/")
	}

	return &authService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		tokenIssuer: params.TokenIssuer,
		notifier:    params.Notifier,
		linkBaseURL: linkBaseURL,
		logger:      params.Logger,
		now:         time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new pending account and emails the confirmation link.
// Field validation failures are accumulated, so one response reports every
// broken field. A mail delivery failure does not abort the registration; the
// user can request a new confirmation mail later.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email), slog.String("username", input.Username))

	account, err := entity.NewAccount(input.Name, input.Email, input.Username, input.Password, srv.hasher, srv.now())
	if err != nil {
		srv.log(ctx).Warn("Registration validation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if err := checkIdentityAvailable(ctx, accountRepo, account.Email, account.Username); err != nil {
			return err
		}

		if err := accountRepo.Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	// Send the confirmation mail outside the transaction. A failure here is
	// logged but does not fail the registration; the account already exists
	// and a fresh token can be issued on demand.
	link := srv.confirmationLink(account)
	if err := srv.notifier.SendConfirmation(ctx, account.Email.String(), account.Name, link); err != nil {
		srv.log(ctx).Error("Failed to send confirmation email", slog.Any("accountID", account.ID), slog.Any("error", err))
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("accountID", account.ID))

	return &usecase.RegisterOutput{AccountID: account.ID}, nil
}

// checkIdentityAvailable reports a per-field conflict for email and username.
// The unique indexes stay authoritative under concurrent registration; these
// checks exist to give the caller a precise error.
func checkIdentityAvailable(ctx context.Context, accountRepo repository.AccountRepository, email entity.EmailAddress, username entity.Username) error {
	emailTaken, err := accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return errors.Wrap(err, "failed to check email availability")
	}
	if emailTaken {
		return domainerrors.ErrEmailAlreadyExists.WrapMessage("email already registered")
	}

	usernameTaken, err := accountRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return errors.Wrap(err, "failed to check username availability")
	}
	if usernameTaken {
		return domainerrors.ErrUsernameAlreadyExists.WrapMessage("username already taken")
	}

	return nil
}

// Login authenticates by email or username plus password and issues a signed
// session token. Unknown identifier and wrong password both collapse into the
// generic credentials error; status gating is specific because the caller has
// already proved password knowledge.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("identifier", input.Identifier))

	account, err := srv.findByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("identifier", input.Identifier), slog.Any("error", domainerrors.ErrInvalidCredentials))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !account.VerifyPassword(input.Password, srv.hasher) {
		srv.log(ctx).Warn("Login failed", slog.String("identifier", input.Identifier), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	if err := srv.ensureLoginAllowed(account); err != nil {
		srv.log(ctx).Warn("Login rejected by account status", slog.Any("accountID", account.ID), slog.String("status", account.Status.String()), slog.Any("error", err))

		return nil, err
	}

	token, err := srv.tokenIssuer.Issue(account.TokenData())
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return &usecase.LoginOutput{
		AccountID:     account.ID,
		Username:      account.Username.String(),
		Email:         account.Email.String(),
		Token:         token,
		ProfileType:   account.ProfileType.String(),
		AccountStatus: account.Status.String(),
	}, nil
}

// findByIdentifier resolves the login identifier as an email when it parses
// as one, otherwise as a username.
func (srv *authService) findByIdentifier(ctx context.Context, identifier string) (*entity.Account, error) {
	if strings.Contains(identifier, "@") {
		email, err := entity.NewEmailAddress(identifier)
		if err != nil {
			return nil, repository.ErrAccountNotFound
		}

		return srv.accountRepo.FindByEmail(ctx, email)
	}

	username, err := entity.NewUsername(identifier)
	if err != nil {
		return nil, repository.ErrAccountNotFound
	}

	return srv.accountRepo.FindByUsername(ctx, username)
}

func (srv *authService) ensureLoginAllowed(account *entity.Account) error {
	switch account.Status {
	case entity.AccountStatusPending:
		return domainerrors.ErrAccountPendingConfirmation.WrapMessage("login blocked by pending confirmation")
	case entity.AccountStatusBlocked:
		return domainerrors.ErrAccountBlocked.WrapMessage("login blocked by account status")
	case entity.AccountStatusBanned:
		return domainerrors.ErrAccountBanned.WrapMessage("login blocked by account status")
	case entity.AccountStatusActive:
		// Fall through to the temporary-password gate.
	default:
		return domainerrors.ErrInvalidStateTransition.WrapMessage("account is in an unknown status")
	}

	if account.IsTemporaryPassword {
		return domainerrors.ErrTemporaryPassword.WrapMessage("temporary password still active")
	}

	return nil
}

// ConfirmEmail consumes the confirmation token and activates the account.
func (srv *authService) ConfirmEmail(ctx context.Context, input *usecase.ConfirmEmailInput) error {
	srv.log(ctx).Info("Confirming email", slog.Any("accountID", input.AccountID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account for confirmation not found")
			}

			return errors.Wrap(err, "failed to load account for email confirmation")
		}

		if err := account.ConfirmEmail(input.Token, srv.now()); err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist email confirmation")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Email confirmation failed", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute email confirmation transaction")
	}

	srv.log(ctx).Debug("Email confirmed", slog.Any("accountID", input.AccountID))

	return nil
}

// RequestPasswordReset issues a short-lived reset token and emails the link.
// An unknown email succeeds silently so the endpoint cannot be used to probe
// which addresses are registered. The mail delivery IS fatal here: without
// the link the whole request accomplished nothing.
func (srv *authService) RequestPasswordReset(ctx context.Context, input *usecase.RequestPasswordResetInput) error {
	email, err := entity.NewEmailAddress(input.Email)
	if err != nil {
		return domainerrors.ErrInvalidEmail.WrapMessage("reset requested for malformed email")
	}

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Info("Password reset requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to load account for password reset")
	}

	var token string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		token, err = account.GeneratePasswordResetToken(srv.now())
		if err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist password reset token")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute password reset request transaction", slog.Any("accountID", account.ID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password reset request transaction")
	}

	link := srv.passwordResetLink(account, token)
	if err := srv.notifier.SendPasswordReset(ctx, account.Email.String(), account.Name, link); err != nil {
		srv.log(ctx).Error("Failed to send password reset email", slog.Any("accountID", account.ID), slog.Any("error", err))

		return domainerrors.ErrNotificationFailed.WrapMessage("failed to send password reset email")
	}

	srv.log(ctx).Debug("Password reset requested", slog.Any("accountID", account.ID))

	return nil
}

// ConfirmPasswordReset consumes the reset token and replaces the password.
func (srv *authService) ConfirmPasswordReset(ctx context.Context, input *usecase.ConfirmPasswordResetInput) error {
	srv.log(ctx).Info("Confirming password reset", slog.Any("accountID", input.AccountID))

	if input.NewPassword != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch.WrapMessage("password confirmation mismatch")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account for password reset not found")
			}

			return errors.Wrap(err, "failed to load account for password reset")
		}

		if err := account.ResetPassword(input.Token, input.NewPassword, srv.hasher, srv.now()); err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist password reset")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset confirmation failed", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password reset transaction")
	}

	srv.log(ctx).Debug("Password reset completed", slog.Any("accountID", input.AccountID))

	return nil
}

// RequestEmailChange stores the new address as pending and notifies the
// CURRENT address, so the existing owner can detect a hijack attempt. The
// primary email only changes once the token is confirmed.
func (srv *authService) RequestEmailChange(ctx context.Context, input *usecase.RequestEmailChangeInput) error {
	srv.log(ctx).Info("Requesting email change", slog.Any("accountID", input.AccountID))

	newEmail, err := entity.NewEmailAddress(input.NewEmail)
	if err != nil {
		return domainerrors.ErrInvalidEmail.WrapMessage("new email is not valid")
	}

	var account *entity.Account
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		taken, err := accountRepo.ExistsByEmail(ctx, newEmail)
		if err != nil {
			return errors.Wrap(err, "failed to check new email availability")
		}
		if taken {
			return domainerrors.ErrEmailAlreadyExists.WrapMessage("new email already registered")
		}

		account, err = accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account for email change not found")
			}

			return errors.Wrap(err, "failed to load account for email change")
		}

		if _, err := account.InitiateEmailChange(newEmail); err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist pending email change")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Email change request failed", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute email change request transaction")
	}

	link := srv.emailChangeLink(account)
	if err := srv.notifier.SendEmailChangeConfirmation(ctx, account.Email.String(), account.Name, newEmail.String(), link); err != nil {
		srv.log(ctx).Error("Failed to send email change confirmation", slog.Any("accountID", account.ID), slog.Any("error", err))

		return domainerrors.ErrNotificationFailed.WrapMessage("failed to send email change confirmation")
	}

	srv.log(ctx).Debug("Email change requested", slog.Any("accountID", account.ID))

	return nil
}

// ConfirmEmailChange consumes the pending-email token and promotes the
// pending address to the primary email. The availability of the new address
// is re-checked because another account may have claimed it in the meantime.
func (srv *authService) ConfirmEmailChange(ctx context.Context, input *usecase.ConfirmEmailChangeInput) error {
	srv.log(ctx).Info("Confirming email change", slog.Any("accountID", input.AccountID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account for email change not found")
			}

			return errors.Wrap(err, "failed to load account for email change confirmation")
		}

		if !account.PendingEmail.IsZero() {
			taken, err := accountRepo.ExistsByEmail(ctx, account.PendingEmail)
			if err != nil {
				return errors.Wrap(err, "failed to re-check pending email availability")
			}
			if taken {
				return domainerrors.ErrEmailAlreadyExists.WrapMessage("pending email was claimed by another account")
			}
		}

		if err := account.ConfirmEmailChange(input.Token); err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to persist email change")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Email change confirmation failed", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute email change confirmation transaction")
	}

	srv.log(ctx).Debug("Email change confirmed", slog.Any("accountID", input.AccountID))

	return nil
}

func (srv *authService) confirmationLink(account *entity.Account) string {
	return fmt.Sprintf("%s/auth/confirm-email?accountId=%s&token=%s", srv.linkBaseURL, account.ID, account.EmailConfirmationToken)
}

func (srv *authService) passwordResetLink(account *entity.Account, token string) string {
	return fmt.Sprintf("%s/auth/reset-password?accountId=%s&token=%s", srv.linkBaseURL, account.ID, token)
}

func (srv *authService) emailChangeLink(account *entity.Account) string {
	return fmt.Sprintf("%s/auth/confirm-email-change?accountId=%s&token=%s", srv.linkBaseURL, account.ID, account.PendingEmailToken)
}
