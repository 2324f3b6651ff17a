package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"gamestore/config"
	"gamestore/internal/domain/entity"
	"gamestore/internal/domain/repository"
	"gamestore/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:      12,
			TokenTTLMinutes: 60,
		},
		Mail: &config.MailConfig{
			Domain:      "mg.example.com",
			APIKey:      "key-test",
			Sender:      "no-reply@mg.example.com",
			LinkBaseURL: "https://store.example.com",
		},
	}
	cfg.SecretKey.Session = "test-secret"

	return cfg
}

// fakeHasher is a deterministic stand-in for the bcrypt hasher so tests can
// assert on stored hashes without paying the bcrypt cost.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// stubTxManager runs the callback directly against a fixed repository
// factory, standing in for a real database transaction.
type stubTxManager struct {
	factory *stubRepoFactory
}

func (m *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type stubRepoFactory struct {
	accountRepo repository.AccountRepository
	gameRepo    repository.GameRepository
}

func (f *stubRepoFactory) AccountRepo() repository.AccountRepository { return f.accountRepo }
func (f *stubRepoFactory) GameRepo() repository.GameRepository       { return f.gameRepo }

// mockAccountRepository is a hand-written testify double for AccountRepository.
type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAccountRepository) FindByEmail(ctx context.Context, email entity.EmailAddress) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAccountRepository) FindByUsername(ctx context.Context, username entity.Username) (*entity.Account, error) {
	args := m.Called(ctx, username)
	if account, ok := args.Get(0).(*entity.Account); ok {
		return account, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAccountRepository) ExistsByEmail(ctx context.Context, email entity.EmailAddress) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepository) ExistsByUsername(ctx context.Context, username entity.Username) (bool, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	args := m.Called(ctx)
	if accounts, ok := args.Get(0).([]*entity.Account); ok {
		return accounts, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *mockAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	args := m.Called(ctx, account)

	return args.Error(0)
}

func (m *mockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// mockGameRepository is a hand-written testify double for GameRepository.
type mockGameRepository struct {
	mock.Mock
}

func (m *mockGameRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	args := m.Called(ctx, id)
	if game, ok := args.Get(0).(*entity.Game); ok {
		return game, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockGameRepository) FindByTitle(ctx context.Context, title string) (*entity.Game, error) {
	args := m.Called(ctx, title)
	if game, ok := args.Get(0).(*entity.Game); ok {
		return game, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockGameRepository) List(ctx context.Context) ([]*entity.Game, error) {
	args := m.Called(ctx)
	if games, ok := args.Get(0).([]*entity.Game); ok {
		return games, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockGameRepository) Create(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)

	return args.Error(0)
}

func (m *mockGameRepository) Update(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)

	return args.Error(0)
}

func (m *mockGameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// mockTokenIssuer is a hand-written testify double for TokenIssuer.
type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) Issue(account service.AccountTokenData) (string, error) {
	args := m.Called(account)

	return args.String(0), args.Error(1)
}

func (m *mockTokenIssuer) Validate(tokenString string) (*service.SessionClaims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.SessionClaims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

// mockNotifier is a hand-written testify double for NotificationGateway.
type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendConfirmation(ctx context.Context, email, name, link string) error {
	args := m.Called(ctx, email, name, link)

	return args.Error(0)
}

func (m *mockNotifier) SendPasswordReset(ctx context.Context, email, name, link string) error {
	args := m.Called(ctx, email, name, link)

	return args.Error(0)
}

func (m *mockNotifier) SendEmailChangeConfirmation(ctx context.Context, email, name, newEmail, link string) error {
	args := m.Called(ctx, email, name, newEmail, link)

	return args.Error(0)
}

func (m *mockNotifier) SendTemporaryPassword(ctx context.Context, email, name, temporaryPassword, link string) error {
	args := m.Called(ctx, email, name, temporaryPassword, link)

	return args.Error(0)
}

func linkContains(fragment string) any {
	return mock.MatchedBy(func(link string) bool {
		return strings.Contains(link, fragment)
	})
}
