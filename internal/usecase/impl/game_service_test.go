package impl

import (
	"context"
	"testing"
	"time"

	"gamestore/internal/domain/entity"
	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/repository"
	"gamestore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type gameServiceFixtures struct {
	service  usecase.GameUsecase
	gameRepo *mockGameRepository
}

func createTestGameService(t *testing.T) gameServiceFixtures {
	t.Helper()

	gameRepo := new(mockGameRepository)

	service := NewGameService(GameServiceParams{
		TxManager: &stubTxManager{factory: &stubRepoFactory{gameRepo: gameRepo}},
		GameRepo:  gameRepo,
		Logger:    newDiscardLogger(),
	})

	return gameServiceFixtures{
		service:  service,
		gameRepo: gameRepo,
	}
}

func newCatalogGame(t *testing.T, title string) *entity.Game {
	t.Helper()

	game, err := entity.NewGame(title, "RPG", "An open world adventure.", 59.99, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Now())
	require.NoError(t, err)
	game.ID = uuid.New()

	return game
}

func TestGameService_CreateGame_Success(t *testing.T) {
	fx := createTestGameService(t)
	ctx := context.Background()

	fx.gameRepo.On("FindByTitle", ctx, "Starfield Racer").Return(nil, repository.ErrGameNotFound)
	fx.gameRepo.On("Create", ctx, mock.AnythingOfType("*entity.Game")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entity.Game).ID = uuid.New()
		}).
		Return(nil)

	output, err := fx.service.CreateGame(ctx, &usecase.GameInput{
		Title:       "  Starfield Racer  ",
		Genre:       "Racing",
		Description: "Zero-gravity racing.",
		Price:       29.99,
		ReleaseDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, output.GameID)
	assert.Equal(t, "Starfield Racer", output.Title)
	assert.Equal(t, 29.99, output.Price)
}

func TestGameService_CreateGame_AccumulatesValidationErrors(t *testing.T) {
	fx := createTestGameService(t)

	_, err := fx.service.CreateGame(context.Background(), &usecase.GameInput{
		Title: "   ",
		Price: -1,
	})

	require.Error(t, err)

	var validationErr *domainerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
	fields := validationErr.Fields()
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "price")
}

func TestGameService_CreateGame_TitleConflict(t *testing.T) {
	fx := createTestGameService(t)
	ctx := context.Background()

	existing := newCatalogGame(t, "Starfield Racer")
	fx.gameRepo.On("FindByTitle", ctx, "Starfield Racer").Return(existing, nil)

	_, err := fx.service.CreateGame(ctx, &usecase.GameInput{
		Title: "Starfield Racer",
		Price: 29.99,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrGameTitleAlreadyExists))
	fx.gameRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGameService_GetGame_NotFound(t *testing.T) {
	fx := createTestGameService(t)
	ctx := context.Background()

	id := uuid.New()
	fx.gameRepo.On("FindByID", ctx, id).Return(nil, repository.ErrGameNotFound)

	_, err := fx.service.GetGame(ctx, id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrGameNotFound))
}

func TestGameService_ListGames(t *testing.T) {
	fx := createTestGameService(t)
	ctx := context.Background()

	games := []*entity.Game{newCatalogGame(t, "Starfield Racer"), newCatalogGame(t, "Dungeon Depths")}
	fx.gameRepo.On("List", ctx).Return(games, nil)

	outputs, err := fx.service.ListGames(ctx)

	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Equal(t, "Starfield Racer", outputs[0].Title)
	assert.Equal(t, "Dungeon Depths", outputs[1].Title)
}

func TestGameService_UpdateGame_ChangedTitleIsChecked(t *testing.T) {
	fx := createTestGameService(t)
	ctx := context.Background()

	game := newCatalogGame(t, "Starfield Racer")
	fx.gameRepo.On("FindByID", ctx, game.ID).Return(game, nil)
	fx.gameRepo.On("FindByTitle", ctx, "Dungeon Depths").Return(nil, repository.ErrGameNotFound)
	fx.gameRepo.On("Update", ctx, game).Return(nil)

	output, err := fx.service.UpdateGame(ctx, game.ID, &usecase.GameInput{
		Title: "Dungeon Depths",
		Price: 39.99,
	})

	require.NoError(t, err)
	assert.Equal(t, "Dungeon Depths", output.Title)
	assert.Equal(t, 39.99, output.Price)
}

func TestGameService_UpdateGame_SameTitleSkipsCheck(t *testing.T) {
	fx := createTestGameService(t)
	ctx := context.Background()

	game := newCatalogGame(t, "Starfield Racer")
	fx.gameRepo.On("FindByID", ctx, game.ID).Return(game, nil)
	fx.gameRepo.On("Update", ctx, game).Return(nil)

	_, err := fx.service.UpdateGame(ctx, game.ID, &usecase.GameInput{
		Title: "STARFIELD RACER",
		Price: game.Price,
	})

	require.NoError(t, err)
	fx.gameRepo.AssertNotCalled(t, "FindByTitle", mock.Anything, mock.Anything)
}

func TestGameService_UpdateGame_TitleConflict(t *testing.T) {
	fx := createTestGameService(t)
	ctx := context.Background()

	game := newCatalogGame(t, "Starfield Racer")
	other := newCatalogGame(t, "Dungeon Depths")
	fx.gameRepo.On("FindByID", ctx, game.ID).Return(game, nil)
	fx.gameRepo.On("FindByTitle", ctx, "Dungeon Depths").Return(other, nil)

	_, err := fx.service.UpdateGame(ctx, game.ID, &usecase.GameInput{
		Title: "Dungeon Depths",
		Price: game.Price,
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrGameTitleAlreadyExists))
	assert.Equal(t, "Starfield Racer", game.Title)
}

func TestGameService_DeleteGame_NotFound(t *testing.T) {
	fx := createTestGameService(t)
	ctx := context.Background()

	id := uuid.New()
	fx.gameRepo.On("Delete", ctx, id).Return(repository.ErrGameNotFound)

	err := fx.service.DeleteGame(ctx, id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrGameNotFound))
}
