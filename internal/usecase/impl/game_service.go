package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "gamestore/internal/delivery/context"
	"gamestore/internal/domain/entity"
	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/repository"
	"gamestore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// gameService implements the GameUsecase interface for the catalog.
type gameService struct {
	txManager repository.TransactionManager
	gameRepo  repository.GameRepository
	logger    *slog.Logger
	now       func() time.Time
}

// GameServiceParams holds dependencies for gameService, injected by Fx.
type GameServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	GameRepo  repository.GameRepository
	Logger    *slog.Logger
}

// NewGameService is the constructor for gameService.
func NewGameService(params GameServiceParams) usecase.GameUsecase {
	return &gameService{
		txManager: params.TxManager,
		gameRepo:  params.GameRepo,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *gameService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateGame adds a new catalog entry. Titles are unique case-insensitively.
func (srv *gameService) CreateGame(ctx context.Context, input *usecase.GameInput) (*usecase.GameOutput, error) {
	srv.log(ctx).Info("Creating game", slog.String("title", input.Title))

	game, err := entity.NewGame(input.Title, input.Genre, input.Description, input.Price, input.ReleaseDate, srv.now())
	if err != nil {
		srv.log(ctx).Warn("Game validation failed", slog.String("title", input.Title), slog.Any("error", err))

		return nil, err
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		gameRepo := repoFactory.GameRepo()

		if err := ensureTitleAvailable(ctx, gameRepo, game.Title, uuid.Nil); err != nil {
			return err
		}

		if err := gameRepo.Create(ctx, game); err != nil {
			return errors.Wrap(err, "failed to create game")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute game creation transaction", slog.String("title", input.Title), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute game creation transaction")
	}

	srv.log(ctx).Debug("Game created", slog.Any("gameID", game.ID))

	return toGameOutput(game), nil
}

// GetGame retrieves a single catalog entry by ID.
func (srv *gameService) GetGame(ctx context.Context, id uuid.UUID) (*usecase.GameOutput, error) {
	game, err := srv.gameRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, domainerrors.ErrGameNotFound.WrapMessage("game not found")
		}
		srv.log(ctx).Error("Failed to load game", slog.Any("gameID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load game")
	}

	return toGameOutput(game), nil
}

// ListGames returns the whole catalog, newest first.
func (srv *gameService) ListGames(ctx context.Context) ([]*usecase.GameOutput, error) {
	games, err := srv.gameRepo.List(ctx)
	if err != nil {
		srv.log(ctx).Error("Failed to list games", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list games")
	}

	outputs := make([]*usecase.GameOutput, 0, len(games))
	for _, game := range games {
		outputs = append(outputs, toGameOutput(game))
	}

	return outputs, nil
}

// UpdateGame replaces the catalog entry fields. A changed title is re-checked
// for uniqueness.
func (srv *gameService) UpdateGame(ctx context.Context, id uuid.UUID, input *usecase.GameInput) (*usecase.GameOutput, error) {
	srv.log(ctx).Info("Updating game", slog.Any("gameID", id))

	var updated *entity.Game
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		gameRepo := repoFactory.GameRepo()

		game, err := gameRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrGameNotFound) {
				return domainerrors.ErrGameNotFound.WrapMessage("game to update not found")
			}

			return errors.Wrap(err, "failed to load game for update")
		}

		if !strings.EqualFold(input.Title, game.Title) {
			if err := ensureTitleAvailable(ctx, gameRepo, input.Title, game.ID); err != nil {
				return err
			}
		}

		if err := game.Update(input.Title, input.Genre, input.Description, input.Price, input.ReleaseDate); err != nil {
			return err
		}

		if err := gameRepo.Update(ctx, game); err != nil {
			return errors.Wrap(err, "failed to persist game update")
		}
		updated = game

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Game update failed", slog.Any("gameID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute game update transaction")
	}

	srv.log(ctx).Debug("Game updated", slog.Any("gameID", id))

	return toGameOutput(updated), nil
}

// DeleteGame removes a catalog entry permanently.
func (srv *gameService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting game", slog.Any("gameID", id))

	if err := srv.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return domainerrors.ErrGameNotFound.WrapMessage("game to delete not found")
		}
		srv.log(ctx).Error("Failed to delete game", slog.Any("gameID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete game")
	}

	return nil
}

// ensureTitleAvailable reports a conflict when another game already owns the
// title. The excludeID lets updates keep their own title.
func ensureTitleAvailable(ctx context.Context, gameRepo repository.GameRepository, title string, excludeID uuid.UUID) error {
	existing, err := gameRepo.FindByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to check title availability")
	}

	if existing.ID != excludeID {
		return domainerrors.ErrGameTitleAlreadyExists.WrapMessage("game title already taken")
	}

	return nil
}

func toGameOutput(game *entity.Game) *usecase.GameOutput {
	return &usecase.GameOutput{
		GameID:      game.ID,
		Title:       game.Title,
		Genre:       game.Genre,
		Description: game.Description,
		Price:       game.Price,
		ReleaseDate: game.ReleaseDate,
		CreatedAt:   game.CreatedAt,
		UpdatedAt:   game.UpdatedAt,
	}
}
