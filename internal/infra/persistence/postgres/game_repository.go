package postgres

import (
	"context"
	"strings"

	"gamestore/internal/domain/entity"
	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/repository"
	"gamestore/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gameRepository implements the repository.GameRepository interface using GORM.
type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository is the constructor for gameRepository.
func NewGameRepository(db *gorm.DB) repository.GameRepository {
	return &gameRepository{db: db}
}

// FindByID retrieves a single game by its unique ID.
func (repo *gameRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	var gameM model.GameModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&gameM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGameNotFound
		}

		return nil, errors.Wrap(err, "failed to find game by id")
	}

	return toGameDomain(&gameM), nil
}

// FindByTitle retrieves a single game by title, case-insensitively.
func (repo *gameRepository) FindByTitle(ctx context.Context, title string) (*entity.Game, error) {
	var gameM model.GameModel
	titleKey := strings.ToLower(strings.TrimSpace(title))
	if err := repo.db.WithContext(ctx).Where("title_key = ?", titleKey).First(&gameM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrGameNotFound
		}

		return nil, errors.Wrap(err, "failed to find game by title")
	}

	return toGameDomain(&gameM), nil
}

// List returns all games, newest first.
func (repo *gameRepository) List(ctx context.Context) ([]*entity.Game, error) {
	var gameMs []model.GameModel
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&gameMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list games")
	}

	games := make([]*entity.Game, 0, len(gameMs))
	for i := range gameMs {
		games = append(games, toGameDomain(&gameMs[i]))
	}

	return games, nil
}

// Create persists a new game entity.
func (repo *gameRepository) Create(ctx context.Context, game *entity.Game) error {
	gameM := fromGameDomain(game)

	if err := repo.db.WithContext(ctx).Create(gameM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrGameTitleAlreadyExists.WrapMessage("game title already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrOperationFailed.WrapMessage("missing required game information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create game")
	}

	game.ID = gameM.ID
	game.CreatedAt = gameM.CreatedAt
	game.UpdatedAt = gameM.UpdatedAt

	return nil
}

// Update modifies an existing game entity.
func (repo *gameRepository) Update(ctx context.Context, game *entity.Game) error {
	gameM := fromGameDomain(game)

	if err := repo.db.WithContext(ctx).Save(gameM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrGameTitleAlreadyExists.WrapMessage("game title already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update game")
	}

	game.UpdatedAt = gameM.UpdatedAt

	return nil
}

// Delete removes a game by ID.
func (repo *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GameModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete game")
	}
	if result.RowsAffected == 0 {
		return repository.ErrGameNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toGameDomain converts a GORM GameModel to a domain Game entity.
func toGameDomain(data *model.GameModel) *entity.Game {
	if data == nil {
		return nil
	}

	return &entity.Game{
		ID:          data.ID,
		Title:       data.Title,
		Genre:       data.Genre,
		Description: data.Description,
		Price:       data.Price,
		ReleaseDate: data.ReleaseDate,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromGameDomain converts a domain Game entity to a GORM GameModel for persistence.
func fromGameDomain(data *entity.Game) *model.GameModel {
	if data == nil {
		return nil
	}

	return &model.GameModel{
		ID:          data.ID,
		Title:       data.Title,
		TitleKey:    strings.ToLower(data.Title),
		Genre:       data.Genre,
		Description: data.Description,
		Price:       data.Price,
		ReleaseDate: data.ReleaseDate,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
