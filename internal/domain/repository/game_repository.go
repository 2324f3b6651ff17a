package repository

import (
	"context"
	"errors"

	"gamestore/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrGameNotFound is returned when no game matches the lookup key.
var ErrGameNotFound = errors.New("game not found")

// GameRepository defines the standard operations for catalog persistence.
type GameRepository interface {
	// FindByID retrieves a single game by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error)

	// FindByTitle retrieves a single game by exact title.
	FindByTitle(ctx context.Context, title string) (*entity.Game, error)

	// List returns all games, newest first.
	List(ctx context.Context) ([]*entity.Game, error)

	// Create persists a new game.
	Create(ctx context.Context, game *entity.Game) error

	// Update modifies an existing game.
	Update(ctx context.Context, game *entity.Game) error

	// Delete removes a game by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
