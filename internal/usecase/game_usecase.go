package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GameInput defines the fields for creating or updating a catalog entry.
type GameInput struct {
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ReleaseDate time.Time `json:"releaseDate"`
}

// GameOutput is the catalog entry snapshot returned by game queries.
type GameOutput struct {
	GameID      uuid.UUID `json:"gameId"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ReleaseDate time.Time `json:"releaseDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GameUsecase defines the catalog CRUD operations.
type GameUsecase interface {
	CreateGame(ctx context.Context, input *GameInput) (*GameOutput, error)
	GetGame(ctx context.Context, id uuid.UUID) (*GameOutput, error)
	ListGames(ctx context.Context) ([]*GameOutput, error)
	UpdateGame(ctx context.Context, id uuid.UUID, input *GameInput) (*GameOutput, error)
	DeleteGame(ctx context.Context, id uuid.UUID) error
}
