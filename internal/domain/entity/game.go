package entity

import (
	"strings"
	"time"

	domainerrors "gamestore/internal/domain/errors"

	"github.com/google/uuid"
)

// Game is a catalog entry. It carries no lifecycle rules beyond basic field
// validation; the catalog is plain CRUD.
type Game struct {
	ID          uuid.UUID
	Title       string
	Genre       string
	Description string
	Price       float64
	ReleaseDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewGame validates and builds a catalog entry.
func NewGame(title, genre, description string, price float64, releaseDate time.Time, now time.Time) (*Game, error) {
	validation := domainerrors.NewValidationError()

	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		validation.Add("title", "title_required")
	}

	if price < 0 {
		validation.Add("price", "price_negative")
	}

	if validation.HasErrors() {
		return nil, validation
	}

	return &Game{
		Title:       trimmedTitle,
		Genre:       strings.TrimSpace(genre),
		Description: strings.TrimSpace(description),
		Price:       price,
		ReleaseDate: releaseDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update applies new field values. Empty title keeps the current one;
// a negative price is rejected.
func (g *Game) Update(title, genre, description string, price float64, releaseDate time.Time) error {
	if price < 0 {
		return domainerrors.NewValidationError().Add("price", "price_negative")
	}

	if trimmed := strings.TrimSpace(title); trimmed != "" {
		g.Title = trimmed
	}
	if trimmed := strings.TrimSpace(genre); trimmed != "" {
		g.Genre = trimmed
	}
	if trimmed := strings.TrimSpace(description); trimmed != "" {
		g.Description = trimmed
	}
	if !releaseDate.IsZero() {
		g.ReleaseDate = releaseDate
	}

	g.UpdatedAt = time.Now()

	return nil
}
