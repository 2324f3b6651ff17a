package handler

import (
	"log/slog"
	"net/http"

	"gamestore/internal/delivery/http/response"
	"gamestore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// GameHandler holds dependencies for catalog handlers.
type GameHandler struct {
	uc     usecase.GameUsecase
	logger *slog.Logger
}

// NewGameHandler is the constructor for GameHandler, injected by Fx.
func NewGameHandler(uc usecase.GameUsecase, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the catalog entry creation request.
func (h *GameHandler) Create(c echo.Context) error {
	input := new(usecase.GameInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid game input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateGame(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Game created")
}

// Get handles the single catalog entry lookup request.
func (h *GameHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid game ID")
	}

	output, err := h.uc.GetGame(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// List handles the catalog listing request.
func (h *GameHandler) List(c echo.Context) error {
	outputs, err := h.uc.ListGames(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outputs, "")
}

// Update handles the catalog entry update request.
func (h *GameHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid game ID")
	}

	input := new(usecase.GameInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid game input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateGame(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Game updated")
}

// Delete handles the catalog entry deletion request.
func (h *GameHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid game ID")
	}

	if err := h.uc.DeleteGame(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Game deleted")
}
