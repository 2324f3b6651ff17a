package handler

import (
	"context"
	"log/slog"
	"net/http"

	"gamestore/internal/delivery/http/response"
	"gamestore/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for administrative account handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the admin account creation request.
func (h *AccountHandler) Create(c echo.Context) error {
	input := new(usecase.CreateAccountInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateAccount(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Account created, temporary password sent")
}

// Get handles the single account lookup request.
func (h *AccountHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	output, err := h.uc.GetAccount(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "")
}

// List handles the account listing request.
func (h *AccountHandler) List(c echo.Context) error {
	outputs, err := h.uc.ListAccounts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, outputs, "")
}

// Update handles the profile update request.
func (h *AccountHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	input := new(usecase.UpdateAccountInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}
	input.AccountID = id

	output, err := h.uc.UpdateAccount(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Account updated")
}

// Delete handles the account deletion request.
func (h *AccountHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted")
}

// Block handles the block transition request.
func (h *AccountHandler) Block(c echo.Context) error {
	return h.transition(c, h.uc.BlockAccount, "Account blocked")
}

// Unblock handles the unblock transition request.
func (h *AccountHandler) Unblock(c echo.Context) error {
	return h.transition(c, h.uc.UnblockAccount, "Account unblocked")
}

// Ban handles the ban transition request.
func (h *AccountHandler) Ban(c echo.Context) error {
	return h.transition(c, h.uc.BanAccount, "Account banned")
}

func (h *AccountHandler) transition(c echo.Context, fn func(ctx context.Context, id uuid.UUID) error, message string) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid account ID")
	}

	if err := fn(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, message)
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	return uuid.Parse(c.Param("id"))
}
