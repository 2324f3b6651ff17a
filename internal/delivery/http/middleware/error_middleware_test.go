package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "gamestore/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newErrorTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func newTestErrorMiddleware() *ErrorMiddleware {
	return NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHandleHTTPError_ValidationError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorTestContext()

	validationErr := domainerrors.NewValidationError().
		Add("email", "invalid_email").
		Add("password", "password_too_short")

	m.HandleHTTPError(validationErr, c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResponse(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Equal(t, []string{"invalid_email"}, body.Error.Fields["email"])
	assert.Equal(t, []string{"password_too_short"}, body.Error.Fields["password"])
}

func TestHandleHTTPError_AppError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorTestContext()

	m.HandleHTTPError(domainerrors.ErrEmailAlreadyExists, c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "EMAIL_ALREADY_EXISTS", decodeResponse(t, rec).Error.Code)
}

func TestHandleHTTPError_WrappedAppErrorIsStillMapped(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorTestContext()

	err := errors.Wrap(domainerrors.ErrAccountNotFound.WrapMessage("lookup failed"), "failed to execute transaction")
	m.HandleHTTPError(err, c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ACCOUNT_NOT_FOUND", decodeResponse(t, rec).Error.Code)
}

func TestHandleHTTPError_EchoHTTPError(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorTestContext()

	m.HandleHTTPError(echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"), c)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "HTTP_ERROR", decodeResponse(t, rec).Error.Code)
}

func TestHandleHTTPError_UnknownErrorStaysGeneric(t *testing.T) {
	m := newTestErrorMiddleware()
	c, rec := newErrorTestContext()

	m.HandleHTTPError(errors.New("pq: connection refused"), c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	// The driver detail must never leak to the client.
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
