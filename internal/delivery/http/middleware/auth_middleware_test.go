package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamestore/internal/delivery/http/response"
	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokenIssuer validates exactly one known token string.
type stubTokenIssuer struct {
	validToken string
	claims     *service.SessionClaims
}

func (s *stubTokenIssuer) Issue(service.AccountTokenData) (string, error) {
	return s.validToken, nil
}

func (s *stubTokenIssuer) Validate(tokenString string) (*service.SessionClaims, error) {
	if tokenString != s.validToken {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("unknown test token")
	}

	return s.claims, nil
}

func newAuthTestContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestAuthenticate(t *testing.T) {
	claims := &service.SessionClaims{
		AccountID:   uuid.New(),
		ProfileType: "common_user",
	}
	m := NewAuthMiddleware(&stubTokenIssuer{validToken: "good-token", claims: claims})

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("missing header", func(t *testing.T) {
		c, rec := newAuthTestContext(t, "")

		require.NoError(t, m.Authenticate(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "MISSING_TOKEN", decodeResponse(t, rec).Error.Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		c, rec := newAuthTestContext(t, "Basic Zm9vOmJhcg==")

		require.NoError(t, m.Authenticate(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_TOKEN", decodeResponse(t, rec).Error.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		c, rec := newAuthTestContext(t, "Bearer bad-token")

		require.NoError(t, m.Authenticate(next)(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_TOKEN", decodeResponse(t, rec).Error.Code)
	})

	t.Run("valid token sets identity on the context", func(t *testing.T) {
		c, rec := newAuthTestContext(t, "Bearer good-token")

		require.NoError(t, m.Authenticate(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, claims.AccountID, c.Get(ContextKeyAccountID))
		assert.Equal(t, "common_user", c.Get(ContextKeyProfileType))
		assert.Equal(t, claims, c.Get(ContextKeyClaims))
	})
}

func TestRequireProfileType(t *testing.T) {
	m := NewAuthMiddleware(&stubTokenIssuer{})
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	t.Run("matching profile passes", func(t *testing.T) {
		c, rec := newAuthTestContext(t, "")
		c.Set(ContextKeyProfileType, "admin")

		require.NoError(t, m.RequireProfileType("admin")(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("other profile is forbidden", func(t *testing.T) {
		c, rec := newAuthTestContext(t, "")
		c.Set(ContextKeyProfileType, "common_user")

		require.NoError(t, m.RequireProfileType("admin")(next)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", decodeResponse(t, rec).Error.Code)
	})

	t.Run("missing profile is forbidden", func(t *testing.T) {
		c, rec := newAuthTestContext(t, "")

		require.NoError(t, m.RequireProfileType("admin")(next)(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
