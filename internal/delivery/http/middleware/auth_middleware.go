package middleware

import (
	"strings"

	"gamestore/internal/delivery/http/response"
	"gamestore/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for handlers to use.
const (
	ContextKeyAccountID   = "accountID"
	ContextKeyProfileType = "profileType"
	ContextKeyClaims      = "sessionClaims"
)

// AuthMiddleware provides middleware for session token authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenIssuer service.TokenIssuer
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenIssuer service.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokenIssuer: tokenIssuer}
}

// Authenticate is the core middleware function that validates the session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenIssuer.Validate(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		// Set identity info on the context for handlers to use
		c.Set(ContextKeyAccountID, claims.AccountID)
		c.Set(ContextKeyProfileType, claims.ProfileType)
		c.Set(ContextKeyClaims, claims)

		return next(c)
	}
}

// RequireProfileType is a middleware factory that checks the caller's profile
// type. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireProfileType(required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			profileType, ok := c.Get(ContextKeyProfileType).(string)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: profile information missing")
			}

			if profileType != required {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+required+"' profile")
			}

			return next(c)
		}
	}
}
