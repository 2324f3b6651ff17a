package service

import (
	"github.com/google/uuid"
)

// SessionClaims is the claim set embedded in a session token.
type SessionClaims struct {
	AccountID     uuid.UUID
	Email         string
	Username      string
	ProfileType   string
	AccountStatus string
	TokenID       string // unique per-token identifier (jti)
}

// AccountTokenData carries the identity fields the issuer embeds. Defined
// here instead of taking the aggregate directly so the service layer does
// not depend on entity internals.
type AccountTokenData struct {
	AccountID     uuid.UUID
	Email         string
	Username      string
	ProfileType   string
	AccountStatus string
}

// TokenIssuer defines the interface for producing and validating signed
// session tokens for authenticated accounts.
type TokenIssuer interface {
	// Issue produces a signed session token carrying the account's claims.
	Issue(account AccountTokenData) (string, error)

	// Validate parses and verifies a token string, returning its claims.
	Validate(tokenString string) (*SessionClaims, error)
}
