package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"gamestore/config"
	domainerrors "gamestore/internal/domain/errors"
	"gamestore/internal/domain/service"
)

// jwtIssuer is a concrete implementation of the TokenIssuer interface using
// HMAC-signed JWTs.
type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer is the constructor for jwtIssuer.
func NewJWTIssuer(cfg *config.Config) (service.TokenIssuer, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("session secret must be provided")
	}

	return &jwtIssuer{
		secret: []byte(cfg.SecretKey.Session),
		ttl:    cfg.TokenTTL(),
		now:    time.Now,
	}, nil
}

// Issue creates a signed session token carrying the account's identity
// claims. Every token gets a unique jti so individual tokens stay
// distinguishable in logs.
func (s *jwtIssuer) Issue(account service.AccountTokenData) (string, error) {
	issuedAt := s.now()
	claims := jwt.MapClaims{
		"sub":            account.AccountID.String(),
		"email":          account.Email,
		"username":       account.Username,
		"profile_type":   account.ProfileType,
		"account_status": account.AccountStatus,
		"jti":            uuid.New().String(),
		"iat":            issuedAt.Unix(),
		"exp":            issuedAt.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning its claims.
func (s *jwtIssuer) Validate(tokenString string) (*service.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrExpiredToken.WrapMessage("session token expired")
		}

		return nil, domainerrors.ErrInvalidToken.WrapMessage("session token rejected")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("session token claims missing")
	}

	return parseSessionClaims(mapClaims)
}

func parseSessionClaims(mapClaims jwt.MapClaims) (*service.SessionClaims, error) {
	sub, _ := mapClaims["sub"].(string)
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("session token subject is not a UUID")
	}

	email, _ := mapClaims["email"].(string)
	username, _ := mapClaims["username"].(string)
	profileType, _ := mapClaims["profile_type"].(string)
	accountStatus, _ := mapClaims["account_status"].(string)
	tokenID, _ := mapClaims["jti"].(string)

	return &service.SessionClaims{
		AccountID:     accountID,
		Email:         email,
		Username:      username,
		ProfileType:   profileType,
		AccountStatus: accountStatus,
		TokenID:       tokenID,
	}, nil
}
