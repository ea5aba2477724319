package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenValidity is the fixed lifetime of issued tokens. There is no
// refresh flow; callers re-authenticate after expiry.
const TokenValidity = 3 * time.Hour

// Claims carried by issued bearer tokens: the display username, one role
// entry per role held at issuance, and the registered claim set including
// a fresh jti per token.
type Claims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and validates bearer tokens with a process-wide
// symmetric secret. Configured once at startup, read-only afterwards.
type TokenIssuer struct {
	Secret   string
	Issuer   string
	Audience string
}

// Generate issues a token for the identity and its resolved roles,
// returning the signed string and its expiration time.
func (t *TokenIssuer) Generate(username string, roles []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(TokenValidity)

	claims := Claims{
		Username: username,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    t.Issuer,
			Audience:  jwt.ClaimStrings{t.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse validates a token against the configured secret, issuer and
// audience, and returns its claims.
func (t *TokenIssuer) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(t.Secret), nil
	}, jwt.WithIssuer(t.Issuer), jwt.WithAudience(t.Audience))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
