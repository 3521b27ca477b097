package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for malformed, forged, or expired tokens
var ErrInvalidToken = errors.New("invalid token")

// TokenClaims carries the session reference inside a signed access token.
// The session id is the source of truth; the token only proves the bearer
// was handed that session.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"uid"`
	SessionID string `json:"sid"`
}

// GenerateToken mints an HS256 access token bound to a session
func GenerateToken(userID int64, sessionID string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:    userID,
		SessionID: sessionID,
	})

	return token.SignedString(secret)
}

// ParseToken validates an access token and returns its claims
func ParseToken(tokenString string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.SessionID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
