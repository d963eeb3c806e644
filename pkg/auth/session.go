package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrSessionExpired = errors.New("session token expired")
	ErrInvalidSession = errors.New("invalid session token")
)

// SessionClaims are the claims the remote auth service puts in its access
// tokens.
type SessionClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// SessionParser extracts the owner identity and expiry from tokens issued
// by the remote auth service. The signing secret lives on that service, so
// the signature is not verified here; the remote API re-validates every
// forwarded token.
type SessionParser struct{}

func NewSessionParser() *SessionParser {
	return &SessionParser{}
}

func (p *SessionParser) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id claim", ErrInvalidSession)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, ErrSessionExpired
	}

	return claims, nil
}
