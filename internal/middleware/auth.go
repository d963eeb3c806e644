package middleware

import (
	"errors"
	"net/http"
	"strings"

	"golang-storefront-client/internal/gateway"
	"golang-storefront-client/pkg/auth"

	"github.com/gin-gonic/gin"
)

type SessionMiddleware struct {
	parser *auth.SessionParser
}

func NewSessionMiddleware(parser *auth.SessionParser) *SessionMiddleware {
	return &SessionMiddleware{parser: parser}
}

// SessionRequired resolves the owner identity from the bearer token before
// any cart operation is allowed, and attaches the raw token to the request
// context so the gateway forwards it upstream.
func (m *SessionMiddleware) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := m.parser.Parse(tokenParts[1])
		if err != nil {
			if errors.Is(err, auth.ErrSessionExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Request = c.Request.WithContext(gateway.WithToken(c.Request.Context(), tokenParts[1]))
		c.Next()
	}
}

// SessionOptional forwards a valid token when present but lets anonymous
// reads through.
func (m *SessionMiddleware) SessionOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
			if claims, err := m.parser.Parse(tokenParts[1]); err == nil {
				c.Set("user_id", claims.UserID)
				c.Request = c.Request.WithContext(gateway.WithToken(c.Request.Context(), tokenParts[1]))
			}
		}
		c.Next()
	}
}
