package middleware

import (
	"strings"

	"conduit/helper"
	"conduit/services"

	"github.com/gin-gonic/gin"
)

const (
	ContextUsername = "username"
	ContextToken    = "token"
)

// ExtractToken pulls the credential out of an Authorization header of the
// form "Bearer <jwt>" or "Token <jwt>".
func ExtractToken(authHeader string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authHeader), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// OptionalAuth resolves the caller from the Authorization header when a
// valid token is present. Missing or invalid credentials leave the caller
// anonymous; they are never an error here.
func OptionalAuth(tokens services.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := ExtractToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		username, err := tokens.Resolve(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ContextUsername, username)
		c.Set(ContextToken, token)
		c.Next()
	}
}

// RequireAuth rejects anonymous callers. It must run after OptionalAuth.
func RequireAuth(h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			h.SendUnauthorizedError(c, "a valid token is required")
			return
		}
		c.Next()
	}
}

// CurrentUser returns the caller's username, if any.
func CurrentUser(c *gin.Context) (string, bool) {
	username := c.GetString(ContextUsername)
	return username, username != ""
}

// CurrentToken returns the raw token the caller presented.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextToken)
}
