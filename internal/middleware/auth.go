package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unn-housing/service-booking/internal/auth"
	"github.com/unn-housing/service-booking/internal/response"
)

const identityKey = "identity"

// AuthMiddleware requires a valid access token in the Authorization header and
// stores the caller's identity in the context.
func AuthMiddleware(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "Authorization header is required")
			return
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Unauthorized(c, "Authorization header must be Bearer <token>")
			return
		}

		claims, err := jwtManager.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				response.Unauthorized(c, "Token has expired")
				return
			}
			response.Unauthorized(c, "Invalid token")
			return
		}
		if claims.TokenType != auth.TokenTypeAccess {
			response.Unauthorized(c, "Access token required")
			return
		}

		c.Set(identityKey, claims.Identity())
		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller holds at least one of roles.
// It must run after AuthMiddleware.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			response.Unauthorized(c, "Authentication required")
			return
		}
		if !identity.HasAnyRole(roles...) {
			response.Forbidden(c, "Access denied: insufficient permissions")
			return
		}
		c.Next()
	}
}

// GetIdentity returns the authenticated caller.
func GetIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}

// GetUserID returns the authenticated caller's user id.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	identity, ok := GetIdentity(c)
	if !ok || identity.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return identity.UserID, true
}
