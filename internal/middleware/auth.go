// Package middleware provides HTTP middleware for the auth service.
package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wasa-portal/auth-service/internal/apperrors"
	"github.com/wasa-portal/auth-service/internal/respond"
	"github.com/wasa-portal/auth-service/internal/service"
)

// ClaimsKey is the gin context key under which RequireAuth stores the
// verified token claims.
const ClaimsKey = "claims"

// RequireAuth returns middleware that extracts and verifies the bearer
// token. Any failure yields the same 401; the verification failure kind is
// logged but never sent to the client.
func RequireAuth(jwtService service.JWTService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			respond.AbortError(c, apperrors.Unauthorized("Unauthorized: no token provided"))
			return
		}

		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			logger.Warn("token rejected", "reason", err.Error(), "path", c.FullPath())
			respond.AbortError(c, apperrors.Unauthorized("Unauthorized: invalid token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole returns middleware that gates a route to a single role. It
// must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			respond.AbortError(c, apperrors.Unauthorized("Unauthorized: no token provided"))
			return
		}
		if claims.Role != role {
			respond.AbortError(c, apperrors.Forbidden("Forbidden: "+role+" access required"))
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the claims attached by RequireAuth, or nil.
func ClaimsFromContext(c *gin.Context) *service.Claims {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func extractBearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return ""
	}
	return parts[1]
}
