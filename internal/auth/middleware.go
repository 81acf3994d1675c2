package auth

import (
	"strings"

	"nextcut/internal/apperr"
	"nextcut/internal/response"

	"github.com/gin-gonic/gin"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthMiddleware verifies the bearer token and stores the principal in the
// gin context.
func AuthMiddleware(tokens *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, apperr.Unauthorized("NO_AUTH_HEADER", "authorization required"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, apperr.Unauthorized("INVALID_AUTH_HEADER", "expected 'Bearer <token>'"))
			return
		}

		principal, err := tokens.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Abort(c, apperr.Wrap(apperr.Auth, "INVALID_TOKEN", "invalid or expired token", err))
			return
		}

		c.Set(ContextUserID, principal.SubjectID)
		c.Set(ContextRole, principal.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose token role differs. Must run after
// AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			response.Abort(c, apperr.Denied("FORBIDDEN", "access denied: "+strings.ToLower(role)+" role required"))
			return
		}
		c.Next()
	}
}

// CurrentPrincipal reads what AuthMiddleware stored.
func CurrentPrincipal(c *gin.Context) Principal {
	return Principal{SubjectID: c.GetUint(ContextUserID), Role: c.GetString(ContextRole)}
}
