package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"wedding-booking/internal/domain/booking"

	"github.com/gin-gonic/gin"
)

// TokenValidator resolves a bearer token into the booking party it speaks for.
type TokenValidator interface {
	Authenticate(token string) (booking.Actor, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxActorKey  = "actor"
	ctxClaimsKey = "jwt_claims"
)

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Access token required"},
			})
			c.Abort()
			return
		}

		actor, err := m.tokenValidator.Authenticate(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "Invalid or expired token"},
			})
			c.Abort()
			return
		}

		c.Set(ctxActorKey, actor)
		c.Set(ctxClaimsKey, map[string]any{
			"actor_id": actor.ID.String(),
			"role":     actor.Role.String(),
		})
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(role booking.ActorRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{"message": "Internal server error"},
			})
			c.Abort()
			return
		}

		if actor.Role != role {
			c.JSON(http.StatusForbidden, gin.H{
				"error": gin.H{"message": "Insufficient permissions"},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func GetActor(c *gin.Context) (booking.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return booking.Actor{}, false
	}

	actor, ok := v.(booking.Actor)
	return actor, ok
}
