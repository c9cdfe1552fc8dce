package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rentfleet/internal/config"
	"rentfleet/internal/domain"
	"rentfleet/internal/service"
)

const identityKey = "identity"

// Authenticate returns middleware that verifies the Bearer token and
// attaches the caller's identity to the request context. When roles are
// given, the caller's role must be one of them; with no roles any
// authenticated caller passes.
func Authenticate(cfg config.AuthConfig, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or malformed authorization header"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := service.VerifyToken(cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		role, err := service.ValidateRole(claims.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if len(roles) > 0 && !roleAllowed(role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "you are not allowed to access this resource"})
			return
		}

		c.Set(identityKey, domain.Identity{
			UserID: claims.Subject,
			Role:   role,
		})

		c.Next()
	}
}

// IdentityFrom extracts the authenticated identity attached by Authenticate.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := value.(domain.Identity)
	return identity, ok
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
