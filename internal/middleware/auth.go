package middleware

import (
	"net/http"
	"strings"
	"time"

	"faculty-portal-api/internal/auth"
	"faculty-portal-api/internal/cache"
	"faculty-portal-api/internal/database"
	"faculty-portal-api/internal/models"

	"github.com/gin-gonic/gin"
)

// identityKey is the gin context key the resolved actor is stored
// under.
const identityKey = "identity"

// userCache shortcuts the per-request user lookup; entries live for a
// minute so disabled accounts drop out quickly.
var userCache = cache.New[string, models.User]()

const userCacheTTL = time.Minute

// JWTAuthMiddleware validates the JWT in the Authorization header and
// stores the actor's Identity in the gin context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := ""
		if authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}
		// Fallback for WebSocket/browser where custom headers cannot be set: allow token in query param
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization token is required",
			})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		// The token is trusted, but the account must still exist and
		// be enabled.
		user, ok := lookupUser(claims.UserID)
		if !ok || !user.Enabled {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Account not found or disabled",
			})
			c.Abort()
			return
		}

		c.Set(identityKey, models.IdentityOf(user))
		c.Next()
	}
}

// RequireSupervisor rejects requests whose actor is not a supervisor.
// It must run after JWTAuthMiddleware.
func RequireSupervisor() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentIdentity(c)
		if !ok || !actor.Role.IsSupervisor() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Supervisor role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the actor resolved by JWTAuthMiddleware.
func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func lookupUser(userID string) (models.User, bool) {
	if u, ok := userCache.Get(userID); ok {
		return u, true
	}
	var u models.User
	if err := database.GetDB().Where("id = ?", userID).First(&u).Error; err != nil {
		return models.User{}, false
	}
	userCache.Set(userID, u, userCacheTTL)
	return u, true
}
