package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rangsey10/sport-jerseys-api/models"
)

// RoleLookup resolves a user's profile. Satisfied by *store.Profiles.
type RoleLookup interface {
	Get(ctx context.Context, id string) (*models.Profile, error)
}

// RequireAdmin is the single authorization policy for cross-user data. It
// runs after ValidateToken and aborts unless the caller's profile carries the
// admin role. A hard gate: non-admins get an error, never partial data.
func RequireAdmin(profiles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		profile, err := profiles.Get(c.Request.Context(), userID)
		if err != nil || !profile.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			c.Abort()
			return
		}

		c.Set("profile", profile)
		c.Next()
	}
}
