package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rangsey10/sport-jerseys-api/middleware"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

// GetProfile returns the caller's own profile record.
// GET /user/profile
func GetProfile(profiles store.ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.SessionUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		profile, err := profiles.Get(c.Request.Context(), userID)
		if errors.Is(err, store.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// GetAllProfiles lists every profile for the admin console.
// GET /admin/profiles
func GetAllProfiles(profiles store.ProfileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := profiles.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profiles"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
