package routes

import (
	"github.com/gin-gonic/gin"

	userControllers "github.com/Rangsey10/sport-jerseys-api/controllers/user"
	"github.com/Rangsey10/sport-jerseys-api/middleware"
	"github.com/Rangsey10/sport-jerseys-api/store"
)

func SetupUserRoutes(r *gin.Engine, profiles *store.Profiles) {
	group := r.Group("/user")
	group.Use(middleware.ValidateToken)
	{
		group.GET("/profile", userControllers.GetProfile(profiles))
	}
}
