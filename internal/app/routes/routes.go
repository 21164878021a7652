package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tunahan/uniplanner/internal/app/controllers"
	"github.com/tunahan/uniplanner/internal/app/models/dto"
	"github.com/tunahan/uniplanner/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	timetableController *controllers.TimetableController,
	catalogController *controllers.CatalogController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Timetable generation
		timetable := authenticated.Group("/timetable")
		{
			timetable.POST("/generate", timetableController.GenerateTimetable)
		}

		// Read-only catalog views of the academic records
		authenticated.GET("/courses", catalogController.ListCourses)
		authenticated.GET("/batches", catalogController.ListBatches)
		authenticated.GET("/rooms", catalogController.ListRooms)
		authenticated.GET("/slots", catalogController.ListSlots)
	}
}
