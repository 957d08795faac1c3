package routes

import (
	coreport "github.com/amirhossein-jamali/pool-access-controller/internal/domain/port/core"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/pool-access-controller/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	checkInHandler *handler.CheckInHandler,
	slotHandler *handler.SlotHandler,
	healthHandler *handler.HealthHandler,
) {
	// POST /checkin
	router.POST("/checkin", checkInHandler.CheckIn)

	// GET /slots/today
	slotRoutes := router.Group("/slots")
	{
		slotRoutes.GET("/today", slotHandler.TodaySchedule)
	}

	// GET /health
	router.GET("/health", healthHandler.Health)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, rps float64, burst int) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	if rps > 0 {
		router.Use(middleware.RateLimit(rps, burst))
	}
}
