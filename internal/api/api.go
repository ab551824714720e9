package api

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/service"
)

// Services are the dependencies of the HTTP handlers.
type Services struct {
	Profile         service.IProfileService
	FoodLog         service.IFoodLogService
	Health          service.IHealthService
	Recommendations service.IRecommendationService
	Data            service.IDataService
	Tasks           service.ITaskRunner
}

// RegisterRoutes registers the health checks and every /api/v1 route.
func RegisterRoutes(router *gin.Engine, svc Services, store Pinger, maxUploadBytes int64, logger zerolog.Logger) {
	router.GET("/health", HealthCheck(store))
	router.GET("/api/health", HealthCheck(store))

	v1 := router.Group("/api/v1")
	{
		NewProfileHandler(svc.Profile, logger).RegisterRoutes(v1)
		NewFoodLogHandler(svc.FoodLog, svc.Tasks, maxUploadBytes, logger).RegisterRoutes(v1)
		NewHealthDataHandler(svc.Health, svc.Tasks, logger).RegisterRoutes(v1)
		NewRecommendationHandler(svc.Recommendations, svc.Tasks, logger).RegisterRoutes(v1)
		NewTaskHandler(svc.Tasks, logger).RegisterRoutes(v1)
		NewDataHandler(svc.Data, logger).RegisterRoutes(v1)
	}
}
