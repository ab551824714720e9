package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/service"
)

// HealthDataHandler serves the aggregated intake views and the risk
// assessment.
type HealthDataHandler struct {
	health service.IHealthService
	tasks  service.ITaskRunner
	logger zerolog.Logger
}

func NewHealthDataHandler(health service.IHealthService, tasks service.ITaskRunner, logger zerolog.Logger) *HealthDataHandler {
	return &HealthDataHandler{health: health, tasks: tasks, logger: logger}
}

func (h *HealthDataHandler) RegisterRoutes(router *gin.RouterGroup) {
	data := router.Group("/health-data")
	{
		data.GET("/today", h.Today)
		data.GET("/average", h.Average)
		data.POST("/risk-assessment", h.RiskAssessment)
	}
}

func (h *HealthDataHandler) Today(c *gin.Context) {
	summary, err := h.health.Today(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *HealthDataHandler) Average(c *gin.Context) {
	summary, err := h.health.Average(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *HealthDataHandler) RiskAssessment(c *gin.Context) {
	started, err := h.health.StartRiskAssessment(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondTask(c, h.tasks, h.logger, started)
}

// RecommendationHandler serves the meal and exercise plan.
type RecommendationHandler struct {
	recommendations service.IRecommendationService
	tasks           service.ITaskRunner
	logger          zerolog.Logger
}

func NewRecommendationHandler(recommendations service.IRecommendationService, tasks service.ITaskRunner, logger zerolog.Logger) *RecommendationHandler {
	return &RecommendationHandler{recommendations: recommendations, tasks: tasks, logger: logger}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recommendations", h.Generate)
}

func (h *RecommendationHandler) Generate(c *gin.Context) {
	started, err := h.recommendations.StartRecommendation(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondTask(c, h.tasks, h.logger, started)
}
