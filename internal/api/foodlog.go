package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/service"
	"github.com/pageza/nutrilog/backend/internal/types"
)

// FoodLogHandler serves meal analysis and the food log.
type FoodLogHandler struct {
	foodLog        service.IFoodLogService
	tasks          service.ITaskRunner
	maxUploadBytes int64
	logger         zerolog.Logger
}

func NewFoodLogHandler(foodLog service.IFoodLogService, tasks service.ITaskRunner, maxUploadBytes int64, logger zerolog.Logger) *FoodLogHandler {
	return &FoodLogHandler{
		foodLog:        foodLog,
		tasks:          tasks,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

func (h *FoodLogHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/analysis", h.Analyze)

	log := router.Group("/food-log")
	{
		log.GET("", h.History)
		log.DELETE("", h.Clear)
	}
}

// Analyze takes a multipart form with an "image" file and an optional
// "mealType" field.
func (h *FoodLogHandler) Analyze(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, err := c.FormFile("image")
	if err != nil {
		if isTooLarge(err) {
			respondError(c, h.logger, err)
			return
		}
		respondError(c, h.logger, types.ValidationErrors{{Field: "image", Message: "is required"}})
		return
	}

	f, err := file.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	mealType := models.MealType(c.PostForm("mealType"))
	started, err := h.foodLog.StartAnalysis(c.Request.Context(), data, mealType)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondTask(c, h.tasks, h.logger, started)
}

// History lists entries, newest first unless ?order=asc. ?date=YYYY-MM-DD
// keeps one day.
func (h *FoodLogHandler) History(c *gin.Context) {
	var descending bool
	switch order := c.DefaultQuery("order", "desc"); order {
	case "desc":
		descending = true
	case "asc":
	default:
		respondError(c, h.logger, types.ValidationErrors{{Field: "order", Message: "must be asc or desc"}})
		return
	}

	entries, err := h.foodLog.History(c.Request.Context(), descending, c.Query("date"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

// Clear empties the log. It requires ?confirm=true.
func (h *FoodLogHandler) Clear(c *gin.Context) {
	if c.Query("confirm") != "true" {
		respondError(c, h.logger, types.ValidationErrors{{Field: "confirm", Message: "must be true to clear the food log"}})
		return
	}

	if err := h.foodLog.Clear(c.Request.Context()); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
