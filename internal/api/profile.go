package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/service"
	"github.com/pageza/nutrilog/backend/internal/types"
)

type ProfileHandler struct {
	profileService service.IProfileService
	logger         zerolog.Logger
}

func NewProfileHandler(profileService service.IProfileService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/options", h.GetOptions)

	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.GET("/intake", h.GetIntake)
	}
}

// GetOptions lists the form choices with their labels.
func (h *ProfileHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, types.OptionsResponse{
		ActivityLevels:  models.ActivityLevels,
		MealTypes:       models.MealTypes,
		HealthGoals:     models.HealthGoals,
		DefaultMealType: models.DefaultMealType,
	})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	profile, err := h.profileService.SaveProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetIntake(c *gin.Context) {
	intake, err := h.profileService.GetIntake(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, intake)
}
