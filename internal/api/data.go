package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/models"
	"github.com/pageza/nutrilog/backend/internal/service"
)

const exportFilename = "nutrition-data.json"

// DataHandler exports and imports the whole user document.
type DataHandler struct {
	data   service.IDataService
	logger zerolog.Logger
}

func NewDataHandler(data service.IDataService, logger zerolog.Logger) *DataHandler {
	return &DataHandler{data: data, logger: logger}
}

func (h *DataHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/export", h.Export)
	router.PUT("/import", h.Import)
}

func (h *DataHandler) Export(c *gin.Context) {
	data, err := h.data.Export(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename+`"`)
	c.JSON(http.StatusOK, data)
}

func (h *DataHandler) Import(c *gin.Context) {
	var doc models.UserData
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondError(c, h.logger, bindError(err))
		return
	}

	imported, err := h.data.Import(c.Request.Context(), doc)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, imported)
}
