package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/service"
	"github.com/pageza/nutrilog/backend/internal/types"
)

// TaskHandler exposes AI task state for polling.
type TaskHandler struct {
	tasks  service.ITaskRunner
	logger zerolog.Logger
}

func NewTaskHandler(tasks service.ITaskRunner, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, logger: logger}
}

func (h *TaskHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/tasks/:id", h.GetTask)
}

// GetTask returns the task's current state, or its final state with
// ?wait=true.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id := c.Param("id")
	if wantsWait(c) {
		resp, err := h.tasks.Wait(c.Request.Context(), id)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	resp, err := h.tasks.Get(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func wantsWait(c *gin.Context) bool {
	return c.Query("wait") == "true"
}

// respondTask answers a freshly started task: 202 with the pending task,
// or with ?wait=true the finished task (200) or its failure message (502).
func respondTask(c *gin.Context, tasks service.ITaskRunner, logger zerolog.Logger, started *types.TaskResponse) {
	if !wantsWait(c) {
		c.Header("Location", "/api/v1/tasks/"+started.ID)
		c.JSON(http.StatusAccepted, started)
		return
	}

	done, err := tasks.Wait(c.Request.Context(), started.ID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	if done.Status == types.TaskFailed {
		c.JSON(http.StatusBadGateway, types.ErrorResponse{Error: done.Error})
		return
	}
	c.JSON(http.StatusOK, done)
}
