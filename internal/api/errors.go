package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pageza/nutrilog/backend/internal/service"
	"github.com/pageza/nutrilog/backend/internal/types"
)

const (
	preconditionProfile = "profile"
	preconditionHistory = "history"
)

// respondError writes the error response for err. Upstream and unexpected
// errors are logged and answered with a generic message.
func respondError(c *gin.Context, logger zerolog.Logger, err error) {
	var (
		verrs   types.ValidationErrors
		history *service.InsufficientHistoryError
		tooBig  *http.MaxBytesError
	)

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "validation failed", Fields: verrs})
	case errors.As(err, &tooBig):
		c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{
			Error: fmt.Sprintf("upload exceeds %d bytes", tooBig.Limit),
		})
	case errors.Is(err, service.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: service.MsgInvalidImage})
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "profile not found"})
	case errors.Is(err, service.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "task not found"})
	case errors.Is(err, service.ErrTaskInFlight):
		c.JSON(http.StatusConflict, types.ErrorResponse{Error: "a task of this kind is already running"})
	case errors.As(err, &history):
		c.JSON(http.StatusPreconditionFailed, types.ErrorResponse{
			Error:         fmt.Sprintf(service.MsgHistoryIncomplete, history.Remaining()),
			Precondition:  preconditionHistory,
			DaysRemaining: history.Remaining(),
		})
	case errors.Is(err, service.ErrProfileRequired):
		c.JSON(http.StatusPreconditionFailed, types.ErrorResponse{
			Error:        service.MsgProfileRequired,
			Precondition: preconditionProfile,
		})
	case errors.Is(err, service.ErrUpstream), errors.Is(err, service.ErrMalformedReply):
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("ai request failed")
		c.JSON(http.StatusBadGateway, types.ErrorResponse{Error: "請稍後再試。"})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Str("path", c.FullPath()).Msg("request timed out")
		c.JSON(http.StatusGatewayTimeout, types.ErrorResponse{Error: "request timed out"})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "internal server error"})
	}
}

// bindError converts a binding failure into field errors. Rule violations
// keep their field paths; malformed bodies are reported on "body".
func bindError(err error) error {
	var rules validator.ValidationErrors
	if errors.As(err, &rules) {
		return types.FromValidator(rules, "")
	}
	return types.ValidationErrors{{Field: "body", Message: err.Error()}}
}

func isTooLarge(err error) bool {
	var tooBig *http.MaxBytesError
	return errors.As(err, &tooBig)
}
