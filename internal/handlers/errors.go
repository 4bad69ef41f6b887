package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/karangnongko_farm/internal/apperrors"
	"github.com/SscSPs/karangnongko_farm/internal/dto"
	"github.com/gin-gonic/gin"
)

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidCredentials), errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Server errors are logged and replaced by
// generic, while client errors keep their message.
func respondError(c *gin.Context, logger *slog.Logger, err error, generic string, note *dto.Notification) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(generic, slog.String("error", err.Error()))
		if note == nil {
			note = dto.OperationFailedNotification()
		}
		c.JSON(status, dto.ErrorResponse{Error: generic, Notification: note})
		return
	}
	logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Notification: note})
}
