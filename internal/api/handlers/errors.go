package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/alligatorO15/fin-mentor/internal/service"
	"github.com/gin-gonic/gin"
)

// statusFor переводит доменную ошибку в HTTP статус.
// ErrNoIncome оборачивает ErrUnknownCategory, поэтому проверяется первым
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNoIncome):
		return http.StatusConflict
	case errors.Is(err, models.ErrUnknownCategory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidRatios),
		errors.Is(err, models.ErrOutOfOrder),
		errors.Is(err, models.ErrInvalidPeriod),
		errors.Is(err, service.ErrAuthDisabled):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrGoalNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
