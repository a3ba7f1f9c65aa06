package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"progress-service/internal/service"
)

// respondError maps the service error taxonomy onto HTTP responses.
// Duplicate-key conflicts never reach this point; the badge engine absorbs
// them as idempotent outcomes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
			"code":  "VALIDATION_ERROR",
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
			"code":  "NOT_FOUND",
		})
	case errors.Is(err, service.ErrUpstreamTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error":     "Transcription is unavailable right now, please record again",
			"code":      "UPSTREAM_TIMEOUT",
			"retryable": true,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"code":  "INTERNAL_ERROR",
		})
	}
}
