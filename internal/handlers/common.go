package handlers

import (
	"errors"
	"net/http"

	"golang-storefront-client/internal/gateway"
	"golang-storefront-client/internal/services"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// respondError maps the typed service errors onto edge status codes. The
// upstream message is passed through untouched for user-facing display.
func respondError(c *gin.Context, err error) {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Message: validation.Reason,
		})
		return
	}

	var upstream *gateway.UpstreamError
	if errors.As(err, &upstream) {
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "Remote api error",
			Message: upstream.Message,
		})
		return
	}

	if errors.Is(err, services.ErrNoCachedData) || errors.Is(err, services.ErrNotCached) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "Not available offline",
			Message: err.Error(),
		})
		return
	}

	if errors.Is(err, gateway.ErrUnreachable) {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error:   "Remote api unreachable",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal error",
		Message: err.Error(),
	})
}
