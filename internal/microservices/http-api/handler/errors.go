package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"foodreview/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var requestTimeout = 5 * time.Second

// SetRequestTimeout changes the per-request deadline applied by every handler.
func SetRequestTimeout(d time.Duration) {
	if d > 0 {
		requestTimeout = d
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// respondError maps domain error kinds to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	default:
		_ = c.Error(err)
		log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// objectIDParam reads a path parameter that must be an ObjectID hex string.
func objectIDParam(c *gin.Context, name, label string) (string, bool) {
	id := c.Param(name)
	if !primitive.IsValidObjectID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + label + " id"})
		return "", false
	}
	return id, true
}

// uuidParam reads a path parameter that must be a UUID.
func uuidParam(c *gin.Context, name, label string) (string, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + label + " id"})
		return "", false
	}
	return id.String(), true
}
