package handlers

import (
	"errors"
	"net/http"

	"askstack/internal/middleware"
	"askstack/internal/models"
	"askstack/internal/services"

	"github.com/gin-gonic/gin"
)

// CurrentUser returns the authenticated user loaded by the middleware.
// Handlers behind AuthRequired can rely on it being present.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// AbortWithServiceError maps the service failure taxonomy to an HTTP response.
func AbortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Conflict, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
