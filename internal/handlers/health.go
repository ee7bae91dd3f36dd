package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health answers GET /health for a gin service.
func Health(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": service})
	}
}
