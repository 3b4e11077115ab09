package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Root serves the service banner.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "EL-Dev Chisom Portfolio API",
		"status":    "active",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health is the liveness payload for platform health checks.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "portfolio-api",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Ping is the target of the keep-alive task.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "pong",
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
