// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"github.com/gin-gonic/gin"

	"iqx_backend/internal/api"
)

// Health handles the /healthz endpoint for service health checks.
// It responds appropriately per HTTP method and prevents caching.
func Health(c *gin.Context) {
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{"status": "ok"})
	}
}

// Root handles the / endpoint with a short service banner.
func Root(c *gin.Context) {
	c.JSON(200, api.MessageResponse{Message: "IQX API is running"})
}
