package handlers

import (
	"net/http"

	"github.com/invodesk/invoice_analytics_app/pkg/config"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show a welcome message.
// @Description Landing route pointing at the API surfaces.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Invoice Analytics API",
		"docs":    "/swagger/index.html",
		"graphql": "/graphql",
	})
}

// getHealth godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// registerHomeRoutes registers the root and health routes
func registerHomeRoutes(r *gin.Engine, _ *config.Config) {
	r.GET("/", getHome)
	r.GET("/health", getHealth)
}
