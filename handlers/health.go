package handlers

import (
	"net/http"

	"themeweek/config"
	"themeweek/utils"

	"github.com/gin-gonic/gin"
)

// NewHealthHandler reports liveness plus the latest dependency snapshot from
// the background monitor. Payments are "configured" when a Stripe key is set.
func NewHealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":             "ok",
			"paymentsConfigured": config.AppConfig.StripeKey != "",
			"dependencies":       utils.GetHealthStatus(),
		})
	}
}
