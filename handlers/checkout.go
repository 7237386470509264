package handlers

import (
	"errors"
	"net/http"

	"themeweek/middleware"
	"themeweek/models"
	"themeweek/services/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewStartCheckoutHandler initiates a hosted checkout session and returns the
// redirect URL. Consent and plan failures answer with their user-facing
// message; provider failures map to 502.
func NewStartCheckoutHandler(svc checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid checkout request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		deviceID := middleware.DeviceID(c)
		redirectURL, err := svc.StartCheckout(c.Request.Context(), deviceID, req)
		if err != nil {
			var consentErr checkout.ConsentRequiredError
			var planErr checkout.UnknownPlanError
			var sessionErr checkout.SessionError
			switch {
			case errors.As(err, &consentErr):
				c.JSON(http.StatusConflict, gin.H{"error": consentErr.Error()})
			case errors.As(err, &planErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": planErr.Error()})
			case errors.As(err, &sessionErr):
				logger.Error("Checkout session creation failed", zap.Error(err))
				c.JSON(http.StatusBadGateway, gin.H{"error": sessionErr.Error()})
			default:
				logger.Error("Checkout failed", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout failed"})
			}
			return
		}

		c.JSON(http.StatusOK, models.CheckoutResponse{URL: redirectURL})
	}
}

// NewCheckoutReturnHandler reconciles the query parameters of a return
// redirect and answers with the notices to render plus the cleaned query.
func NewCheckoutReturnHandler(svc checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := middleware.DeviceID(c)
		result := svc.ReconcileReturn(c.Request.Context(), deviceID, c.Request.URL.Query())
		c.JSON(http.StatusOK, result)
	}
}
