package handlers

import (
	"net/http"

	"themeweek/middleware"
	"themeweek/models"
	"themeweek/services/decision"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Decision-store endpoints. Reads always answer with the safe default; writes
// are acknowledged with the stored value.

// NewGetConsentHandler returns the device's consent flags.
func NewGetConsentHandler(store decision.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := middleware.DeviceID(c)
		c.JSON(http.StatusOK, store.Consent(c.Request.Context(), deviceID))
	}
}

// NewPutConsentHandler stores the device's consent flags.
func NewPutConsentHandler(store decision.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var consent models.ConsentState
		if err := c.ShouldBindJSON(&consent); err != nil {
			logger.Error("Invalid consent request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		deviceID := middleware.DeviceID(c)
		store.SetConsent(c.Request.Context(), deviceID, consent)
		c.JSON(http.StatusOK, consent)
	}
}

// NewGetPlanHandler returns the device's selected plan, empty when unset.
func NewGetPlanHandler(store decision.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := middleware.DeviceID(c)
		c.JSON(http.StatusOK, gin.H{"plan": store.SelectedPlan(c.Request.Context(), deviceID)})
	}
}

// NewPutPlanHandler stores the device's selected plan.
func NewPutPlanHandler(store decision.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Plan models.PlanTier `json:"plan"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid plan request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if !req.Plan.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan: " + string(req.Plan)})
			return
		}

		deviceID := middleware.DeviceID(c)
		store.SetSelectedPlan(c.Request.Context(), deviceID, req.Plan)
		c.JSON(http.StatusOK, gin.H{"plan": req.Plan})
	}
}

// NewGetModeHandler returns the device's app mode (free until set otherwise).
func NewGetModeHandler(store decision.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := middleware.DeviceID(c)
		mode := store.AppMode(c.Request.Context(), deviceID)
		if !mode.Valid() {
			mode = models.AppModeFree
		}
		c.JSON(http.StatusOK, gin.H{"mode": mode})
	}
}

// NewPutModeHandler stores the device's app mode.
func NewPutModeHandler(store decision.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Mode models.AppMode `json:"mode"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid mode request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}
		if !req.Mode.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown mode: " + string(req.Mode)})
			return
		}

		deviceID := middleware.DeviceID(c)
		store.SetAppMode(c.Request.Context(), deviceID, req.Mode)
		c.JSON(http.StatusOK, gin.H{"mode": req.Mode})
	}
}
