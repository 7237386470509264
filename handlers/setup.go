package handlers

import (
	"errors"
	"net/http"

	"themeweek/middleware"
	"themeweek/models"
	"themeweek/services/setup"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewGetSetupHandler returns the saved wizard configuration, 404 when the
// wizard has not been completed on this device.
func NewGetSetupHandler(svc setup.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := middleware.DeviceID(c)
		state, ok := svc.Current(c.Request.Context(), deviceID)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setup not completed"})
			return
		}
		c.JSON(http.StatusOK, state)
	}
}

// NewSaveSetupHandler validates and persists the wizard configuration.
// Validation failures answer 422 with the first failing rule's message.
func NewSaveSetupHandler(svc setup.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.SetupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid setup request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		deviceID := middleware.DeviceID(c)
		state, err := svc.Save(c.Request.Context(), deviceID, req)
		if err != nil {
			var validationErr setup.ValidationError
			if errors.As(err, &validationErr) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Message})
				return
			}
			logger.Error("Failed to save setup", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save setup"})
			return
		}

		c.JSON(http.StatusCreated, state)
	}
}

// NewChangePlanHandler updates the plan preference of a saved setup.
func NewChangePlanHandler(svc setup.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req struct {
			Plan models.PlanTier `json:"plan"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid plan change request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		deviceID := middleware.DeviceID(c)
		state, err := svc.ChangePlanPreference(c.Request.Context(), deviceID, req.Plan)
		if err != nil {
			var validationErr setup.ValidationError
			if errors.As(err, &validationErr) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Message})
				return
			}
			logger.Error("Failed to change plan preference", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change plan"})
			return
		}

		c.JSON(http.StatusOK, state)
	}
}

// NewICalFeedHandler serves the team-calendar feed for the saved setup.
func NewICalFeedHandler(svc setup.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := middleware.DeviceID(c)
		feed, err := svc.ICalFeed(c.Request.Context(), deviceID)
		if err != nil {
			var unavailableErr setup.ICalUnavailableError
			if errors.As(err, &unavailableErr) {
				c.JSON(http.StatusForbidden, gin.H{"error": unavailableErr.Error()})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		c.Header("Content-Disposition", `attachment; filename="themenwochen.ics"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
	}
}
