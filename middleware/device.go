package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// DeviceCookieName carries the browser-scoped device identifier. All
	// decision-store keys are namespaced by this value.
	DeviceCookieName = "tw_device"

	deviceContextKey = "deviceID"

	// One year, in seconds. Decisions are meant to survive ordinary visits.
	deviceCookieMaxAge = 365 * 24 * 60 * 60
)

// DeviceIdentityMiddleware resolves the caller's device ID: explicit
// X-Device-ID header first (API clients), then the device cookie, otherwise a
// fresh identifier is minted and set as a cookie so subsequent requests from
// the same browser land on the same decision-store namespace.
func DeviceIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader("X-Device-ID")
		if deviceID == "" {
			if cookie, err := c.Cookie(DeviceCookieName); err == nil && cookie != "" {
				deviceID = cookie
			}
		}
		if deviceID == "" {
			deviceID = uuid.New().String()
			c.SetCookie(DeviceCookieName, deviceID, deviceCookieMaxAge, "/", "", false, true)
		}

		c.Set(deviceContextKey, deviceID)
		c.Next()
	}
}

// DeviceID returns the device identifier resolved by DeviceIdentityMiddleware.
func DeviceID(c *gin.Context) string {
	if v, ok := c.Get(deviceContextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
