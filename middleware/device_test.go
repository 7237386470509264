package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeviceRouter() (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	var seen string
	router := gin.New()
	router.Use(DeviceIdentityMiddleware())
	router.GET("/", func(c *gin.Context) {
		seen = DeviceID(c)
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestDeviceIdentityPrefersHeader(t *testing.T) {
	router, seen := newDeviceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Device-ID", "header-device")
	req.AddCookie(&http.Cookie{Name: DeviceCookieName, Value: "cookie-device"})
	router.ServeHTTP(w, req)

	assert.Equal(t, "header-device", *seen)
}

func TestDeviceIdentityFallsBackToCookie(t *testing.T) {
	router, seen := newDeviceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DeviceCookieName, Value: "cookie-device"})
	router.ServeHTTP(w, req)

	assert.Equal(t, "cookie-device", *seen)
}

func TestDeviceIdentityMintsAndSetsCookie(t *testing.T) {
	router, seen := newDeviceRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	_, err := uuid.Parse(*seen)
	require.NoError(t, err, "minted device IDs are UUIDs")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	var found bool
	for _, ck := range cookies {
		if ck.Name == DeviceCookieName {
			found = true
			assert.Equal(t, *seen, ck.Value)
		}
	}
	assert.True(t, found, "device cookie must be set for fresh visitors")
}
