package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"themeweek/middleware"
	"themeweek/models"
	"themeweek/services/checkout"
	"themeweek/services/content"
	"themeweek/services/decision"
	"themeweek/services/setup"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.DeviceIdentityMiddleware())
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Device-ID", "device-1")
	router.ServeHTTP(w, req)
	return w
}

func TestGetTodayHandler(t *testing.T) {
	svc, err := content.NewDefaultContentService("2025-09-01")
	require.NoError(t, err)

	router := newRouter()
	router.GET("/api/content/today", NewGetTodayHandler(svc))

	w := doJSON(router, http.MethodGet, "/api/content/today", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "weekIndex")
}

func TestGetWeekHandler(t *testing.T) {
	svc, err := content.NewDefaultContentService("2025-09-01")
	require.NoError(t, err)

	router := newRouter()
	router.GET("/api/content/weeks/:index", NewGetWeekHandler(svc))

	w := doJSON(router, http.MethodGet, "/api/content/weeks/0", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/content/weeks/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(router, http.MethodGet, "/api/content/weeks/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConsentRoundTrip(t *testing.T) {
	store := decision.NewMemoryStore()
	router := newRouter()
	router.GET("/api/state/consent", NewGetConsentHandler(store))
	router.PUT("/api/state/consent", NewPutConsentHandler(store))

	w := doJSON(router, http.MethodGet, "/api/state/consent", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"acceptTerms":false`)

	w = doJSON(router, http.MethodPut, "/api/state/consent", `{"acceptTerms":true,"acceptPrivacy":true}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/state/consent", "")
	assert.Contains(t, w.Body.String(), `"acceptTerms":true`)
}

func TestPutPlanRejectsUnknownTier(t *testing.T) {
	store := decision.NewMemoryStore()
	router := newRouter()
	router.PUT("/api/state/plan", NewPutPlanHandler(store))

	w := doJSON(router, http.MethodPut, "/api/state/plan", `{"plan":"X"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, "/api/state/plan", `{"plan":"B"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PlanB, store.SelectedPlan(context.Background(), "device-1"))
}

func TestPutModeRejectsUnknownMode(t *testing.T) {
	store := decision.NewMemoryStore()
	router := newRouter()
	router.PUT("/api/state/mode", NewPutModeHandler(store))

	w := doJSON(router, http.MethodPut, "/api/state/mode", `{"mode":"premium"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, "/api/state/mode", `{"mode":"full"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

// fakeCheckoutService answers with canned results.
type fakeCheckoutService struct {
	startErr    error
	startURL    string
	startCalls  int
	returnCalls int
}

func (f *fakeCheckoutService) StartCheckout(context.Context, string, models.CheckoutRequest) (string, error) {
	f.startCalls++
	if f.startErr != nil {
		return "", f.startErr
	}
	return f.startURL, nil
}

func (f *fakeCheckoutService) ReconcileReturn(context.Context, string, url.Values) models.ReturnResult {
	f.returnCalls++
	return models.ReturnResult{Paid: true, StrippedQuery: "email=a%40b.de"}
}

func TestStartCheckoutHandlerStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"consent missing", checkout.ConsentRequiredError{}, http.StatusConflict},
		{"unknown plan", checkout.UnknownPlanError{Plan: "X"}, http.StatusBadRequest},
		{"provider failure", checkout.SessionError{}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeCheckoutService{startErr: tc.err}
			router := newRouter()
			router.POST("/api/checkout", NewStartCheckoutHandler(svc))

			w := doJSON(router, http.MethodPost, "/api/checkout", `{"plan":"A"}`)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

func TestStartCheckoutHandlerSuccess(t *testing.T) {
	svc := &fakeCheckoutService{startURL: "https://pay.example/cs_123"}
	router := newRouter()
	router.POST("/api/checkout", NewStartCheckoutHandler(svc))

	w := doJSON(router, http.MethodPost, "/api/checkout", `{"plan":"A","email":"a@b.de"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://pay.example/cs_123")
}

func TestCheckoutReturnHandler(t *testing.T) {
	svc := &fakeCheckoutService{}
	router := newRouter()
	router.GET("/api/checkout/return", NewCheckoutReturnHandler(svc))

	w := doJSON(router, http.MethodGet, "/api/checkout/return?checkout=success", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"paid":true`)
	assert.Equal(t, 1, svc.returnCalls)
}

func newSetupRouter(t *testing.T) (*gin.Engine, decision.Store) {
	t.Helper()
	contentSvc, err := content.NewDefaultContentService("2025-09-01")
	require.NoError(t, err)

	store := decision.NewMemoryStore()
	svc := setup.NewDefaultSetupService(store, contentSvc, zap.NewNop())

	router := newRouter()
	router.GET("/api/setup", NewGetSetupHandler(svc))
	router.POST("/api/setup", NewSaveSetupHandler(svc))
	router.PUT("/api/setup/plan", NewChangePlanHandler(svc))
	router.GET("/api/setup/ical", NewICalFeedHandler(svc))
	return router, store
}

func TestSetupHandlers(t *testing.T) {
	router, _ := newSetupRouter(t)

	w := doJSON(router, http.MethodGet, "/api/setup", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	body := `{"weeksCount":4,"startMonday":"2026-02-03","mode":"manual","selectedLicenseTier":"A"}`
	w = doJSON(router, http.MethodPost, "/api/setup", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "Tuesday start must be rejected")

	body = `{"weeksCount":4,"startMonday":"2026-02-02","mode":"manual","selectedLicenseTier":"A"}`
	w = doJSON(router, http.MethodPost, "/api/setup", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/setup", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"weeksCount":4`)
}

func TestICalFeedHandlerGating(t *testing.T) {
	router, _ := newSetupRouter(t)

	body := `{"weeksCount":2,"startMonday":"2026-02-02","mode":"manual","selectedLicenseTier":"A"}`
	w := doJSON(router, http.MethodPost, "/api/setup", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/setup/ical", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	body = `{"weeksCount":2,"startMonday":"2026-02-02","mode":"manual","selectedLicenseTier":"C","icalEnabled":true}`
	w = doJSON(router, http.MethodPost, "/api/setup", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/setup/ical", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
}
