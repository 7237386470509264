package routes

import (
	"time"

	"themeweek/handlers"
	"themeweek/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterContentRoutes registers the public content endpoints.
func RegisterContentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/content")
	{
		api.GET("/today", hb.GetTodayHandler)
		api.GET("/weeks/:index", hb.GetWeekHandler)
	}
}

// RegisterStateRoutes registers the decision-store endpoints.
func RegisterStateRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/state")
	{
		api.GET("/consent", hb.GetConsentHandler)
		api.PUT("/consent", hb.PutConsentHandler)
		api.GET("/plan", hb.GetPlanHandler)
		api.PUT("/plan", hb.PutPlanHandler)
		api.GET("/mode", hb.GetModeHandler)
		api.PUT("/mode", hb.PutModeHandler)
	}
}

// RegisterCheckoutRoutes registers checkout initiation and return handling.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/checkout")
	{
		api.POST("", hb.StartCheckoutHandler)
		api.GET("/return", hb.CheckoutReturnHandler)
	}
}

// RegisterSetupRoutes registers the setup wizard and the iCal feed.
func RegisterSetupRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/setup")
	{
		api.GET("", hb.GetSetupHandler)
		api.POST("", hb.SaveSetupHandler)
		api.PUT("/plan", hb.ChangePlanHandler)
		api.GET("/ical", hb.ICalFeedHandler)
	}
}

// RegisterAccountRoutes registers the account endpoints.
func RegisterAccountRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/account")
	{
		api.POST("/signup", hb.SignUpHandler)
		api.POST("/login", hb.SignInHandler)
		api.POST("/reset-password", hb.ForgotPasswordHandler)
		api.GET("/session", hb.SessionHandler)
		api.POST("/logout", hb.SignOutHandler)
	}
}

// RegisterThemeRoutes registers the member-only theme-selection endpoints
// behind the session gate.
func RegisterThemeRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gate *middleware.SessionGate) {
	api := r.Group("/api/themes")
	{
		api.Use(gate.Middleware())
		api.GET("/today", hb.GetTodayHandler)
		api.GET("/weeks/:index", hb.GetWeekHandler)
		api.GET("/setup", hb.GetSetupHandler)
		api.GET("/setup/ical", hb.ICalFeedHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gate *middleware.SessionGate) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Device-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.DeviceIdentityMiddleware())

	RegisterContentRoutes(r, hb)
	RegisterStateRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterSetupRoutes(r, hb)
	RegisterAccountRoutes(r, hb)
	RegisterThemeRoutes(r, hb, gate)
	RegisterHealthRoute(r, hb)
}
