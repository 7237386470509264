package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Content endpoints
	GetTodayHandler gin.HandlerFunc
	GetWeekHandler  gin.HandlerFunc

	// Decision-store endpoints
	GetConsentHandler gin.HandlerFunc
	PutConsentHandler gin.HandlerFunc
	GetPlanHandler    gin.HandlerFunc
	PutPlanHandler    gin.HandlerFunc
	GetModeHandler    gin.HandlerFunc
	PutModeHandler    gin.HandlerFunc

	// Checkout endpoints
	StartCheckoutHandler  gin.HandlerFunc
	CheckoutReturnHandler gin.HandlerFunc

	// Setup wizard endpoints
	GetSetupHandler   gin.HandlerFunc
	SaveSetupHandler  gin.HandlerFunc
	ChangePlanHandler gin.HandlerFunc
	ICalFeedHandler   gin.HandlerFunc

	// Account endpoints
	SignUpHandler         gin.HandlerFunc
	SignInHandler         gin.HandlerFunc
	ForgotPasswordHandler gin.HandlerFunc
	SessionHandler        gin.HandlerFunc
	SignOutHandler        gin.HandlerFunc

	// Ops
	HealthHandler gin.HandlerFunc
}
