// File: themeweek/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"themeweek/config"
	"themeweek/handlers"
	"themeweek/middleware"
	"themeweek/routes"
	"themeweek/services/account"
	"themeweek/services/checkout"
	"themeweek/services/content"
	"themeweek/services/decision"
	"themeweek/services/setup"
	"themeweek/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitDecisionStore()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// Services.
	contentService, err := content.NewDefaultContentService(config.AppConfig.EditionStartMonday)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load edition content: %v", err)
	}

	decisionTTL := time.Duration(config.AppConfig.DecisionTTLHours) * time.Hour
	decisionStore := decision.NewRedisStore(utils.GetDecisionClient(), logger, decisionTTL)
	checkoutService := checkout.NewDefaultCheckoutService(
		decisionStore,
		logger,
		config.AppConfig.SiteURL,
		config.StripePriceID,
	)
	setupService := setup.NewDefaultSetupService(decisionStore, contentService, logger)

	authClient := account.NewHTTPAuthClient(config.AppConfig.AuthBaseURL, config.AppConfig.AuthAPIKey)
	accountService := account.NewDefaultAccountService(authClient, decisionStore, logger, config.AppConfig.SiteURL)

	sessionGate := middleware.NewSessionGate(
		authClient,
		accountService.Events(),
		utils.GetSessionCacheClient(),
		logger,
		config.PublicPrefixes(),
	)
	defer sessionGate.Close()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Content endpoints.
		GetTodayHandler: handlers.NewGetTodayHandler(contentService),
		GetWeekHandler:  handlers.NewGetWeekHandler(contentService),

		// Decision-store endpoints.
		GetConsentHandler: handlers.NewGetConsentHandler(decisionStore),
		PutConsentHandler: handlers.NewPutConsentHandler(decisionStore),
		GetPlanHandler:    handlers.NewGetPlanHandler(decisionStore),
		PutPlanHandler:    handlers.NewPutPlanHandler(decisionStore),
		GetModeHandler:    handlers.NewGetModeHandler(decisionStore),
		PutModeHandler:    handlers.NewPutModeHandler(decisionStore),

		// Checkout endpoints.
		StartCheckoutHandler:  handlers.NewStartCheckoutHandler(checkoutService),
		CheckoutReturnHandler: handlers.NewCheckoutReturnHandler(checkoutService),

		// Setup wizard endpoints.
		GetSetupHandler:   handlers.NewGetSetupHandler(setupService),
		SaveSetupHandler:  handlers.NewSaveSetupHandler(setupService),
		ChangePlanHandler: handlers.NewChangePlanHandler(setupService),
		ICalFeedHandler:   handlers.NewICalFeedHandler(setupService),

		// Account endpoints.
		SignUpHandler:         handlers.NewSignUpHandler(accountService),
		SignInHandler:         handlers.NewSignInHandler(accountService),
		ForgotPasswordHandler: handlers.NewForgotPasswordHandler(accountService),
		SessionHandler:        handlers.NewSessionHandler(accountService),
		SignOutHandler:        handlers.NewSignOutHandler(accountService),

		// Ops.
		HealthHandler: handlers.NewHealthHandler(),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, sessionGate)

	// Background dependency monitoring.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetDecisionClient(), utils.GetSessionCacheClient()},
		config.AppConfig.AuthBaseURL+"/auth/v1/health",
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
