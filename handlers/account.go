package handlers

import (
	"errors"
	"net/http"

	"themeweek/middleware"
	"themeweek/models"
	"themeweek/services/account"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// accountErrorStatus maps an account-service failure to its HTTP status.
func accountErrorStatus(err error) int {
	var consentErr account.ConsentRequiredError
	var payErr account.PaymentRequiredError
	var inputErr account.MissingInputError
	var authErr account.AuthServiceError
	switch {
	case errors.As(err, &consentErr), errors.As(err, &payErr):
		return http.StatusConflict
	case errors.As(err, &inputErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &authErr):
		if authErr.Status >= 400 && authErr.Status <= 599 {
			return authErr.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewSignUpHandler creates an account with the hosted auth service. Gated on
// consent and the paid flag; the gate runs before any remote call.
func NewSignUpHandler(svc account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid sign-up request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		deviceID := middleware.DeviceID(c)
		msg, err := svc.SignUp(c.Request.Context(), deviceID, req.Email, req.Password)
		if err != nil {
			c.JSON(accountErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": msg})
	}
}

// NewSignInHandler performs a password sign-in and sets the session cookie
// alongside the token response.
func NewSignInHandler(svc account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.CredentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid sign-in request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		deviceID := middleware.DeviceID(c)
		session, err := svc.SignIn(c.Request.Context(), deviceID, req.Email, req.Password)
		if err != nil {
			c.JSON(accountErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.SetCookie(middleware.SessionCookieName, session.AccessToken, session.ExpiresIn, "/", "", false, true)
		c.JSON(http.StatusOK, session)
	}
}

// NewForgotPasswordHandler sends the password-recovery mail.
func NewForgotPasswordHandler(svc account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var req models.ResetPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Error("Invalid reset-password request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		deviceID := middleware.DeviceID(c)
		msg, err := svc.ForgotPassword(c.Request.Context(), deviceID, req.Email)
		if err != nil {
			c.JSON(accountErrorStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msg})
	}
}

// NewSessionHandler reports the current session, 401 when there is none.
func NewSessionHandler(svc account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionTokenFromRequest(c)
		info, err := svc.Session(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
			return
		}
		c.JSON(http.StatusOK, info)
	}
}

// NewSignOutHandler revokes the session remotely and clears the cookie.
func NewSignOutHandler(svc account.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		token := sessionTokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
			return
		}

		if err := svc.SignOut(c.Request.Context(), token); err != nil {
			logger.Warn("Sign-out failed", zap.Error(err))
			c.JSON(accountErrorStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Abgemeldet."})
	}
}

// sessionTokenFromRequest reads the access token from the Authorization
// header or the session cookie.
func sessionTokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		return cookie
	}
	return ""
}
