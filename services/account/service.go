package account

import (
	"context"
	"strings"

	"themeweek/models"
	"themeweek/utils"

	"go.uber.org/zap"
)

// User-facing messages for the account flows.
const (
	msgMissingCredentials = "Bitte E-Mail und Passwort eingeben."
	msgMissingEmail       = "Bitte gib zuerst deine E-Mail-Adresse ein."
	msgSignedUp           = "Konto erstellt. Bitte prüfe ggf. dein E-Mail-Postfach zur Bestätigung."
	msgRecoverySent       = "E-Mail zum Zurücksetzen wurde versendet (bitte Postfach/Spam prüfen)."
	msgInvalidLogin       = "Anmelden nicht möglich: Es gibt noch kein Konto mit diesen Daten oder das Passwort stimmt nicht."
)

// Events returns the session-change hub.
func (s *DefaultAccountService) Events() *Hub {
	return s.hub
}

// SignUp creates the remote account. It is gated twice: on consent and on the
// device's paid flag, both checked before any call to the auth service.
func (s *DefaultAccountService) SignUp(ctx context.Context, deviceID, email, password string) (string, error) {
	if !s.Store.Consent(ctx, deviceID).Ok() {
		return "", ConsentRequiredError{}
	}
	if !s.Store.Paid(ctx, deviceID) {
		return "", PaymentRequiredError{}
	}
	if email == "" || password == "" {
		return "", MissingInputError{Message: msgMissingCredentials}
	}

	account, err := s.Client.SignUp(ctx, email, password)
	if err != nil {
		s.Logger.Warn("sign-up failed", zap.String("email", email), zap.Error(err))
		return "", err
	}

	s.Store.SetCheckoutEmail(ctx, deviceID, email)
	s.Logger.Info("account created", zap.String("accountId", account.ID))
	return msgSignedUp, nil
}

// SignIn performs a password sign-in. Invalid-credential failures are mapped
// to a friendlier message; other auth-service errors pass through verbatim.
func (s *DefaultAccountService) SignIn(ctx context.Context, deviceID, email, password string) (*models.RemoteSession, error) {
	if !s.Store.Consent(ctx, deviceID).Ok() {
		return nil, ConsentRequiredError{}
	}
	if email == "" || password == "" {
		return nil, MissingInputError{Message: msgMissingCredentials}
	}

	session, err := s.Client.SignInWithPassword(ctx, email, password)
	if err != nil {
		if authErr, ok := err.(AuthServiceError); ok &&
			strings.Contains(strings.ToLower(authErr.Message), "invalid login credentials") {
			return nil, AuthServiceError{Status: authErr.Status, Message: msgInvalidLogin}
		}
		return nil, err
	}

	s.hub.Publish(SessionEvent{Type: SessionSignedIn, UserID: session.User.ID})
	return session, nil
}

// ForgotPassword sends the recovery mail. The redirect target carries the
// pwreset indicator so the return lands back on the account page with the
// password-reset notice.
func (s *DefaultAccountService) ForgotPassword(ctx context.Context, deviceID, email string) (string, error) {
	if email == "" {
		return "", MissingInputError{Message: msgMissingEmail}
	}
	if !s.Store.Consent(ctx, deviceID).Ok() {
		return "", ConsentRequiredError{}
	}

	redirectTo := s.SiteURL + "/account?pwreset=1"
	if err := s.Client.ResetPasswordForEmail(ctx, email, redirectTo); err != nil {
		return "", err
	}
	return msgRecoverySent, nil
}

// Session validates the access token locally (signature and expiry) and
// returns the session view. No call to the auth service is made here; the
// gate middleware decides when a remote re-check is warranted.
func (s *DefaultAccountService) Session(ctx context.Context, accessToken string) (*models.SessionInfo, error) {
	if accessToken == "" {
		return nil, AuthServiceError{Status: 401, Message: "no session"}
	}
	claims, err := utils.ExtractSessionClaims(accessToken)
	if err != nil {
		return nil, AuthServiceError{Status: 401, Message: "no session"}
	}
	return &models.SessionInfo{
		UserID:    claims.UserID,
		Email:     claims.Email,
		ExpiresAt: claims.Expiry,
	}, nil
}

// SignOut revokes the session remotely and notifies subscribers so the gate
// re-applies its redirect policy.
func (s *DefaultAccountService) SignOut(ctx context.Context, accessToken string) error {
	var userID string
	if claims, err := utils.ExtractSessionClaims(accessToken); err == nil {
		userID = claims.UserID
	}

	if err := s.Client.SignOut(ctx, accessToken); err != nil {
		s.Logger.Warn("sign-out failed", zap.Error(err))
		return err
	}

	s.hub.Publish(SessionEvent{Type: SessionSignedOut, UserID: userID})
	return nil
}
