package checkout

import (
	"context"
	"net/url"
	"time"

	"themeweek/models"
	"themeweek/services/decision"

	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

// Service coordinates the external payment redirect. The two operations are
// independent entry points: StartCheckout ends in a full-page
// navigation away from the app, ReconcileReturn runs on the next page load of
// the return URL. Any continuity between them goes through the decision store.
type Service interface {
	// StartCheckout validates consent, persists the plan choice and email to
	// the decision store, creates a hosted checkout session and returns its
	// redirect URL. With consent missing it fails before any network call.
	StartCheckout(ctx context.Context, deviceID string, req models.CheckoutRequest) (string, error)

	// ReconcileReturn processes the return redirect's query parameters once:
	// password-reset first, then checkout outcome, then email confirmation.
	// It returns the notices to display, the paid flag for the current render
	// and the query string with the transient indicators stripped.
	ReconcileReturn(ctx context.Context, deviceID string, query url.Values) models.ReturnResult
}

// sessionCreator creates a hosted checkout session. Injectable so tests can
// observe that no session is created when consent is missing.
type sessionCreator func(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)

// DefaultCheckoutService is the production implementation backed by Stripe
// Checkout and the decision store.
type DefaultCheckoutService struct {
	Store         decision.Store
	Logger        *zap.Logger
	SiteURL       string
	PriceID       func(plan string) string
	createSession sessionCreator
	now           func() time.Time
}
