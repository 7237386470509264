package checkout

import (
	"context"
	"time"

	"themeweek/models"
	"themeweek/services/decision"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// NewDefaultCheckoutService wires the production service. priceID maps a plan
// identifier to its Stripe price; siteURL is the public origin the payment
// host redirects back to.
func NewDefaultCheckoutService(store decision.Store, logger *zap.Logger, siteURL string, priceID func(plan string) string) *DefaultCheckoutService {
	return &DefaultCheckoutService{
		Store:         store,
		Logger:        logger,
		SiteURL:       siteURL,
		PriceID:       priceID,
		createSession: session.New,
		now:           time.Now,
	}
}

// StartCheckout initiates the external payment flow. Order matters: the plan
// choice and email are persisted before the session is created, because the
// return redirect lands on a fresh page load with empty in-memory state.
func (s *DefaultCheckoutService) StartCheckout(ctx context.Context, deviceID string, req models.CheckoutRequest) (string, error) {
	consent := s.Store.Consent(ctx, deviceID)
	if !consent.Ok() {
		return "", ConsentRequiredError{}
	}

	priceID := s.PriceID(string(req.Plan))
	if priceID == "" {
		return "", UnknownPlanError{Plan: string(req.Plan)}
	}

	s.Store.SetSelectedPlan(ctx, deviceID, req.Plan)
	if req.Email != "" {
		s.Store.SetCheckoutEmail(ctx, deviceID, req.Email)
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.SiteURL + "/account?checkout=success"),
		CancelURL:  stripe.String(s.SiteURL + "/account?checkout=cancel"),
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}

	sess, err := s.createSession(params)
	if err != nil {
		s.Logger.Error("checkout session creation failed",
			zap.String("plan", string(req.Plan)), zap.Error(err))
		if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Msg != "" {
			return "", SessionError{Message: stripeErr.Msg}
		}
		return "", SessionError{}
	}
	if sess.URL == "" {
		s.Logger.Error("checkout session has no redirect URL", zap.String("plan", string(req.Plan)))
		return "", SessionError{}
	}

	s.Logger.Info("checkout session created",
		zap.String("plan", string(req.Plan)), zap.String("session", sess.ID))
	return sess.URL, nil
}
