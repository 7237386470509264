package checkout

import (
	"context"
	"fmt"
	"net/url"

	"themeweek/models"
)

// Return-redirect query parameters recognized by the coordinator.
const (
	paramCheckout = "checkout"
	paramPwReset  = "pwreset"
	paramNotice   = "notice"
	paramEmail    = "email"

	noticeConfirmEmail = "confirm-email"
)

// User-facing notice texts.
const (
	msgPasswordReset   = "Du kannst jetzt ein neues Passwort setzen. Bitte melde dich danach mit dem neuen Passwort an."
	msgCheckoutSuccess = "Zahlung erfolgreich. 🎉 Jetzt kannst du dein Konto anlegen."
	msgCheckoutCancel  = "Zahlung abgebrochen. Du kannst es jederzeit erneut versuchen."
	msgConfirmEmail    = "Bitte bestätige deine E-Mail-Adresse."
)

// ParseReturnQuery converts the raw return-redirect query into its typed
// form. Unrecognized parameters are ignored; all indicators are independent.
func ParseReturnQuery(query url.Values) models.ReturnQuery {
	var q models.ReturnQuery

	switch query.Get(paramCheckout) {
	case string(models.CheckoutSuccess):
		outcome := models.CheckoutSuccess
		q.CheckoutOutcome = &outcome
	case string(models.CheckoutCancel):
		outcome := models.CheckoutCancel
		q.CheckoutOutcome = &outcome
	}

	q.PasswordResetRequested = query.Get(paramPwReset) == "1"
	q.ConfirmEmailRequested = query.Get(paramNotice) == noticeConfirmEmail
	q.Email = query.Get(paramEmail)

	return q
}

// stripRecognized removes the transient indicators from the query while
// preserving the email parameter for prefill, and returns the encoded rest.
func stripRecognized(query url.Values) string {
	stripped := url.Values{}
	for key, vals := range query {
		switch key {
		case paramCheckout, paramPwReset, paramNotice:
			// handled, drop from the visible URL
		default:
			stripped[key] = vals
		}
	}
	return stripped.Encode()
}

// ReconcileReturn handles the outcome of an external redirect back into the
// app. Indicators are processed in a fixed order (password-reset, checkout
// outcome, email confirmation) and all resulting notices are returned.
// Idempotent: re-running with the stripped query yields no notices and no
// store mutation.
func (s *DefaultCheckoutService) ReconcileReturn(ctx context.Context, deviceID string, query url.Values) models.ReturnResult {
	q := ParseReturnQuery(query)

	result := models.ReturnResult{
		Paid:          s.Store.Paid(ctx, deviceID),
		StrippedQuery: stripRecognized(query),
	}

	if q.PasswordResetRequested {
		result.Notices = append(result.Notices, models.Notice{
			Kind:    models.NoticePasswordReset,
			Message: msgPasswordReset,
		})
	}

	if q.CheckoutOutcome != nil {
		switch *q.CheckoutOutcome {
		case models.CheckoutSuccess:
			// Reaching the success URL implies consent was given at
			// initiation; record both flags again.
			s.Store.SetPaid(ctx, deviceID, true)
			s.Store.SetConsent(ctx, deviceID, models.ConsentState{
				AcceptTerms:   true,
				AcceptPrivacy: true,
			})
			result.Paid = true
			result.Notices = append(result.Notices, models.Notice{
				Kind:    models.NoticeCheckoutSuccess,
				Message: msgCheckoutSuccess,
			})
		case models.CheckoutCancel:
			s.Store.SetPaid(ctx, deviceID, false)
			result.Paid = false
			result.Notices = append(result.Notices, models.Notice{
				Kind:    models.NoticeCheckoutCancel,
				Message: msgCheckoutCancel,
			})
		}
	}

	if q.ConfirmEmailRequested {
		email := q.Email
		if email == "" {
			email = s.Store.CheckoutEmail(ctx, deviceID)
		}
		msg := msgConfirmEmail
		if email != "" {
			msg = fmt.Sprintf("%s (%s)", msgConfirmEmail, email)
		}
		result.Notices = append(result.Notices, models.Notice{
			Kind:    models.NoticeConfirmEmail,
			Message: msg,
		})
	}

	return result
}
