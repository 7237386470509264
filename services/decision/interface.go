package decision

import (
	"context"

	"themeweek/models"
)

// Store is the device-scoped decision store: the durable key-value state a
// visitor accumulates across pages and external redirects (consent flags,
// selected plan, checkout email, paid flag, setup parameters, app mode).
//
// Reads never fail: a missing or unreadable value yields the safe zero
// default. Writes are best-effort: a storage failure is swallowed and the
// write silently no-ops, since none of this state is safety-critical.
// Each key is independent, last-write-wins; there is no cross-key atomicity.
type Store interface {
	Consent(ctx context.Context, deviceID string) models.ConsentState
	SetConsent(ctx context.Context, deviceID string, v models.ConsentState)

	SelectedPlan(ctx context.Context, deviceID string) models.PlanTier
	SetSelectedPlan(ctx context.Context, deviceID string, v models.PlanTier)

	CheckoutEmail(ctx context.Context, deviceID string) string
	SetCheckoutEmail(ctx context.Context, deviceID string, v string)

	Paid(ctx context.Context, deviceID string) bool
	SetPaid(ctx context.Context, deviceID string, v bool)

	Setup(ctx context.Context, deviceID string) (models.SetupState, bool)
	SetSetup(ctx context.Context, deviceID string, v models.SetupState)

	AppMode(ctx context.Context, deviceID string) models.AppMode
	SetAppMode(ctx context.Context, deviceID string, v models.AppMode)
}

// Namespaced key prefixes, one per decision-store field. The trailing version
// segment mirrors the storefront's original storage names.
const (
	consentKeyPrefix = "decision:consent:v1:"
	planKeyPrefix    = "decision:plan:v1:"
	emailKeyPrefix   = "decision:checkoutEmail:v1:"
	paidKeyPrefix    = "decision:paid:v1:"
	setupKeyPrefix   = "decision:themeSetup:v1:"
	modeKeyPrefix    = "decision:appMode:v1:"
)
