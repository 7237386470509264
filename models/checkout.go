// models/checkout.go
package models

// CheckoutRequest is the body of POST /api/checkout.
type CheckoutRequest struct {
	Plan  PlanTier `json:"plan"`
	Email string   `json:"email,omitempty"`
}

// CheckoutResponse carries the hosted payment page URL to redirect to.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// CheckoutOutcome is the payment result signalled by the return redirect.
type CheckoutOutcome string

const (
	CheckoutSuccess CheckoutOutcome = "success"
	CheckoutCancel  CheckoutOutcome = "cancel"
)

// ReturnQuery is the typed form of the return-redirect query parameters.
// All indicators are optional and independently present.
type ReturnQuery struct {
	CheckoutOutcome        *CheckoutOutcome
	PasswordResetRequested bool
	ConfirmEmailRequested  bool
	Email                  string
}

// NoticeKind labels a user-facing notice produced by return reconciliation.
type NoticeKind string

const (
	NoticePasswordReset   NoticeKind = "password-reset"
	NoticeCheckoutSuccess NoticeKind = "checkout-success"
	NoticeCheckoutCancel  NoticeKind = "checkout-cancel"
	NoticeConfirmEmail    NoticeKind = "confirm-email"
)

// Notice is a single inline message to display on the return page.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// ReturnResult is the outcome of reconciling a return redirect.
type ReturnResult struct {
	Paid          bool     `json:"paid"`
	Notices       []Notice `json:"notices"`
	StrippedQuery string   `json:"strippedQuery"`
}
