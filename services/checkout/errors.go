package checkout

// ConsentRequiredError signals that checkout was refused before any network
// call because the consent flags are not both set.
type ConsentRequiredError struct{}

func (ConsentRequiredError) Error() string {
	return "Bitte bestätige zuerst AGB und Datenschutzhinweise."
}

// UnknownPlanError signals a plan identifier with no configured price.
type UnknownPlanError struct {
	Plan string
}

func (e UnknownPlanError) Error() string {
	return "Unknown plan: " + e.Plan
}

// SessionError wraps a failure from the hosted payment provider. Message is
// the provider's text when available, otherwise a generic fallback.
type SessionError struct {
	Message string
}

func (e SessionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Checkout konnte nicht gestartet werden."
}
