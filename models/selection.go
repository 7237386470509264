// models/selection.go
package models

import "time"

// PlanTier is one of the three purchasable licence variants.
type PlanTier string

const (
	PlanA PlanTier = "A"
	PlanB PlanTier = "B"
	PlanC PlanTier = "C"
)

// Valid reports whether t is a known plan tier.
func (t PlanTier) Valid() bool {
	return t == PlanA || t == PlanB || t == PlanC
}

// AppMode distinguishes the free field-test flow from the full licensed flow.
type AppMode string

const (
	AppModeFree AppMode = "free"
	AppModeFull AppMode = "full"
)

// Valid reports whether m is a known app mode.
func (m AppMode) Valid() bool {
	return m == AppModeFree || m == AppModeFull
}

// ConsentState holds the two independent acknowledgments gating checkout and
// account actions.
type ConsentState struct {
	AcceptTerms   bool `json:"acceptTerms"`
	AcceptPrivacy bool `json:"acceptPrivacy"`
}

// Ok reports whether both consent flags are set.
func (c ConsentState) Ok() bool {
	return c.AcceptTerms && c.AcceptPrivacy
}

// SetupState is the finalized wizard configuration consumed by the
// theme-selection screen.
type SetupState struct {
	Edition             int       `json:"edition"`
	WeeksCount          int       `json:"weeksCount"`
	StartMonday         string    `json:"startMonday"`
	Mode                string    `json:"mode"`
	SelectedLicenseTier PlanTier  `json:"selectedLicenseTier"`
	ICalEnabled         bool      `json:"icalEnabled"`
	CreatedAt           time.Time `json:"createdAt"`
}

// SetupRequest carries the wizard input before validation.
type SetupRequest struct {
	WeeksCount          int      `json:"weeksCount"`
	StartMonday         string   `json:"startMonday"`
	Mode                string   `json:"mode"`
	SelectedLicenseTier PlanTier `json:"selectedLicenseTier"`
	ICalEnabled         bool     `json:"icalEnabled"`
}
