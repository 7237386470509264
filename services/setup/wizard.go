package setup

import (
	"context"
	"time"

	"themeweek/models"

	"go.uber.org/zap"
)

const currentEdition = 1

// Validation messages, matching the wizard UI texts.
const (
	msgInvalidStartDate = "Bitte ein gültiges Startdatum auswählen."
	msgNotAMonday       = "Das Startdatum muss ein Montag sein."
	msgInvalidMode      = "Bitte einen gültigen Modus wählen (manuell oder zufällig)."
	msgInvalidPlan      = "Bitte eine gültige Variante wählen (A, B oder C)."
)

// parseISODate accepts only a plain 10-character ISO date.
func parseISODate(iso string) (time.Time, bool) {
	if len(iso) != 10 {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsMonday reports whether the ISO date falls on a Monday.
func IsMonday(iso string) bool {
	d, ok := parseISODate(iso)
	return ok && d.Weekday() == time.Monday
}

// NextMonday returns the next Monday strictly after the given day, as an ISO
// date. A Monday input yields the Monday one week later.
func NextMonday(from time.Time) string {
	day := int(from.Weekday()) // Sunday = 0
	diff := (8 - day) % 7
	if diff == 0 {
		diff = 7
	}
	return from.AddDate(0, 0, diff).Format("2006-01-02")
}

// Current returns the saved setup, if any.
func (s *DefaultSetupService) Current(ctx context.Context, deviceID string) (models.SetupState, bool) {
	return s.Store.Setup(ctx, deviceID)
}

// Save validates the wizard input and persists the finalized setup. Checks
// run in a fixed order and the first failure wins: date parse, Monday rule,
// mode, plan. weeksCount is never rejected, it is clamped to a minimum of 1
// on input. The iCal preference only survives under plan C.
func (s *DefaultSetupService) Save(ctx context.Context, deviceID string, req models.SetupRequest) (models.SetupState, error) {
	if _, ok := parseISODate(req.StartMonday); !ok {
		return models.SetupState{}, ValidationError{Message: msgInvalidStartDate}
	}
	if !IsMonday(req.StartMonday) {
		return models.SetupState{}, ValidationError{Message: msgNotAMonday}
	}

	weeks := req.WeeksCount
	if weeks < 1 {
		weeks = 1
	}

	if req.Mode != "manual" && req.Mode != "random" {
		return models.SetupState{}, ValidationError{Message: msgInvalidMode}
	}
	if !req.SelectedLicenseTier.Valid() {
		return models.SetupState{}, ValidationError{Message: msgInvalidPlan}
	}

	state := models.SetupState{
		Edition:             currentEdition,
		WeeksCount:          weeks,
		StartMonday:         req.StartMonday,
		Mode:                req.Mode,
		SelectedLicenseTier: req.SelectedLicenseTier,
		ICalEnabled:         req.SelectedLicenseTier == models.PlanC && req.ICalEnabled,
		CreatedAt:           s.now(),
	}

	s.Store.SetSetup(ctx, deviceID, state)
	s.Store.SetSelectedPlan(ctx, deviceID, state.SelectedLicenseTier)

	s.Logger.Info("setup saved",
		zap.String("device", deviceID),
		zap.Int("weeks", state.WeeksCount),
		zap.String("startMonday", state.StartMonday),
		zap.String("mode", state.Mode))
	return state, nil
}

// ChangePlanPreference switches the stored plan preference. Moving away from
// plan C forces the iCal preference off in the same step, so no stale value
// survives a later switch back.
func (s *DefaultSetupService) ChangePlanPreference(ctx context.Context, deviceID string, plan models.PlanTier) (models.SetupState, error) {
	if !plan.Valid() {
		return models.SetupState{}, ValidationError{Message: msgInvalidPlan}
	}

	state, ok := s.Store.Setup(ctx, deviceID)
	if ok {
		state.SelectedLicenseTier = plan
		if plan != models.PlanC {
			state.ICalEnabled = false
		}
		s.Store.SetSetup(ctx, deviceID, state)
	}
	s.Store.SetSelectedPlan(ctx, deviceID, plan)

	return state, nil
}
