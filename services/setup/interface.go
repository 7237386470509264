package setup

import (
	"context"
	"time"

	"themeweek/models"
	"themeweek/services/content"
	"themeweek/services/decision"

	"go.uber.org/zap"
)

// Service collects and validates the wizard configuration and persists the
// finalized setup for the downstream theme-selection screen.
type Service interface {
	// Current returns the saved setup, if any.
	Current(ctx context.Context, deviceID string) (models.SetupState, bool)

	// Save validates req (first failure wins, nothing persisted on rejection)
	// and stores the finalized setup with edition number and creation time.
	Save(ctx context.Context, deviceID string, req models.SetupRequest) (models.SetupState, error)

	// ChangePlanPreference updates the plan preference. Switching away from
	// plan C eagerly resets the iCal preference as part of the same action.
	ChangePlanPreference(ctx context.Context, deviceID string, plan models.PlanTier) (models.SetupState, error)

	// ICalFeed renders the team-calendar feed for the saved setup. Only
	// available when the saved plan is C with iCal enabled.
	ICalFeed(ctx context.Context, deviceID string) (string, error)
}

// ValidationError is a rejected wizard input with its user-facing message.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ICalUnavailableError signals an iCal request outside plan C.
type ICalUnavailableError struct{}

func (ICalUnavailableError) Error() string {
	return "Die Teamkalender/iCal-Funktion ist nur in Variante C enthalten."
}

// DefaultSetupService is the production implementation.
type DefaultSetupService struct {
	Store   decision.Store
	Content content.ContentService
	Logger  *zap.Logger
	now     func() time.Time
}

func NewDefaultSetupService(store decision.Store, contentSvc content.ContentService, logger *zap.Logger) *DefaultSetupService {
	return &DefaultSetupService{
		Store:   store,
		Content: contentSvc,
		Logger:  logger,
		now:     time.Now,
	}
}
