package setup

import (
	"context"
	"testing"
	"time"

	"themeweek/models"
	"themeweek/services/content"
	"themeweek/services/decision"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testDevice = "device-1"

func newTestSetupService(t *testing.T, store decision.Store) *DefaultSetupService {
	t.Helper()
	contentSvc, err := content.NewDefaultContentService("2025-09-01")
	require.NoError(t, err)

	svc := NewDefaultSetupService(store, contentSvc, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func validRequest() models.SetupRequest {
	return models.SetupRequest{
		WeeksCount:          4,
		StartMonday:         "2026-02-02", // a Monday
		Mode:                "manual",
		SelectedLicenseTier: models.PlanA,
	}
}

func TestSaveValidSetup(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	svc := newTestSetupService(t, store)

	state, err := svc.Save(ctx, testDevice, validRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, state.Edition)
	assert.Equal(t, 4, state.WeeksCount)
	assert.Equal(t, "2026-02-02", state.StartMonday)
	assert.Equal(t, "manual", state.Mode)
	assert.False(t, state.CreatedAt.IsZero())

	persisted, ok := store.Setup(ctx, testDevice)
	require.True(t, ok)
	assert.Equal(t, state, persisted)
	assert.Equal(t, models.PlanA, store.SelectedPlan(ctx, testDevice))
}

func TestSaveRejectsNonMonday(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	svc := newTestSetupService(t, store)

	req := validRequest()
	req.StartMonday = "2026-02-03" // a Tuesday

	_, err := svc.Save(ctx, testDevice, req)

	var vErr ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, msgNotAMonday, vErr.Message)

	_, ok := store.Setup(ctx, testDevice)
	assert.False(t, ok, "nothing persisted on rejection")
}

func TestSaveValidationOrder(t *testing.T) {
	ctx := context.Background()
	svc := newTestSetupService(t, decision.NewMemoryStore())

	tests := []struct {
		name    string
		mutate  func(*models.SetupRequest)
		wantMsg string
	}{
		{"unparseable date", func(r *models.SetupRequest) { r.StartMonday = "02.02.2026" }, msgInvalidStartDate},
		{"empty date", func(r *models.SetupRequest) { r.StartMonday = "" }, msgInvalidStartDate},
		{"date parse beats monday rule", func(r *models.SetupRequest) {
			r.StartMonday = "not-a-date-"
			r.Mode = "bogus"
		}, msgInvalidStartDate},
		{"monday rule beats mode", func(r *models.SetupRequest) {
			r.StartMonday = "2026-02-04"
			r.Mode = "bogus"
		}, msgNotAMonday},
		{"invalid mode", func(r *models.SetupRequest) { r.Mode = "auto" }, msgInvalidMode},
		{"invalid plan", func(r *models.SetupRequest) { r.SelectedLicenseTier = "D" }, msgInvalidPlan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := svc.Save(ctx, testDevice, req)

			var vErr ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantMsg, vErr.Message)
		})
	}
}

func TestSaveClampsWeeksCount(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	svc := newTestSetupService(t, store)

	for _, weeks := range []int{0, -3} {
		req := validRequest()
		req.WeeksCount = weeks

		state, err := svc.Save(ctx, testDevice, req)
		require.NoError(t, err)
		assert.Equal(t, 1, state.WeeksCount, "weeksCount %d clamps to 1", weeks)
	}
}

func TestSaveDropsICalOutsidePlanC(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	svc := newTestSetupService(t, store)

	req := validRequest()
	req.SelectedLicenseTier = models.PlanB
	req.ICalEnabled = true

	state, err := svc.Save(ctx, testDevice, req)
	require.NoError(t, err)
	assert.False(t, state.ICalEnabled)

	req.SelectedLicenseTier = models.PlanC
	state, err = svc.Save(ctx, testDevice, req)
	require.NoError(t, err)
	assert.True(t, state.ICalEnabled)
}

func TestChangePlanAwayFromCResetsICal(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	svc := newTestSetupService(t, store)

	req := validRequest()
	req.SelectedLicenseTier = models.PlanC
	req.ICalEnabled = true
	_, err := svc.Save(ctx, testDevice, req)
	require.NoError(t, err)

	state, err := svc.ChangePlanPreference(ctx, testDevice, models.PlanA)
	require.NoError(t, err)

	assert.Equal(t, models.PlanA, state.SelectedLicenseTier)
	assert.False(t, state.ICalEnabled, "ical preference resets without further user action")

	persisted, ok := store.Setup(ctx, testDevice)
	require.True(t, ok)
	assert.False(t, persisted.ICalEnabled)
	assert.Equal(t, models.PlanA, store.SelectedPlan(ctx, testDevice))
}

func TestChangePlanWithoutSavedSetup(t *testing.T) {
	ctx := context.Background()
	store := decision.NewMemoryStore()
	svc := newTestSetupService(t, store)

	_, err := svc.ChangePlanPreference(ctx, testDevice, models.PlanB)
	require.NoError(t, err)

	// No setup gets invented, but the plan preference is recorded.
	_, ok := store.Setup(ctx, testDevice)
	assert.False(t, ok)
	assert.Equal(t, models.PlanB, store.SelectedPlan(ctx, testDevice))
}

func TestNextMonday(t *testing.T) {
	tests := []struct {
		from string
		want string
	}{
		{"2026-02-02", "2026-02-09"}, // Monday jumps a full week
		{"2026-02-03", "2026-02-09"}, // Tuesday
		{"2026-02-06", "2026-02-09"}, // Friday
		{"2026-02-08", "2026-02-09"}, // Sunday
	}

	for _, tt := range tests {
		from, err := time.Parse("2006-01-02", tt.from)
		require.NoError(t, err)
		assert.Equal(t, tt.want, NextMonday(from), "from %s", tt.from)
	}
}
