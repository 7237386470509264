package decision

import (
	"context"
	"encoding/json"
	"sync"

	"themeweek/models"
)

// MemoryStore is an in-process Store used by tests and as a degraded fallback
// when Redis is unavailable. Values round-trip through JSON so behavior
// matches the Redis-backed store, including corrupt-value fallbacks.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Seed plants a raw value under a field prefix, for corrupt-payload tests.
func (s *MemoryStore) Seed(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
}

func (s *MemoryStore) read(key string, out any) bool {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

func (s *MemoryStore) write(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
}

func (s *MemoryStore) Consent(_ context.Context, deviceID string) models.ConsentState {
	var v models.ConsentState
	s.read(consentKeyPrefix+deviceID, &v)
	return v
}

func (s *MemoryStore) SetConsent(_ context.Context, deviceID string, v models.ConsentState) {
	s.write(consentKeyPrefix+deviceID, v)
}

func (s *MemoryStore) SelectedPlan(_ context.Context, deviceID string) models.PlanTier {
	var v models.PlanTier
	s.read(planKeyPrefix+deviceID, &v)
	if !v.Valid() {
		return ""
	}
	return v
}

func (s *MemoryStore) SetSelectedPlan(_ context.Context, deviceID string, v models.PlanTier) {
	s.write(planKeyPrefix+deviceID, v)
}

func (s *MemoryStore) CheckoutEmail(_ context.Context, deviceID string) string {
	var v string
	s.read(emailKeyPrefix+deviceID, &v)
	return v
}

func (s *MemoryStore) SetCheckoutEmail(_ context.Context, deviceID string, v string) {
	s.write(emailKeyPrefix+deviceID, v)
}

func (s *MemoryStore) Paid(_ context.Context, deviceID string) bool {
	var v bool
	s.read(paidKeyPrefix+deviceID, &v)
	return v
}

func (s *MemoryStore) SetPaid(_ context.Context, deviceID string, v bool) {
	s.write(paidKeyPrefix+deviceID, v)
}

func (s *MemoryStore) Setup(_ context.Context, deviceID string) (models.SetupState, bool) {
	var v models.SetupState
	ok := s.read(setupKeyPrefix+deviceID, &v)
	return v, ok
}

func (s *MemoryStore) SetSetup(_ context.Context, deviceID string, v models.SetupState) {
	s.write(setupKeyPrefix+deviceID, v)
}

func (s *MemoryStore) AppMode(_ context.Context, deviceID string) models.AppMode {
	var v models.AppMode
	s.read(modeKeyPrefix+deviceID, &v)
	if !v.Valid() {
		return ""
	}
	return v
}

func (s *MemoryStore) SetAppMode(_ context.Context, deviceID string, v models.AppMode) {
	s.write(modeKeyPrefix+deviceID, v)
}
