package decision

import (
	"context"
	"encoding/json"
	"time"

	"themeweek/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisStore persists decision state in Redis, one JSON value per key.
// Entries carry no TTL by default: state persists until explicitly
// overwritten. A non-zero ttl bounds it.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, logger *zap.Logger, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, logger: logger, ttl: ttl}
}

// readJSON loads key into out. Any failure (missing key, connection error,
// corrupt payload) leaves out untouched and reports false.
func (s *RedisStore) readJSON(ctx context.Context, key string, out any) bool {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.logger.Debug("decision store read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(data), out); err != nil {
		s.logger.Warn("decision store value corrupt, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// writeJSON stores v under key. Failures are logged and swallowed.
func (s *RedisStore) writeJSON(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("decision store marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.logger.Warn("decision store write dropped", zap.String("key", key), zap.Error(err))
	}
}

func (s *RedisStore) Consent(ctx context.Context, deviceID string) models.ConsentState {
	var v models.ConsentState
	s.readJSON(ctx, consentKeyPrefix+deviceID, &v)
	return v
}

func (s *RedisStore) SetConsent(ctx context.Context, deviceID string, v models.ConsentState) {
	s.writeJSON(ctx, consentKeyPrefix+deviceID, v)
}

func (s *RedisStore) SelectedPlan(ctx context.Context, deviceID string) models.PlanTier {
	var v models.PlanTier
	s.readJSON(ctx, planKeyPrefix+deviceID, &v)
	if !v.Valid() {
		return ""
	}
	return v
}

func (s *RedisStore) SetSelectedPlan(ctx context.Context, deviceID string, v models.PlanTier) {
	s.writeJSON(ctx, planKeyPrefix+deviceID, v)
}

func (s *RedisStore) CheckoutEmail(ctx context.Context, deviceID string) string {
	var v string
	s.readJSON(ctx, emailKeyPrefix+deviceID, &v)
	return v
}

func (s *RedisStore) SetCheckoutEmail(ctx context.Context, deviceID string, v string) {
	s.writeJSON(ctx, emailKeyPrefix+deviceID, v)
}

func (s *RedisStore) Paid(ctx context.Context, deviceID string) bool {
	var v bool
	s.readJSON(ctx, paidKeyPrefix+deviceID, &v)
	return v
}

func (s *RedisStore) SetPaid(ctx context.Context, deviceID string, v bool) {
	s.writeJSON(ctx, paidKeyPrefix+deviceID, v)
}

func (s *RedisStore) Setup(ctx context.Context, deviceID string) (models.SetupState, bool) {
	var v models.SetupState
	ok := s.readJSON(ctx, setupKeyPrefix+deviceID, &v)
	return v, ok
}

func (s *RedisStore) SetSetup(ctx context.Context, deviceID string, v models.SetupState) {
	s.writeJSON(ctx, setupKeyPrefix+deviceID, v)
}

func (s *RedisStore) AppMode(ctx context.Context, deviceID string) models.AppMode {
	var v models.AppMode
	s.readJSON(ctx, modeKeyPrefix+deviceID, &v)
	if !v.Valid() {
		return ""
	}
	return v
}

func (s *RedisStore) SetAppMode(ctx context.Context, deviceID string, v models.AppMode) {
	s.writeJSON(ctx, modeKeyPrefix+deviceID, v)
}
