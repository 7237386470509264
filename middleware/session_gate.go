package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"themeweek/services/account"
	"themeweek/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	// SessionCookieName carries the access token for browser clients that do
	// not send an Authorization header.
	SessionCookieName = "tw_session"

	userContextKey  = "userID"
	emailContextKey = "sessionEmail"
	tokenContextKey = "accessToken"
)

// Budget for cache housekeeping triggered outside a request context.
const redisOpTimeout = 2 * time.Second

// SessionGate protects member-only routes. Tokens are validated locally
// (signature and expiry); a remote re-check against the auth service is
// cached per user so repeated requests stay cheap. Sign-out events from the
// account hub drop the cached verification immediately.
type SessionGate struct {
	client      account.AuthClient
	cache       *redis.Client
	logger      *zap.Logger
	prefixes    []string
	unsubscribe func()
}

// NewSessionGate wires the gate to the auth client, the session cache and the
// account event hub. publicPrefixes lists request-path prefixes that bypass
// the gate entirely (field-test access).
func NewSessionGate(client account.AuthClient, events *account.Hub, cache *redis.Client, logger *zap.Logger, publicPrefixes []string) *SessionGate {
	g := &SessionGate{
		client:   client,
		cache:    cache,
		logger:   logger,
		prefixes: publicPrefixes,
	}
	g.unsubscribe = events.Subscribe(func(ev account.SessionEvent) {
		if ev.Type != account.SessionSignedOut || ev.UserID == "" {
			return
		}
		g.invalidate(ev.UserID)
	})
	return g
}

// Close releases the hub subscription. Safe to call more than once.
func (g *SessionGate) Close() {
	g.unsubscribe()
}

func (g *SessionGate) invalidate(userID string) {
	if g.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := g.cache.Del(ctx, utils.SessionCachePrefix+userID).Err(); err != nil {
		g.logger.Warn("failed to drop cached session verification", zap.Error(err))
	}
}

// tokenFromRequest prefers the Authorization header over the session cookie.
func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return cookie
	}
	return ""
}

// Middleware returns the gin handler enforcing the gate.
func (g *SessionGate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range g.prefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			g.deny(c)
			return
		}

		// Local check: signature and expiry.
		claims, err := utils.ExtractSessionClaims(tokenString)
		if err != nil {
			g.deny(c)
			return
		}

		if !g.verified(c.Request.Context(), claims.UserID, tokenString) {
			g.deny(c)
			return
		}

		c.Set(userContextKey, claims.UserID)
		c.Set(emailContextKey, claims.Email)
		c.Set(tokenContextKey, tokenString)
		c.Next()
	}
}

// verified confirms the token against the auth service, short-circuiting via
// the session cache. A cache outage degrades to a remote check per request.
func (g *SessionGate) verified(ctx context.Context, userID, tokenString string) bool {
	computedHash := utils.HashToken(tokenString)
	cacheKey := utils.SessionCachePrefix + userID

	if g.cache != nil {
		cachedHash, err := g.cache.Get(ctx, cacheKey).Result()
		if err == nil && cachedHash == computedHash {
			_ = g.cache.Expire(ctx, cacheKey, utils.SessionCacheTTL).Err()
			return true
		}
		if err != nil && err != redis.Nil {
			g.logger.Warn("session cache read failed, re-checking remotely", zap.Error(err))
		}
	}

	if g.client != nil {
		if _, err := g.client.GetUser(ctx, tokenString); err != nil {
			g.logger.Info("remote session verification rejected token", zap.String("userID", userID), zap.Error(err))
			return false
		}
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, cacheKey, computedHash, utils.SessionCacheTTL).Err(); err != nil {
			g.logger.Warn("failed to cache session verification", zap.Error(err))
		}
	}
	return true
}

// deny redirects browser navigation to the account page (preserving the
// intended destination) and answers API clients with a bare 401.
func (g *SessionGate) deny(c *gin.Context) {
	if strings.Contains(c.GetHeader("Accept"), "text/html") {
		target := "/account?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Insufficient authorization",
		"code":  0,
	})
}

// SessionUserID returns the user ID set by the gate for the current request.
func SessionUserID(c *gin.Context) string {
	if v, ok := c.Get(userContextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// SessionToken returns the access token the gate accepted for this request.
func SessionToken(c *gin.Context) string {
	if v, ok := c.Get(tokenContextKey); ok {
		if t, ok := v.(string); ok {
			return t
		}
	}
	return ""
}
