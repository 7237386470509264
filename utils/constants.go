// File: utils/constants.go
package utils

import "time"

// SessionCachePrefix is the prefix used for Redis session verification cache keys.
const SessionCachePrefix = "session:"

// SessionCacheTTL is the time-to-live for session cache entries.
const SessionCacheTTL = 10 * time.Minute
