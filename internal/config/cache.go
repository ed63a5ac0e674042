package config

import (
	"strings"
	"time"
)

// Cache key strategies understood by middleware.NewRedisCache. The facility
// state generation and path params are always part of the key.
const (
	CacheKeyRoute            = "route"
	CacheKeyRouteQuery       = "route_query"
	CacheKeyMethodRoute      = "method_route"
	CacheKeyMethodRouteQuery = "method_route_query"
)

// CacheConfig controls the Redis response cache in front of the read
// endpoints. Entries are short lived; writes invalidate them through the
// generation counter rather than by deletion.
type CacheConfig struct {
	Enabled      bool
	Methods      map[string]bool // upper-case HTTP methods that may be cached
	TTL          time.Duration
	KeyStrategy  string
	Prefix       string
	MaxBodyBytes int // responses larger than this are served but not stored
}

func LoadCacheConfig() CacheConfig {
	c := CacheConfig{
		Enabled:      envBool("CACHE_ENABLED", true),
		Methods:      parseMethods(envStr("CACHE_METHODS", "GET")),
		TTL:          envDur("CACHE_TTL", 30*time.Second),
		KeyStrategy:  strings.ToLower(envStr("CACHE_KEY_STRATEGY", CacheKeyRouteQuery)),
		Prefix:       envStr("CACHE_PREFIX", "facility:cache"),
		MaxBodyBytes: envInt("CACHE_MAX_BODY_BYTES", 1<<20),
	}
	switch c.KeyStrategy {
	case CacheKeyRoute, CacheKeyRouteQuery, CacheKeyMethodRoute, CacheKeyMethodRouteQuery:
	default:
		c.KeyStrategy = CacheKeyRouteQuery
	}
	// Mutating endpoints must never be replayed from cache.
	for m := range c.Methods {
		if m != "GET" && m != "HEAD" {
			delete(c.Methods, m)
		}
	}
	return c
}

// parseMethods turns "get, head" into {"GET": true, "HEAD": true}.
func parseMethods(s string) map[string]bool {
	out := make(map[string]bool)
	for _, p := range strings.Split(s, ",") {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out[p] = true
		}
	}
	return out
}
