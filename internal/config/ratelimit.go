package config

import (
	"strings"
	"time"
)

// RateLimitConfig configures the Redis token bucket in front of /v1.
// Every key starts with Capacity tokens and regains RefillTokens per
// RefillInterval; idle buckets expire after TTL.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string // ip, route or ip_route
	Prefix         string
	Debug          bool
}

func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   envInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            envDur("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    strings.ToLower(envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route")),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "facility:rl"),
		Debug:          envBool("RATE_LIMIT_DEBUG", false),
	}.normalize()
}

// normalize clamps values the Lua script cannot work with. A bucket must
// outlive several refill intervals or it would reset to full on expiry.
func (c RateLimitConfig) normalize() RateLimitConfig {
	c.Capacity = max(c.Capacity, 1)
	c.RefillTokens = max(c.RefillTokens, 1)
	if c.RefillInterval <= 0 {
		c.RefillInterval = time.Second
	}
	c.TTL = max(c.TTL, 5*c.RefillInterval)
	switch c.KeyStrategy {
	case "ip", "route", "ip_route":
	default:
		c.KeyStrategy = "ip_route"
	}
	return c
}
