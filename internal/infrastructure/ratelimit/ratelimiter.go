// Package ratelimit throttles anonymous traffic on the public checkout and
// provider callback endpoints with a Redis sliding window.
package ratelimit

type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

// RateLimiter answers whether the caller identified by key may proceed.
type RateLimiter interface {
	Allow(key string, config RateLimitConfig) (bool, error)
	Reset(key string) error
}
