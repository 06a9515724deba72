// Package ratelimit bounds how many requests one caller may make per fixed window.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the time left until the caller's window resets, rounded up to a second.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	left := d.ResetAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return (left + time.Second - 1).Truncate(time.Second)
}

// Limiter counts a request against key and reports whether it is admitted.
// The count and the check happen atomically.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
	Close() error
}
