package dto

import "time"

// RateLimitInfo is the admission decision handed back to the middleware.
type RateLimitInfo struct {
	Allowed      bool       `json:"allowed"`
	Limit        int        `json:"limit"`
	Remaining    int        `json:"remaining"`
	ResetTime    *time.Time `json:"reset_time,omitempty"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

// RetryAfterSeconds returns the whole seconds until the block lifts, with a
// floor of 1 so a blocked caller never reads retry_after: 0.
func (i *RateLimitInfo) RetryAfterSeconds(now time.Time) int {
	until := i.BlockedUntil
	if until == nil {
		until = i.ResetTime
	}
	if until == nil {
		return 1
	}
	secs := int(until.Sub(now).Seconds())
	if secs < 1 {
		secs = 1
	}
	return secs
}

// RateLimitStats is the admin view of the gate's stored state.
type RateLimitStats struct {
	MaxRequestsPerMinute int       `json:"max_requests_per_minute"`
	BlockDurationSeconds int       `json:"block_duration_seconds"`
	TotalRecords         int64     `json:"total_records"`
	BlockedRecords       int64     `json:"blocked_records"`
	Timestamp            time.Time `json:"timestamp"`
}
