package model

import (
	"encoding/json"
	"time"
)

// ApiRateLimit is one fixed-window counter for the per-minute admission
// gate, keyed by (ip, endpoint, method, window_start). The composite unique
// index backs the atomic increment-or-insert upsert: concurrent requests
// from the same key never lose updates.
type ApiRateLimit struct {
	ID            string          `json:"id" gorm:"primaryKey;type:text;not null"`
	IpAddress     string          `json:"ip_address" gorm:"not null;size:45;uniqueIndex:idx_rate_limit_window,priority:1;index:idx_rate_limit_ip_window"`
	UserAgent     string          `json:"user_agent" gorm:"size:255"`
	Endpoint      string          `json:"endpoint" gorm:"not null;size:255;uniqueIndex:idx_rate_limit_window,priority:2"`
	Method        string          `json:"method" gorm:"not null;size:10;uniqueIndex:idx_rate_limit_window,priority:3"`
	RequestCount  int             `json:"request_count" gorm:"default:0;not null"`
	WindowStart   time.Time       `json:"window_start" gorm:"not null;uniqueIndex:idx_rate_limit_window,priority:4;index:idx_rate_limit_ip_window"`
	WindowEnd     time.Time       `json:"window_end" gorm:"not null"`
	Blocked       bool            `json:"blocked" gorm:"default:false;not null"`
	BlockedUntil  *time.Time      `json:"blocked_until,omitempty" gorm:"index"`
	LastRequestAt *time.Time      `json:"last_request_at,omitempty"`
	Metadata      json.RawMessage `json:"metadata,omitempty" gorm:"type:text"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (ApiRateLimit) TableName() string {
	return "api_rate_limits"
}

// IsBlocked reports whether the record carries an active block.
func (r *ApiRateLimit) IsBlocked(now time.Time) bool {
	return r.Blocked && r.BlockedUntil != nil && now.Before(*r.BlockedUntil)
}
