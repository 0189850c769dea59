package services

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/teranga-bank/banka_api/dto"
	"github.com/teranga-bank/banka_api/model"
	"github.com/teranga-bank/banka_api/shared"
)

// RateLimitService is the per-minute admission gate: one counter per
// (IP, endpoint, method, calendar minute), persisted in the store, with a
// sticky block once the ceiling is exceeded. Windowing is keyed on
// wall-clock minute boundaries, which admits up to twice the ceiling across
// a boundary; the trade-off is accepted for its simplicity.
type RateLimitService struct {
	context.DefaultService

	sqlSvc *SqlService

	maxRequests   int
	blockDuration time.Duration
	retention     time.Duration

	stopCleanup chan struct{}
}

const RATE_LIMIT_SVC = "rate_limit_svc"

const (
	defaultMaxRequestsPerMinute = 60
	defaultBlockDuration        = 2 * time.Minute
	defaultRetention            = 24 * time.Hour
	cleanupInterval             = time.Hour
)

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.maxRequests = envInt("RATE_LIMIT_MAX_REQUESTS", defaultMaxRequestsPerMinute)
	svc.blockDuration = envDuration("RATE_LIMIT_BLOCK_DURATION", defaultBlockDuration)
	svc.retention = envDuration("RATE_LIMIT_RETENTION", defaultRetention)
	svc.stopCleanup = make(chan struct{})
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.sqlSvc = svc.Service(SQL_SVC).(*SqlService)

	go svc.startCleanupJob()

	return nil
}

func (svc *RateLimitService) Shutdown() {
	close(svc.stopCleanup)
}

// ==================== CORE ADMISSION LOGIC ====================

type rateLimitMetadata struct {
	Headers        map[string][]string `json:"headers,omitempty"`
	FirstRequestAt string              `json:"first_request_at"`
}

// Admit decides whether one request proceeds. An existing block rejects
// without touching counters; otherwise the window counter is atomically
// incremented and the ceiling checked.
func (svc *RateLimitService) Admit(ip, endpoint, method, userAgent string, headers map[string][]string, now time.Time) (*dto.RateLimitInfo, error) {
	block, err := svc.sqlSvc.GetActiveBlock(ip, now)
	if err != nil {
		return nil, err
	}
	if block != nil {
		return &dto.RateLimitInfo{
			Allowed:      false,
			Limit:        svc.maxRequests,
			Remaining:    0,
			ResetTime:    block.BlockedUntil,
			BlockedUntil: block.BlockedUntil,
		}, nil
	}

	windowStart := now.Truncate(time.Minute)
	windowEnd := windowStart.Add(time.Minute)

	metadata, _ := json.Marshal(rateLimitMetadata{
		Headers:        headers,
		FirstRequestAt: now.Format(time.RFC3339),
	})

	id, _ := uuid.NewV7()
	rec := &model.ApiRateLimit{
		ID:            id.String(),
		IpAddress:     ip,
		UserAgent:     userAgent,
		Endpoint:      endpoint,
		Method:        method,
		RequestCount:  1,
		WindowStart:   windowStart,
		WindowEnd:     windowEnd,
		Blocked:       false,
		LastRequestAt: &now,
		Metadata:      metadata,
	}

	current, err := svc.sqlSvc.IncrementRateLimit(rec)
	if err != nil {
		return nil, err
	}

	if current.RequestCount > svc.maxRequests {
		blockedUntil := now.Add(svc.blockDuration)
		if err := svc.sqlSvc.BlockRateLimit(current, blockedUntil); err != nil {
			return nil, err
		}

		log.WithFields(log.Fields{
			"ip":            ip,
			"endpoint":      endpoint,
			"method":        method,
			"request_count": current.RequestCount,
			"blocked_until": blockedUntil,
		}).Warn("Rate limit exceeded")

		return &dto.RateLimitInfo{
			Allowed:      false,
			Limit:        svc.maxRequests,
			Remaining:    0,
			ResetTime:    &blockedUntil,
			BlockedUntil: &blockedUntil,
		}, nil
	}

	remaining := svc.maxRequests - current.RequestCount
	if remaining < 0 {
		remaining = 0
	}

	return &dto.RateLimitInfo{
		Allowed:   true,
		Limit:     svc.maxRequests,
		Remaining: remaining,
		ResetTime: &windowEnd,
	}, nil
}

// ==================== MIDDLEWARE ====================

func (svc *RateLimitService) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		ip := getClientIP(c)

		info, err := svc.Admit(ip, c.Path(), c.Method(), c.Get(fiber.HeaderUserAgent), c.GetReqHeaders(), now)
		if err != nil {
			log.Printf("Rate limit check error for %s %s (%s): %v", c.Method(), c.Path(), ip, err)
			// Continue with request on error to avoid blocking users due to system issues
			return c.Next()
		}

		if !info.Allowed {
			RecordRateLimitRejection("minute")
			retryAfter := info.RetryAfterSeconds(now)
			c.Set(shared.HeaderRetryAfter, strconv.Itoa(retryAfter))
			c.Set(shared.HeaderRateLimitRetryAfter, strconv.Itoa(retryAfter))
			message := fmt.Sprintf("Trop de requêtes. Réessayez dans %d secondes.", retryAfter)
			return shared.ResponseRateLimited(c, shared.KindRateLimitExceeded, message, retryAfter)
		}

		c.Set(shared.HeaderRateLimitLimit, strconv.Itoa(info.Limit))
		c.Set(shared.HeaderRateLimitRemaining, strconv.Itoa(info.Remaining))
		if info.ResetTime != nil {
			c.Set(shared.HeaderRateLimitReset, strconv.FormatInt(info.ResetTime.Unix(), 10))
		}

		return c.Next()
	}
}

// ==================== ADMIN OPERATIONS ====================

func (svc *RateLimitService) Stats() (*dto.RateLimitStats, error) {
	total, blocked, err := svc.sqlSvc.CountRateLimits(time.Now())
	if err != nil {
		return nil, err
	}

	return &dto.RateLimitStats{
		MaxRequestsPerMinute: svc.maxRequests,
		BlockDurationSeconds: int(svc.blockDuration.Seconds()),
		TotalRecords:         total,
		BlockedRecords:       blocked,
		Timestamp:            time.Now(),
	}, nil
}

// Unblock explicitly lifts a block before blocked_until elapses.
func (svc *RateLimitService) Unblock(ip string) error {
	affected, err := svc.sqlSvc.UnblockIP(ip)
	if err != nil {
		return err
	}
	if affected == 0 {
		return shared.NewNotFoundError("Blocage", ip)
	}

	log.WithFields(log.Fields{"ip": ip, "records": affected}).Info("Rate limit block lifted")
	return nil
}

// ==================== RETENTION ====================

// CleanupOldRecords drops counters whose window closed more than the
// retention period ago. Without it the record set grows without bound.
func (svc *RateLimitService) CleanupOldRecords() (int64, error) {
	now := time.Now()
	return svc.sqlSvc.DeleteExpiredRateLimits(now.Add(-svc.retention), now)
}

func (svc *RateLimitService) startCleanupJob() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deleted, err := svc.CleanupOldRecords()
			if err != nil {
				log.Printf("Rate limit cleanup error: %v", err)
			} else if deleted > 0 {
				log.Printf("Rate limit cleanup removed %d records", deleted)
			}
		case <-svc.stopCleanup:
			return
		}
	}
}

// ==================== UTILITY FUNCTIONS ====================

func getClientIP(c *fiber.Ctx) string {
	// Check for forwarded IP first (for load balancers/proxies)
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if ip != "" {
				return ip
			}
		}
	}

	realIP := c.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	cfIP := c.Get("CF-Connecting-IP")
	if cfIP != "" {
		return cfIP
	}

	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}

	return ip
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}
