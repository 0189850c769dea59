package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/teranga-bank/banka_api/shared"
)

// RatingLimitService is the daily quota gate, independent from the
// per-minute limiter: a single Redis counter per IP and calendar day,
// expiring at local midnight. INCR is atomic, so concurrent requests from
// one IP never read a stale count.
type RatingLimitService struct {
	appContext.DefaultService

	redisSvc *RedisService

	maxRequests int
	enabled     bool
}

const RATING_LIMIT_SVC = "rating_limit_svc"

const defaultMaxRequestsPerDay = 5

func (svc RatingLimitService) Id() string {
	return RATING_LIMIT_SVC
}

func (svc *RatingLimitService) Configure(ctx *appContext.Context) error {
	svc.maxRequests = envInt("RATING_LIMIT_MAX_REQUESTS", defaultMaxRequestsPerDay)
	svc.enabled = envBool("RATING_LIMIT_ENABLED", false)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RatingLimitService) Start() error {
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func (svc *RatingLimitService) Enabled() bool {
	return svc.enabled
}

type DailyQuota struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Admit counts one request against the caller's daily quota. The counter
// key rolls over with the calendar date; expiry is set once, on the first
// request of the day.
func (svc *RatingLimitService) Admit(ctx context.Context, ip string, now time.Time) (*DailyQuota, error) {
	key := fmt.Sprintf("rating_limit:%s:%s", ip, now.Format("2006-01-02"))
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).Add(24 * time.Hour)

	count, err := svc.redisSvc.Increment(ctx, key)
	if err != nil {
		return nil, err
	}
	if count == 1 {
		if err := svc.redisSvc.ExpireAt(ctx, key, endOfDay); err != nil {
			return nil, err
		}
	}

	if count > int64(svc.maxRequests) {
		log.WithFields(log.Fields{
			"ip":       ip,
			"count":    count,
			"reset_at": endOfDay,
		}).Warn("Daily quota exceeded")

		return &DailyQuota{
			Allowed:   false,
			Limit:     svc.maxRequests,
			Remaining: 0,
			ResetAt:   endOfDay,
		}, nil
	}

	remaining := svc.maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return &DailyQuota{
		Allowed:   true,
		Limit:     svc.maxRequests,
		Remaining: remaining,
		ResetAt:   endOfDay,
	}, nil
}

func (svc *RatingLimitService) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		ip := getClientIP(c)

		quota, err := svc.Admit(c.Context(), ip, now)
		if err != nil {
			log.Printf("Daily quota check error for %s (%s): %v", c.Path(), ip, err)
			// Continue with request on error to avoid blocking users due to system issues
			return c.Next()
		}

		c.Set(shared.HeaderRatingLimitLimit, strconv.Itoa(quota.Limit))
		c.Set(shared.HeaderRatingLimitRemaining, strconv.Itoa(quota.Remaining))
		c.Set(shared.HeaderRatingLimitReset, strconv.FormatInt(quota.ResetAt.Unix(), 10))

		if !quota.Allowed {
			RecordRateLimitRejection("daily")
			retryAfter := int(quota.ResetAt.Sub(now).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set(shared.HeaderRetryAfter, strconv.Itoa(retryAfter))
			c.Set(shared.HeaderRatingLimitRetryAfter, strconv.Itoa(retryAfter))
			return shared.ResponseRateLimited(c, shared.KindRatingLimit, "Limite de requêtes journalière dépassée. Réessayez demain.", retryAfter)
		}

		return c.Next()
	}
}
