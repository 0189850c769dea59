package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga-bank/banka_api/dto"
	"github.com/teranga-bank/banka_api/model"
	"github.com/teranga-bank/banka_api/shared"
)

func newTestRateLimitService(t *testing.T, maxRequests int) (*RateLimitService, *SqlService) {
	t.Helper()
	sqlSvc := newTestSqlService(t)
	svc := &RateLimitService{
		sqlSvc:        sqlSvc,
		maxRequests:   maxRequests,
		blockDuration: 2 * time.Minute,
		retention:     24 * time.Hour,
	}
	return svc, sqlSvc
}

func admit(t *testing.T, svc *RateLimitService, ip string, now time.Time) *dto.RateLimitInfo {
	t.Helper()
	info, err := svc.Admit(ip, "/api/v1/comptes", "GET", "test-agent", nil, now)
	require.NoError(t, err)
	return info
}

func TestRateLimitAdmitUpToCeiling(t *testing.T) {
	svc, _ := newTestRateLimitService(t, 5)
	now := time.Date(2026, 3, 14, 10, 30, 12, 0, time.UTC)

	for i := 0; i < 5; i++ {
		res := admit(t, svc, "10.0.0.1", now)
		assert.True(t, res.Allowed, "request %d should be admitted", i+1)
		assert.Equal(t, 5-(i+1), res.Remaining)
	}

	rejected := admit(t, svc, "10.0.0.1", now)
	assert.False(t, rejected.Allowed)
	assert.Positive(t, rejected.RetryAfterSeconds(now))
}

func TestRateLimitBlockIsSticky(t *testing.T) {
	svc, sqlSvc := newTestRateLimitService(t, 2)
	now := time.Date(2026, 3, 14, 10, 30, 12, 0, time.UTC)

	admit(t, svc, "10.0.0.2", now)
	admit(t, svc, "10.0.0.2", now)
	rejected := admit(t, svc, "10.0.0.2", now)
	require.False(t, rejected.Allowed)

	// The block outlives the minute window.
	nextWindow := now.Add(time.Minute)
	stillBlocked := admit(t, svc, "10.0.0.2", nextWindow)
	assert.False(t, stillBlocked.Allowed)

	// A blocked caller's requests do not grow the counter.
	block, err := sqlSvc.GetActiveBlock("10.0.0.2", nextWindow)
	require.NoError(t, err)
	require.NotNil(t, block)
	countBefore := block.RequestCount
	admit(t, svc, "10.0.0.2", nextWindow)
	var rec model.ApiRateLimit
	require.NoError(t, sqlSvc.db.Where("id = ?", block.ID).First(&rec).Error)
	assert.Equal(t, countBefore, rec.RequestCount)
}

func TestRateLimitBlockExpiry(t *testing.T) {
	svc, _ := newTestRateLimitService(t, 1)
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	admit(t, svc, "10.0.0.3", now)
	rejected := admit(t, svc, "10.0.0.3", now)
	require.False(t, rejected.Allowed)

	// Past blocked_until the caller starts over in a fresh window.
	after := now.Add(svc.blockDuration + time.Second)
	res := admit(t, svc, "10.0.0.3", after)
	assert.True(t, res.Allowed)
}

func TestRateLimitWindowsAreIndependent(t *testing.T) {
	svc, _ := newTestRateLimitService(t, 1)
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	first, err := svc.Admit("10.0.0.4", "/api/v1/comptes", "GET", "a", nil, now)
	require.NoError(t, err)
	assert.True(t, first.Allowed)

	// Same IP, other endpoint and method: separate counters.
	other, err := svc.Admit("10.0.0.4", "/api/v1/comptes/C00001", "GET", "a", nil, now)
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	post, err := svc.Admit("10.0.0.4", "/api/v1/comptes", "POST", "a", nil, now)
	require.NoError(t, err)
	assert.True(t, post.Allowed)

	// Other IP untouched.
	otherIP, err := svc.Admit("10.0.0.5", "/api/v1/comptes", "GET", "a", nil, now)
	require.NoError(t, err)
	assert.True(t, otherIP.Allowed)
}

func TestRateLimitConcurrentAdmissions(t *testing.T) {
	svc, sqlSvc := newTestRateLimitService(t, 100)
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	const n = 30
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.Admit("10.0.0.6", "/api/v1/comptes", "GET", "a", nil, now)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	var rec model.ApiRateLimit
	require.NoError(t, sqlSvc.db.
		Where("ip_address = ? AND window_start = ?", "10.0.0.6", now.Truncate(time.Minute)).
		First(&rec).Error)
	assert.Equal(t, n, rec.RequestCount)
}

func TestRateLimitUnblock(t *testing.T) {
	svc, _ := newTestRateLimitService(t, 1)
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

	admit(t, svc, "10.0.0.7", now)
	rejected := admit(t, svc, "10.0.0.7", now)
	require.False(t, rejected.Allowed)

	require.NoError(t, svc.Unblock("10.0.0.7"))

	res, err := svc.Admit("10.0.0.7", "/api/v1/comptes", "GET", "a", nil, now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRateLimitUnblockUnknownIP(t *testing.T) {
	svc, _ := newTestRateLimitService(t, 1)

	err := svc.Unblock("192.0.2.99")
	require.Error(t, err)
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestRateLimitCleanup(t *testing.T) {
	svc, sqlSvc := newTestRateLimitService(t, 60)
	now := time.Now()

	// One stale counter, one fresh, one stale but still blocked.
	stale := now.Add(-48 * time.Hour)
	blockedUntil := now.Add(time.Hour)
	rows := []model.ApiRateLimit{
		{ID: "old", IpAddress: "1.1.1.1", Endpoint: "/a", Method: "GET", RequestCount: 3, WindowStart: stale, WindowEnd: stale.Add(time.Minute)},
		{ID: "fresh", IpAddress: "1.1.1.2", Endpoint: "/a", Method: "GET", RequestCount: 3, WindowStart: now, WindowEnd: now.Add(time.Minute)},
		{ID: "blocked", IpAddress: "1.1.1.3", Endpoint: "/a", Method: "GET", RequestCount: 99, WindowStart: stale, WindowEnd: stale.Add(time.Minute), Blocked: true, BlockedUntil: &blockedUntil},
	}
	for i := range rows {
		require.NoError(t, sqlSvc.db.Create(&rows[i]).Error)
	}

	deleted, err := svc.CleanupOldRecords()
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var remaining int64
	require.NoError(t, sqlSvc.db.Model(&model.ApiRateLimit{}).Count(&remaining).Error)
	assert.EqualValues(t, 2, remaining)
}

func TestRateLimitStats(t *testing.T) {
	svc, _ := newTestRateLimitService(t, 2)
	now := time.Now()

	admit(t, svc, "10.0.0.8", now)
	admit(t, svc, "10.0.0.8", now)
	admit(t, svc, "10.0.0.8", now) // triggers block

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.MaxRequestsPerMinute)
	assert.EqualValues(t, 1, stats.TotalRecords)
	assert.EqualValues(t, 1, stats.BlockedRecords)
}
