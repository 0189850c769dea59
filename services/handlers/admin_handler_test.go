package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranga-bank/banka_api/dto"
	"github.com/teranga-bank/banka_api/shared"
)

type mockRateLimitService struct {
	statsFn   func() (*dto.RateLimitStats, error)
	unblockFn func(ip string) error
	cleanupFn func() (int64, error)
}

func (m *mockRateLimitService) Stats() (*dto.RateLimitStats, error) { return m.statsFn() }
func (m *mockRateLimitService) Unblock(ip string) error             { return m.unblockFn(ip) }
func (m *mockRateLimitService) CleanupOldRecords() (int64, error)   { return m.cleanupFn() }

func newAdminTestApp(svc RateLimitServiceInterface) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if appErr, ok := shared.GetAppError(err); ok {
				return shared.ResponseErrorJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
			}
			return shared.ResponseErrorJSON(c, http.StatusInternalServerError, "Erreur serveur", nil)
		},
	})

	h := NewAdminHandler(svc)
	app.Get("/api/v1/admin/rate-limits/stats", h.RateLimitStats)
	app.Delete("/api/v1/admin/rate-limits/:ip", h.UnblockIP)
	app.Post("/api/v1/admin/rate-limits/cleanup", h.Cleanup)
	return app
}

func TestRateLimitStatsEndpoint(t *testing.T) {
	svc := &mockRateLimitService{
		statsFn: func() (*dto.RateLimitStats, error) {
			return &dto.RateLimitStats{
				MaxRequestsPerMinute: 60,
				BlockDurationSeconds: 120,
				TotalRecords:         7,
				BlockedRecords:       2,
				Timestamp:            time.Now(),
			}, nil
		},
	}

	app := newAdminTestApp(svc)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/admin/rate-limits/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.EqualValues(t, 60, data["max_requests_per_minute"])
	assert.EqualValues(t, 2, data["blocked_records"])
}

func TestUnblockIPEndpoint(t *testing.T) {
	var unblocked string
	svc := &mockRateLimitService{
		unblockFn: func(ip string) error {
			unblocked = ip
			return nil
		},
	}

	app := newAdminTestApp(svc)
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/rate-limits/10.0.0.9", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "10.0.0.9", unblocked)
}

func TestUnblockIPEndpointNotFound(t *testing.T) {
	svc := &mockRateLimitService{
		unblockFn: func(ip string) error {
			return shared.NewNotFoundError("Blocage", ip)
		},
	}

	app := newAdminTestApp(svc)
	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/rate-limits/10.0.0.9", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCleanupEndpoint(t *testing.T) {
	svc := &mockRateLimitService{
		cleanupFn: func() (int64, error) { return 42, nil },
	}

	app := newAdminTestApp(svc)
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/admin/rate-limits/cleanup", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	assert.EqualValues(t, 42, data["deleted"])
}
