package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/teranga-bank/banka_api/shared"
)

type AdminHandler struct {
	rateLimitSvc RateLimitServiceInterface
}

func NewAdminHandler(rateLimitSvc RateLimitServiceInterface) *AdminHandler {
	return &AdminHandler{rateLimitSvc: rateLimitSvc}
}

// @Summary Statistiques du limiteur de débit
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=dto.RateLimitStats}
// @Router /api/v1/admin/rate-limits/stats [get]
func (h *AdminHandler) RateLimitStats(c *fiber.Ctx) error {
	stats, err := h.rateLimitSvc.Stats()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Statistiques du limiteur", stats)
}

// @Summary Débloquer une adresse IP
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param ip path string true "Adresse IP à débloquer"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/rate-limits/{ip} [delete]
func (h *AdminHandler) UnblockIP(c *fiber.Ctx) error {
	ip := c.Params("ip")

	if err := h.rateLimitSvc.Unblock(ip); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Adresse IP débloquée", nil)
}

// @Summary Purger les compteurs expirés
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/rate-limits/cleanup [post]
func (h *AdminHandler) Cleanup(c *fiber.Ctx) error {
	deleted, err := h.rateLimitSvc.CleanupOldRecords()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Purge effectuée", fiber.Map{"deleted": deleted})
}
