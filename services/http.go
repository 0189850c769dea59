package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	_ "github.com/teranga-bank/banka_api/docs"
	"github.com/teranga-bank/banka_api/services/handlers"
	"github.com/teranga-bank/banka_api/shared"
)

// HttpService wires the public API: the compte endpoints behind both
// admission gates, and the JWT-guarded admin surface for the per-minute
// limiter.
type HttpService struct {
	context.DefaultService

	compteSvc     *CompteService
	rateLimitSvc  *RateLimitService
	ratingSvc     *RatingLimitService
	monitoringSvc *MonitoringService
	authSvc       AuthService

	port   int
	server *fiber.App
}

// AuthService guards a route group. Satisfied by middleware.AuthMiddleware.
type AuthService interface {
	RequiredAuth() fiber.Handler
}

const HTTP_SVC = "http_svc"
const AUTH_SVC = "auth"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.compteSvc = svc.Service(COMPTE_SVC).(*CompteService)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.ratingSvc = svc.Service(RATING_LIMIT_SVC).(*RatingLimitService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	svc.authSvc = svc.Service(AUTH_SVC).(AuthService)

	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware(svc.monitoringSvc))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	compteHandler := handlers.NewCompteHandler(svc.compteSvc)
	adminHandler := handlers.NewAdminHandler(svc.rateLimitSvc)

	v1 := app.Group("/api/v1")
	v1.Use(svc.rateLimitSvc.Middleware())
	if svc.ratingSvc.Enabled() {
		v1.Use(svc.ratingSvc.Middleware())
	}

	v1.Get("/ping", svc.ping)

	// The telephone route must precede the numero route or fiber would
	// capture "client" as a numero.
	v1.Get("/comptes/client/:telephone", compteHandler.GetByTelephone)
	v1.Get("/comptes/:numero", compteHandler.GetByNumero)
	v1.Get("/comptes", compteHandler.List)
	v1.Post("/comptes", compteHandler.Create)

	admin := v1.Group("/admin", svc.authSvc.RequiredAuth())
	admin.Get("/rate-limits/stats", adminHandler.RateLimitStats)
	admin.Delete("/rate-limits/:ip", adminHandler.UnblockIP)
	admin.Post("/rate-limits/cleanup", adminHandler.Cleanup)

	svc.server = app

	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, http.StatusOK, "Success", "pong")
}

// handleError maps any error escaping a handler to the envelope. Internal
// causes are logged, never sent to the client.
func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.Err != nil {
			log.WithFields(log.Fields{
				"path": c.Path(),
				"kind": appErr.Kind,
			}).WithError(appErr.Err).Warn("Request failed")
		}
		return shared.ResponseErrorJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ResponseErrorJSON(c, http.StatusNotFound, "Ressource non trouvée", nil)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return shared.ResponseErrorJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithFields(log.Fields{"path": c.Path()}).WithError(err).Error("Unhandled error")
	return shared.ResponseErrorJSON(c, http.StatusInternalServerError, "Erreur serveur", nil)
}
