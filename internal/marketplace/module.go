// Package marketplace provides the broker lead marketplace bounded context
// module. Brokers browse anonymized listings and spend credits to reveal and
// claim leads.
package marketplace

import (
	"lendingleads_backend/internal/events"
	apphttp "lendingleads_backend/internal/http"
	"lendingleads_backend/internal/marketplace/handler"
	"lendingleads_backend/internal/marketplace/repository"
	"lendingleads_backend/internal/marketplace/service"
	"lendingleads_backend/platform/config"
	"lendingleads_backend/platform/logger"
	"lendingleads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the marketplace bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the marketplace module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, cfg config.MarketplaceConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "marketplace"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts marketplace routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Everything here requires a broker token; listings are anonymized but
	// still gated so pricing stays off the public internet.
	marketGroup := ctx.Protected.Group("/marketplace")
	marketGroup.GET("/leads", m.handler.ListAvailable)
	marketGroup.POST("/leads/:id/purchase", m.handler.Purchase)
	marketGroup.GET("/purchases", m.handler.MyLeads)

	ctx.Admin.GET("/marketplace/stats", m.handler.Stats)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
