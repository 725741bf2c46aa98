// Package leads provides the lead intake and scoring bounded context module.
// Leads enter through the public funnel endpoint, get scored against all six
// financial products, and move through the pipeline until routed or sold.
package leads

import (
	"lendingleads_backend/internal/events"
	apphttp "lendingleads_backend/internal/http"
	"lendingleads_backend/internal/leads/handler"
	"lendingleads_backend/internal/leads/repository"
	"lendingleads_backend/internal/leads/service"
	"lendingleads_backend/platform/logger"
	"lendingleads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the leads module with all its
// dependencies. tasks and storage may be nil when those adapters are
// disabled.
func NewModule(pool *pgxpool.Pool, bus events.Bus, tasks service.TaskEnqueuer, storage service.DocumentStorage, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, tasks, storage, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public funnel endpoints: no auth, the global rate limiter applies.
	ctx.V1.POST("/leads", m.handler.Submit)
	ctx.V1.POST("/leads/:id/documents", m.handler.UploadDocument)

	// Admin pipeline management.
	adminGroup := ctx.Admin.Group("/leads")
	adminGroup.GET("", m.handler.List)
	adminGroup.GET("/:id", m.handler.GetByID)
	adminGroup.PATCH("/:id/status", m.handler.UpdateStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
