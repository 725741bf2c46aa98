// Package brokers provides the broker account bounded context module.
// Brokers register, receive starting credits, and buy leads on the
// marketplace with them.
package brokers

import (
	"lendingleads_backend/internal/brokers/handler"
	"lendingleads_backend/internal/brokers/repository"
	"lendingleads_backend/internal/brokers/service"
	apphttp "lendingleads_backend/internal/http"
	"lendingleads_backend/platform/config"
	"lendingleads_backend/platform/logger"
	"lendingleads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the brokers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the brokers module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg config.BrokerAuthConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "brokers"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts broker routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Credential endpoints get the stricter auth rate limiter.
	authGroup := ctx.V1.Group("/brokers")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	authGroup.POST("/register", m.handler.Register)
	authGroup.POST("/login", m.handler.Login)

	brokerGroup := ctx.Protected.Group("/brokers")
	brokerGroup.GET("/me", m.handler.Profile)
	brokerGroup.GET("/dashboard", m.handler.Dashboard)
	brokerGroup.POST("/credits", m.handler.AddCredits)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
