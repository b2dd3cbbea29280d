// Package recommendations provides the composition root for the
// recommendation engine.
package recommendations

import (
	"github.com/jackc/pgx/v5/pgxpool"

	bureauservice "nerve_engine_backend/internal/bureau/service"
	clientsrepo "nerve_engine_backend/internal/clients/repository"
	"nerve_engine_backend/internal/events"
	"nerve_engine_backend/internal/recommendations/handler"
	"nerve_engine_backend/internal/recommendations/repository"
	"nerve_engine_backend/internal/recommendations/service"
	"nerve_engine_backend/platform/logger"
)

// Module wires the recommendation engine.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

// NewModule creates a new recommendations module.
func NewModule(pool *pgxpool.Pool, bureau *bureauservice.Service, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	clients := clientsrepo.New(pool)
	svc := service.New(repo, clients, bureau, bus, log)
	return &Module{
		service: svc,
		handler: handler.New(svc),
	}
}

// Service returns the recommendation service.
func (m *Module) Service() *service.Service {
	return m.service
}

// Handler returns the HTTP handler.
func (m *Module) Handler() *handler.Handler {
	return m.handler
}
