// Package bureau provides the composition root for bureau enrichment.
package bureau

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"nerve_engine_backend/internal/bureau/client"
	"nerve_engine_backend/internal/bureau/repository"
	"nerve_engine_backend/internal/bureau/service"
	"nerve_engine_backend/internal/events"
	"nerve_engine_backend/platform/config"
	"nerve_engine_backend/platform/logger"
)

// Module wires the bureau enrichment service.
type Module struct {
	service *service.Service
}

// NewModule creates a new bureau module.
func NewModule(pool *pgxpool.Pool, cfg config.BureauConfig, bus events.Bus, log *logger.Logger) *Module {
	cli := client.New(cfg, log)
	repo := repository.New(pool)
	svc := service.New(repo, cli, bus, log)
	return &Module{service: svc}
}

// Service returns the bureau resolver service.
func (m *Module) Service() *service.Service {
	return m.service
}
