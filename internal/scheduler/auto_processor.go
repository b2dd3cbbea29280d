// Package scheduler provides the background auto-processing loop.
package scheduler

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	bureaurepo "nerve_engine_backend/internal/bureau/repository"
	clientsrepo "nerve_engine_backend/internal/clients/repository"
	"nerve_engine_backend/platform/logger"
)

const defaultInterval = 10 * time.Second

// ClientLister lists the clients the processor iterates.
type ClientLister interface {
	ListWithPrimaryInterest(ctx context.Context) ([]clientsrepo.Client, error)
}

// BureauResolver ensures a bureau profile exists for a client.
type BureauResolver interface {
	Resolve(ctx context.Context, c clientsrepo.Client) (bureaurepo.Profile, error)
}

// Recommender regenerates every category for a client.
type Recommender interface {
	GenerateAll(ctx context.Context, c clientsrepo.Client) error
}

// AutoProcessor periodically sweeps every client with a declared primary
// interest: it ensures the bureau profile exists, then regenerates
// recommendations. Clients are processed sequentially; any per-client
// failure is logged and skipped so a single bad record can never stall the
// loop. The loop runs until the context is cancelled.
type AutoProcessor struct {
	clients     ClientLister
	bureau      BureauResolver
	recommender Recommender
	log         *logger.Logger
	interval    time.Duration
}

// NewAutoProcessor creates the auto-processing loop.
func NewAutoProcessor(pool *pgxpool.Pool, bureau BureauResolver, recommender Recommender, log *logger.Logger, interval time.Duration) *AutoProcessor {
	if interval <= 0 {
		interval = defaultInterval
	}

	return &AutoProcessor{
		clients:     clientsrepo.New(pool),
		bureau:      bureau,
		recommender: recommender,
		log:         log,
		interval:    interval,
	}
}

// Run executes the loop until ctx is cancelled.
func (p *AutoProcessor) Run(ctx context.Context) {
	if p == nil || p.clients == nil {
		return
	}

	p.sweep(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

func (p *AutoProcessor) sweep(ctx context.Context) {
	clients, err := p.clients.ListWithPrimaryInterest(ctx)
	if err != nil {
		p.log.Warn("auto-processor client list failed", "error", err)
		return
	}

	processed := 0
	for _, client := range clients {
		if ctx.Err() != nil {
			return
		}

		if _, err := p.bureau.Resolve(ctx, client); err != nil {
			p.log.Warn("auto-processor bureau resolution failed",
				"client_id", client.ID, "error", err)
			continue
		}

		if err := p.recommender.GenerateAll(ctx, client); err != nil {
			p.log.Warn("auto-processor generation failed",
				"client_id", client.ID, "error", err)
			continue
		}

		processed++
	}

	if processed > 0 {
		p.log.Debug("auto-processor sweep complete", "processed", processed, "total", len(clients))
	}
}
