package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"nerve_engine_backend/internal/bureau"
	"nerve_engine_backend/internal/events"
	"nerve_engine_backend/internal/http/router"
	"nerve_engine_backend/internal/recommendations"
	"nerve_engine_backend/migrations"
	"nerve_engine_backend/platform/config"
	"nerve_engine_backend/platform/db"
	"nerve_engine_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	subscribeObservers(eventBus, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	bureauModule := bureau.NewModule(pool, cfg, eventBus, log)
	recommendationsModule := recommendations.NewModule(pool, bureauModule.Service(), eventBus, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	engine := router.New(cfg, log, recommendationsModule.Handler())

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}
}

// subscribeObservers attaches logging observers for the domain events both
// drivers publish.
func subscribeObservers(bus events.Bus, log *logger.Logger) {
	bus.Subscribe(events.BureauProfileCreated{}.EventName(), events.HandlerFunc(
		func(_ context.Context, event events.Event) error {
			if e, ok := event.(events.BureauProfileCreated); ok {
				log.Info("bureau profile created", "client_id", e.ClientID, "presage_score", e.PresageScore)
			}
			return nil
		}))

	bus.Subscribe(events.RecommendationGenerated{}.EventName(), events.HandlerFunc(
		func(_ context.Context, event events.Event) error {
			if e, ok := event.(events.RecommendationGenerated); ok {
				log.Info("recommendation generated", "client_id", e.ClientID, "categories", e.Categories)
			}
			return nil
		}))
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
