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

	"storefront_backend/internal/adapters"
	"storefront_backend/internal/catalog"
	catrepo "storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/checkout"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/internal/http/router"
	"storefront_backend/internal/interactions/client"
	"storefront_backend/internal/orders"
	"storefront_backend/internal/orders/commands"
	orderrepo "storefront_backend/internal/orders/repository"
	"storefront_backend/internal/scheduler"
	"storefront_backend/platform/config"
	"storefront_backend/platform/db"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/metrics"
	"storefront_backend/platform/tracing"
	"storefront_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init("storefront-api", cfg.IsTracingEnabled())
	if err != nil {
		panic("failed to initialize tracing: " + err.Error())
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}

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

	val := validator.New()
	appMetrics := metrics.New()
	health := []apphttp.HealthChecker{db.NewPoolAdapter(pool)}

	interactionsClient, err := client.New(client.Config{
		URL:     cfg.GetLambdaURL(),
		APIKey:  cfg.GetLambdaToken(),
		Timeout: cfg.GetLambdaTimeout(),
	}, val, log)
	if err != nil {
		log.Error("failed to initialize interactions client", "error", err)
		panic("failed to initialize interactions client: " + err.Error())
	}

	g, gctx := errgroup.WithContext(ctx)

	// One ordered command queue per process. With Redis configured, orders
	// are written by cmd/worker; otherwise an in-process dispatcher drains it.
	var queue commands.Queue
	if cfg.IsRedisEnabled() {
		redisQueue, err := scheduler.NewQueue(cfg)
		if err != nil {
			log.Error("failed to initialize order queue", "error", err)
			panic("failed to initialize order queue: " + err.Error())
		}
		queue = redisQueue

		redisHealth, err := scheduler.NewRedisHealth(cfg.GetRedisURL())
		if err != nil {
			panic("failed to initialize redis health check: " + err.Error())
		}
		defer func() { _ = redisHealth.Close() }()
		health = append(health, redisHealth)
		log.Info("order queue backed by redis", "queue", cfg.GetAsynqQueueName())
	} else {
		channelQueue := commands.NewChannelQueue(cfg.GetCommandBuffer())
		queue = channelQueue

		executor := orders.NewExecutor(orderrepo.New(pool), log)
		dispatcher := commands.NewDispatcher(channelQueue, executor, log)
		// Not tied to gctx: the dispatcher drains until the queue is closed.
		g.Go(func() error { return dispatcher.Run(context.Background()) })
		log.Info("order queue running in process", "buffer", cfg.GetCommandBuffer())
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	catalogModule := catalog.NewModule(catrepo.New(pool), log)
	checkoutModule := checkout.NewModule(
		adapters.NewCatalogNameResolver(catalogModule.Service()),
		adapters.NewInteractionChecker(interactionsClient),
		queue,
		appMetrics,
		log,
	)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  health,
		Metrics: appMetrics,
		Modules: []apphttp.Module{
			catalogModule,
			checkoutModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		// No handler can enqueue past this point; closing lets the dispatcher drain.
		if closeErr := queue.Close(); closeErr != nil {
			log.Error("failed to close order queue", "error", closeErr)
		}
		return err
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
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

	return errors.New(name + ": " + lastErr.Error())
}
