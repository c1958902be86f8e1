package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"FinCompare/internal/domain/repository"
	"FinCompare/internal/service/ratelimit"
	pkgcache "FinCompare/pkg/cache"
	"FinCompare/pkg/config"
	xhttp "FinCompare/pkg/http"
	pkgkafka "FinCompare/pkg/kafka"
	applogger "FinCompare/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	httpServer *xhttp.Server
	consumer   *pkgkafka.Consumer
	ingest     pkgkafka.MessageHandler
	limiter    *ratelimit.Limiter
	publisher  repository.EventPublisher
	cache      pkgcache.Service

	stop chan struct{}
}

// New creates a new App instance with all dependencies. consumer and
// limiter are nil when disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	httpServer *xhttp.Server,
	consumer *pkgkafka.Consumer,
	ingest pkgkafka.MessageHandler,
	limiter *ratelimit.Limiter,
	publisher repository.EventPublisher,
	cache pkgcache.Service,
) *App {
	return &App{
		cfg:        cfg,
		log:        l,
		httpServer: httpServer,
		consumer:   consumer,
		ingest:     ingest,
		limiter:    limiter,
		publisher:  publisher,
		cache:      cache,
		stop:       make(chan struct{}),
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	if err := a.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh

	a.log.Info("shutdown signal received", applogger.String("signal", sig.String()))
	return a.Shutdown(context.Background())
}

// Start launches background workers and the HTTP server without blocking.
func (a *App) Start() error {
	if a.consumer != nil && a.ingest != nil {
		a.consumer.RegisterHandler(a.ingest)
		if err := a.consumer.Start(); err != nil {
			a.log.Error("kafka consumer start error", applogger.Error(err))
			return err
		}
		a.log.Info("kafka consumer started", applogger.String("topic", a.ingest.Topic()))
	}

	if a.limiter != nil {
		go a.limiter.RunSweeper(a.cfg.RateLimit.CleanupInterval, a.stop)
	}

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("fincompare started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Bool("kafka", a.cfg.Kafka.Enabled),
		applogger.Bool("redis", a.cfg.Cache.Redis.Enabled),
	)
	return nil
}

// Shutdown gracefully stops all services. The HTTP server goes first so no
// new comparison can publish to a closed producer.
func (a *App) Shutdown(ctx context.Context) error {
	a.log.Info("shutting down...")
	close(a.stop)

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("event publisher close error", applogger.Error(err))
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
