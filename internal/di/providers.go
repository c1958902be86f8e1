package di

import (
	"fmt"

	"FinCompare/internal/domain/repository"
	"FinCompare/internal/handler/api"
	internalrepo "FinCompare/internal/repository"
	icache "FinCompare/internal/service/cache"
	"FinCompare/internal/service/fmp"
	"FinCompare/internal/service/ratelimit"
	"FinCompare/internal/services/presentation"
	"FinCompare/internal/usecase"
	pkgcache "FinCompare/pkg/cache"
	"FinCompare/pkg/config"
	xhttp "FinCompare/pkg/http"
	pkgkafka "FinCompare/pkg/kafka"
	applogger "FinCompare/pkg/logger"
	"FinCompare/pkg/metrics"
	"FinCompare/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New(nil)
}

// ProvideCache builds the cache backend: memory, Redis, or memory in front
// of Redis when both are enabled.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	var mem *pkgcache.MemoryCache
	if cfg.Cache.Memory.Enabled || !cfg.Cache.Redis.Enabled {
		mem = pkgcache.NewMemoryCache(
			pkgcache.WithMemoryCleanup(cfg.Cache.Memory.CleanupInterval),
			pkgcache.WithMemoryDefaultTTL(cfg.Cache.SnapshotTTL),
		)
	}
	if !cfg.Cache.Redis.Enabled {
		return mem, nil
	}

	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisAddr(cfg.Cache.Redis.Addr),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		if mem != nil {
			_ = mem.Close()
		}
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	if mem == nil {
		return rc, nil
	}
	return pkgcache.NewLayeredCache(mem, rc), nil
}

// ProvideSnapshotStore stores snapshot lists in the cache backend.
func ProvideSnapshotStore(svc pkgcache.Service, cfg *config.Config) repository.SnapshotStore {
	return icache.NewSnapshotStore(svc, cfg.Cache.SnapshotTTL)
}

// ProvideFMPClient creates the ratio provider client.
func ProvideFMPClient(cfg *config.Config) *fmp.Client {
	return fmp.New(fmp.Config{
		BaseURL:    cfg.Provider.BaseURL,
		APIKey:     cfg.Provider.APIKey,
		Timeout:    cfg.Provider.Timeout,
		RatePerSec: cfg.Provider.RatePerSec,
		Burst:      cfg.Provider.Burst,
	})
}

// ProvideRatioProvider decorates the client with the cache when enabled.
func ProvideRatioProvider(
	cfg *config.Config,
	client *fmp.Client,
	store repository.SnapshotStore,
	svc pkgcache.Service,
	m repository.Metrics,
	l *applogger.Logger,
) repository.RatioProvider {
	if !cfg.Cache.Enabled {
		return client
	}
	return icache.NewCachedSource(client, client, store, svc, cfg.Cache.SearchTTL, m, l)
}

// ProvideEventPublisher publishes comparison events to Kafka, or drops them
// when Kafka is disabled.
func ProvideEventPublisher(cfg *config.Config) (repository.EventPublisher, error) {
	if !cfg.Kafka.Enabled {
		return internalrepo.NopPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithProducerLinger(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.WriteTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.EventsTopic), nil
}

// ProvideComparisonService creates the comparison use case.
func ProvideComparisonService(
	p repository.RatioProvider,
	pub repository.EventPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.ComparisonService {
	return usecase.NewComparisonService(p, pub, m, l)
}

// ProvideHTTPHandler registers the API and WebSocket routes.
func ProvideHTTPHandler(
	l *applogger.Logger,
	svc *usecase.ComparisonService,
	p repository.RatioProvider,
	d *presentation.Describer,
) xhttp.Handler {
	return xhttp.Handlers{
		api.NewCompareEchoHandler(l, svc, p, p, d),
		api.NewSessionWSHandler(l, svc),
	}
}

// ProvideRateLimiter returns the per-IP limiter, or nil when disabled.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, h xhttp.Handler, l *applogger.Logger, lim *ratelimit.Limiter) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(cfg.Server.CORS),
		xhttp.WithEnvironment(cfg.Environment),
		xhttp.WithMetrics(cfg.Metrics.Enabled, cfg.Metrics.Path, cfg.Server.SlowThreshold),
	}
	// a nil *Limiter must not become a non-nil Allower
	if lim != nil {
		opts = append(opts, xhttp.WithRateLimiter(lim))
	}
	return xhttp.NewServer(h, l, opts...)
}

// ProvideSnapshotIngestHandler handles the snapshot ingestion topic.
func ProvideSnapshotIngestHandler(store repository.SnapshotStore, m repository.Metrics, cfg *config.Config) *usecase.SnapshotIngestHandler {
	return usecase.NewSnapshotIngestHandler(cfg.Kafka.SnapshotsTopic, store, m)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML, or nil
// when ingestion is disabled.
func ProvideKafkaConsumer(cfg *config.Config, l *applogger.Logger) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled || !cfg.Kafka.Consumer.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(l,
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	srv *xhttp.Server,
	consumer *pkgkafka.Consumer,
	ingest *usecase.SnapshotIngestHandler,
	lim *ratelimit.Limiter,
	pub repository.EventPublisher,
	svc pkgcache.Service,
) *server.App {
	return server.New(cfg, l, srv, consumer, ingest, lim, pub, svc)
}
