package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
	pkgcache "FinCompare/pkg/cache"
	"FinCompare/pkg/logger"
)

const searchPrefix = "search"

// CachedSource serves ratios and search results from cache and falls back to
// the provider on a miss. Cache failures never fail a request.
type CachedSource struct {
	source    drepo.RatioSource
	searcher  drepo.CompanySearcher
	store     drepo.SnapshotStore
	cache     pkgcache.Service
	searchTTL time.Duration
	metrics   drepo.Metrics
	log       *logger.Logger
}

var (
	_ drepo.RatioSource     = (*CachedSource)(nil)
	_ drepo.CompanySearcher = (*CachedSource)(nil)
)

// NewCachedSource wraps provider. svc backs search results; store backs
// snapshot lists.
func NewCachedSource(source drepo.RatioSource, searcher drepo.CompanySearcher, store drepo.SnapshotStore, svc pkgcache.Service, searchTTL time.Duration, m drepo.Metrics, l *logger.Logger) *CachedSource {
	return &CachedSource{
		source:    source,
		searcher:  searcher,
		store:     store,
		cache:     svc,
		searchTTL: searchTTL,
		metrics:   m,
		log:       l,
	}
}

func (c *CachedSource) Ratios(ctx context.Context, symbol string, period drepo.Period) ([]models.RatioSnapshot, error) {
	snaps, ok, err := c.store.Get(ctx, symbol, period)
	if err != nil {
		c.log.Warn("snapshot cache read failed", logger.String("symbol", symbol), logger.Error(err))
		c.metrics.RecordError("cache")
	}
	c.metrics.RecordCacheLookup(ok)
	if ok {
		c.metrics.RecordFetch("cache", "ok")
		return snaps, nil
	}

	start := time.Now()
	snaps, err = c.source.Ratios(ctx, symbol, period)
	c.metrics.RecordLatency("provider_ratios", time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordFetch("provider", "error")
		return nil, err
	}
	c.metrics.RecordFetch("provider", "ok")

	if err := c.store.Put(ctx, symbol, period, snaps); err != nil {
		c.log.Warn("snapshot cache write failed", logger.String("symbol", symbol), logger.Error(err))
		c.metrics.RecordError("cache")
	}
	return snaps, nil
}

func (c *CachedSource) Search(ctx context.Context, query string, limit int) ([]models.SelectedCompany, error) {
	key := pkgcache.GenerateKeyWithParams(searchPrefix, strings.ToLower(strings.TrimSpace(query)), limit)

	var out []models.SelectedCompany
	err := c.cache.Get(ctx, key, &out)
	switch {
	case err == nil:
		c.metrics.RecordCacheLookup(true)
		return out, nil
	case !errors.Is(err, pkgcache.ErrCacheMiss):
		c.log.Warn("search cache read failed", logger.String("query", query), logger.Error(err))
		c.metrics.RecordError("cache")
	}
	c.metrics.RecordCacheLookup(false)

	start := time.Now()
	out, err = c.searcher.Search(ctx, query, limit)
	c.metrics.RecordLatency("provider_search", time.Since(start).Seconds())
	if err != nil {
		c.metrics.RecordFetch("search", "error")
		return nil, err
	}
	c.metrics.RecordFetch("search", "ok")

	if err := c.cache.Set(ctx, key, out, c.searchTTL); err != nil {
		c.log.Warn("search cache write failed", logger.String("query", query), logger.Error(err))
	}
	return out, nil
}
