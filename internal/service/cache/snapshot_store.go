package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
	pkgcache "FinCompare/pkg/cache"
)

const snapshotPrefix = "ratios"

// SnapshotStore keeps snapshot lists in a pkg/cache backend under
// ratios:{SYMBOL}:{period}.
type SnapshotStore struct {
	svc pkgcache.Service
	ttl time.Duration
}

var _ drepo.SnapshotStore = (*SnapshotStore)(nil)

func NewSnapshotStore(svc pkgcache.Service, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{svc: svc, ttl: ttl}
}

// SnapshotKey builds the cache key for one company and period.
func SnapshotKey(symbol string, period drepo.Period) string {
	return pkgcache.GenerateKeyWithParams(snapshotPrefix, strings.ToUpper(strings.TrimSpace(symbol)), period)
}

// Get returns ok=false on a miss. An empty stored list is a hit.
func (s *SnapshotStore) Get(ctx context.Context, symbol string, period drepo.Period) ([]models.RatioSnapshot, bool, error) {
	var out []models.RatioSnapshot
	err := s.svc.Get(ctx, SnapshotKey(symbol, period), &out)
	if errors.Is(err, pkgcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("snapshot store get: %w", err)
	}
	if out == nil {
		out = []models.RatioSnapshot{}
	}
	return out, true, nil
}

// Put replaces the stored list for (symbol, period).
func (s *SnapshotStore) Put(ctx context.Context, symbol string, period drepo.Period, snapshots []models.RatioSnapshot) error {
	if snapshots == nil {
		snapshots = []models.RatioSnapshot{}
	}
	if err := s.svc.Set(ctx, SnapshotKey(symbol, period), snapshots, s.ttl); err != nil {
		return fmt.Errorf("snapshot store put: %w", err)
	}
	return nil
}

// Invalidate drops every cached period for symbol.
func (s *SnapshotStore) Invalidate(ctx context.Context, symbol string) error {
	prefix := pkgcache.GenerateKey(snapshotPrefix, strings.ToUpper(strings.TrimSpace(symbol))) + ":"
	return s.svc.DeleteByPattern(ctx, pkgcache.BuildPattern(prefix))
}
