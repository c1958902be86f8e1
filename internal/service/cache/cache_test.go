package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
	pkgcache "FinCompare/pkg/cache"
	"FinCompare/pkg/logger"
	"FinCompare/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	snaps    []models.RatioSnapshot
	results  []models.SelectedCompany
	err      error
	ratios   int
	searches int
}

func (s *stubProvider) Ratios(context.Context, string, drepo.Period) ([]models.RatioSnapshot, error) {
	s.ratios++
	return s.snaps, s.err
}

func (s *stubProvider) Search(context.Context, string, int) ([]models.SelectedCompany, error) {
	s.searches++
	return s.results, s.err
}

func newMemory(t *testing.T) *pkgcache.MemoryCache {
	t.Helper()
	mc := pkgcache.NewMemoryCache(pkgcache.WithMemoryCleanup(0))
	t.Cleanup(func() { _ = mc.Close() })
	return mc
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(newMemory(t), time.Minute)

	_, ok, err := store.Get(ctx, "AAPL", drepo.PeriodAnnual)
	require.NoError(t, err)
	assert.False(t, ok)

	in := []models.RatioSnapshot{{
		Symbol:         "AAPL",
		CalendarYear:   "2023",
		ReturnOnAssets: models.Number(0.27),
		CurrentRatio:   models.Text("0.98"),
	}}
	require.NoError(t, store.Put(ctx, "aapl", drepo.PeriodAnnual, in))

	got, ok, err := store.Get(ctx, "AAPL", drepo.PeriodAnnual)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, models.CalendarYear("2023"), got[0].CalendarYear)
	assert.Equal(t, models.RawNumber, got[0].ReturnOnAssets.Kind())
	assert.Equal(t, models.RawText, got[0].CurrentRatio.Kind())
	assert.Equal(t, models.RawMissing, got[0].QuickRatio.Kind())

	_, ok, err = store.Get(ctx, "AAPL", drepo.PeriodQuarter)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotStoreEmptyListIsHit(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(newMemory(t), time.Minute)

	require.NoError(t, store.Put(ctx, "XYZ", drepo.PeriodAnnual, nil))
	got, ok, err := store.Get(ctx, "XYZ", drepo.PeriodAnnual)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSnapshotStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore(newMemory(t), time.Minute)
	require.NoError(t, store.Put(ctx, "AAPL", drepo.PeriodAnnual, nil))
	require.NoError(t, store.Put(ctx, "AAPL", drepo.PeriodQuarter, nil))
	require.NoError(t, store.Put(ctx, "MSFT", drepo.PeriodAnnual, nil))

	require.NoError(t, store.Invalidate(ctx, "aapl"))

	_, ok, _ := store.Get(ctx, "AAPL", drepo.PeriodAnnual)
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "AAPL", drepo.PeriodQuarter)
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, "MSFT", drepo.PeriodAnnual)
	assert.True(t, ok)
}

func TestCachedSourceRatiosHitsProviderOnce(t *testing.T) {
	ctx := context.Background()
	mc := newMemory(t)
	p := &stubProvider{snaps: []models.RatioSnapshot{{Symbol: "AAPL", CalendarYear: "2023"}}}
	cs := NewCachedSource(p, p, NewSnapshotStore(mc, time.Minute), mc, time.Minute, metrics.Nop{}, logger.Nop())

	for i := 0; i < 3; i++ {
		got, err := cs.Ratios(ctx, "AAPL", drepo.PeriodAnnual)
		require.NoError(t, err)
		require.Len(t, got, 1)
	}
	assert.Equal(t, 1, p.ratios)
}

func TestCachedSourceRatiosDoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	mc := newMemory(t)
	p := &stubProvider{err: errors.New("upstream 500")}
	cs := NewCachedSource(p, p, NewSnapshotStore(mc, time.Minute), mc, time.Minute, metrics.Nop{}, logger.Nop())

	_, err := cs.Ratios(ctx, "AAPL", drepo.PeriodAnnual)
	require.Error(t, err)
	_, err = cs.Ratios(ctx, "AAPL", drepo.PeriodAnnual)
	require.Error(t, err)
	assert.Equal(t, 2, p.ratios)
}

func TestCachedSourceSearchNormalizesKey(t *testing.T) {
	ctx := context.Background()
	mc := newMemory(t)
	p := &stubProvider{results: []models.SelectedCompany{{Symbol: "AAPL", Name: "Apple Inc."}}}
	cs := NewCachedSource(p, p, NewSnapshotStore(mc, time.Minute), mc, time.Minute, metrics.Nop{}, logger.Nop())

	_, err := cs.Search(ctx, "Apple", 10)
	require.NoError(t, err)
	got, err := cs.Search(ctx, "  apple ", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Apple Inc.", got[0].Name)
	assert.Equal(t, 1, p.searches)

	_, err = cs.Search(ctx, "apple", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, p.searches)
}
