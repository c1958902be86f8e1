package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
	"FinCompare/pkg/logger"
	"FinCompare/pkg/metrics"
)

type fakeSource struct {
	mu    sync.Mutex
	data  map[string][]models.RatioSnapshot
	errs  map[string]error
	calls map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		data:  map[string][]models.RatioSnapshot{},
		errs:  map[string]error{},
		calls: map[string]int{},
	}
}

func (f *fakeSource) Ratios(_ context.Context, symbol string, period drepo.Period) ([]models.RatioSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[symbol+"/"+string(period)]++
	if err := f.errs[symbol]; err != nil {
		return nil, err
	}
	return f.data[symbol], nil
}

func (f *fakeSource) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

type fakePublisher struct {
	events []*models.ComparisonEvent
	err    error
}

func (p *fakePublisher) PublishComparison(_ context.Context, ev *models.ComparisonEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

type fakeStore struct {
	puts map[string][]models.RatioSnapshot
	err  error
}

func (s *fakeStore) Get(context.Context, string, drepo.Period) ([]models.RatioSnapshot, bool, error) {
	return nil, false, nil
}

func (s *fakeStore) Put(_ context.Context, symbol string, period drepo.Period, snaps []models.RatioSnapshot) error {
	if s.err != nil {
		return s.err
	}
	if s.puts == nil {
		s.puts = map[string][]models.RatioSnapshot{}
	}
	s.puts[symbol+"/"+string(period)] = snaps
	return nil
}

func roa(symbol, year string, v models.RawValue) models.RatioSnapshot {
	return models.RatioSnapshot{Symbol: symbol, CalendarYear: models.CalendarYear(year), ReturnOnAssets: v}
}

func testService(src drepo.RatioSource, pub drepo.EventPublisher) *ComparisonService {
	svc := NewComparisonService(src, pub, metrics.Nop{}, logger.Nop())
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	svc.newID = func() string { return "evt-1" }
	return svc
}

var errUpstream = errors.New("upstream unavailable")
