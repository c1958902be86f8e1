package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
	"FinCompare/internal/services/comparison"
	"FinCompare/internal/services/presentation"
	"FinCompare/pkg/logger"

	"github.com/google/uuid"
)

// CompareInput is one comparison request with ratio keys already validated.
type CompareInput struct {
	CompanyA *models.SelectedCompany
	CompanyB *models.SelectedCompany
	Period   drepo.Period
	Ratios   []models.RatioKey
}

// SlotData is the outcome of loading one slot. Snapshots is nil when the slot
// is empty or the fetch failed.
type SlotData struct {
	Snapshots []models.RatioSnapshot
	Warnings  []models.Warning
}

// ComparisonService fetches both slots, reconciles every requested ratio and
// attaches presentation views.
type ComparisonService struct {
	source    drepo.RatioSource
	publisher drepo.EventPublisher
	metrics   drepo.Metrics
	log       *logger.Logger

	now   func() time.Time
	newID func() string
}

func NewComparisonService(source drepo.RatioSource, publisher drepo.EventPublisher, metrics drepo.Metrics, l *logger.Logger) *ComparisonService {
	return &ComparisonService{
		source:    source,
		publisher: publisher,
		metrics:   metrics,
		log:       l,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Compare loads both slots concurrently and builds the comparison. Provider
// failures degrade to warnings; only a cancelled context is an error.
func (s *ComparisonService) Compare(ctx context.Context, in CompareInput) (*models.Comparison, error) {
	var (
		wg   sync.WaitGroup
		a, b SlotData
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		a = s.Load(ctx, models.SlotA, in.CompanyA, in.Period)
	}()
	go func() {
		defer wg.Done()
		b = s.Load(ctx, models.SlotB, in.CompanyB, in.Period)
	}()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	return s.Build(ctx, in, a, b), nil
}

// Load fetches the snapshot list for one slot. An empty slot yields no data
// and no warnings.
func (s *ComparisonService) Load(ctx context.Context, slot models.Slot, company *models.SelectedCompany, period drepo.Period) SlotData {
	if company == nil || company.Symbol == "" {
		return SlotData{}
	}

	snaps, err := s.source.Ratios(ctx, company.Symbol, period)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.Warn("ratio fetch failed",
				logger.String("slot", string(slot)),
				logger.String("symbol", company.Symbol),
				logger.Error(err),
			)
		}
		s.metrics.RecordError("fetch")
		return SlotData{Warnings: []models.Warning{{
			Code:   models.WarnFetchFailed,
			Slot:   slot,
			Symbol: company.Symbol,
			Detail: err.Error(),
		}}}
	}
	if snaps == nil {
		snaps = []models.RatioSnapshot{}
	}

	var warnings []models.Warning
	if len(snaps) == 0 {
		warnings = append(warnings, models.Warning{
			Code:   models.WarnNoData,
			Slot:   slot,
			Symbol: company.Symbol,
			Detail: fmt.Sprintf("no %s ratio data for %s", period, company.Symbol),
		})
	}
	warnings = append(warnings, comparison.InspectYears(slot, snaps)...)
	return SlotData{Snapshots: snaps, Warnings: warnings}
}

// Build reconciles already-loaded slot data. It never fails.
func (s *ComparisonService) Build(ctx context.Context, in CompareInput, a, b SlotData) *models.Comparison {
	start := s.now()
	keys := in.Ratios
	if len(keys) == 0 {
		keys = models.AllRatioKeys()
	}

	out := &models.Comparison{
		CompanyA: in.CompanyA,
		CompanyB: in.CompanyB,
		Period:   string(in.Period),
		Render:   comparison.ShouldRender(in.CompanyA, in.CompanyB, a.Snapshots, b.Snapshots),
		Years:    comparison.ComparisonYears(a.Snapshots, b.Snapshots),
		Ratios:   make([]models.RatioComparison, 0, len(keys)),
	}
	out.Warnings = append(out.Warnings, a.Warnings...)
	out.Warnings = append(out.Warnings, b.Warnings...)

	for _, key := range keys {
		rows := comparison.Reconcile(a.Snapshots, b.Snapshots, in.CompanyA, in.CompanyB, key)
		out.Ratios = append(out.Ratios, presentation.Build(key, rows))
	}

	for _, w := range out.Warnings {
		s.metrics.RecordWarning(string(w.Code))
	}
	s.metrics.RecordComparison(out.Period, len(keys))
	elapsed := s.now().Sub(start).Seconds()
	s.metrics.RecordLatency("compare", elapsed)
	s.log.Debug("comparison built",
		logger.String("period", out.Period),
		logger.Int("ratios", len(keys)),
		logger.Int("warnings", len(out.Warnings)),
		logger.Bool("render", out.Render),
		logger.Float64("latency_seconds", elapsed),
	)

	if out.Render {
		s.publish(ctx, out, keys)
	}
	return out
}

func (s *ComparisonService) publish(ctx context.Context, c *models.Comparison, keys []models.RatioKey) {
	ev := &models.ComparisonEvent{
		ID:        s.newID(),
		Timestamp: s.now().UTC(),
		SymbolA:   symbolOf(c.CompanyA),
		SymbolB:   symbolOf(c.CompanyB),
		Period:    c.Period,
		Ratios:    keys,
		Years:     c.Years,
		Warnings:  c.Warnings,
	}
	if err := s.publisher.PublishComparison(ctx, ev); err != nil {
		s.log.Error("publish comparison event", logger.String("id", ev.ID), logger.Error(err))
		s.metrics.RecordError("publish")
	}
}

func symbolOf(c *models.SelectedCompany) string {
	if c == nil {
		return ""
	}
	return c.Symbol
}
