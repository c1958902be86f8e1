package repository

import (
	"context"

	"FinCompare/internal/domain/models"
)

// RatioSource supplies the snapshot list of one company.
type RatioSource interface {
	Ratios(ctx context.Context, symbol string, period Period) ([]models.RatioSnapshot, error)
}

// CompanySearcher resolves free-text queries into selectable companies.
type CompanySearcher interface {
	Search(ctx context.Context, query string, limit int) ([]models.SelectedCompany, error)
}

// RatioProvider is a source that also serves company search.
type RatioProvider interface {
	RatioSource
	CompanySearcher
}

// SnapshotStore keeps fetched snapshot lists keyed by (symbol, period).
// Put replaces the stored list wholesale.
type SnapshotStore interface {
	Get(ctx context.Context, symbol string, period Period) ([]models.RatioSnapshot, bool, error)
	Put(ctx context.Context, symbol string, period Period, snapshots []models.RatioSnapshot) error
}

type EventPublisher interface {
	PublishComparison(ctx context.Context, ev *models.ComparisonEvent) error
	Close() error
}

type Metrics interface {
	RecordComparison(period string, ratios int)
	RecordFetch(source, result string)
	RecordCacheLookup(hit bool)
	RecordWarning(code string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
