package models

import "time"

// ComparisonRow is one fiscal year of a side-by-side comparison for a single ratio.
type ComparisonRow struct {
	Year         int    `json:"year"`
	CompanyA     Value  `json:"companyA"`
	CompanyB     Value  `json:"companyB"`
	CompanyAName string `json:"companyAName"`
	CompanyBName string `json:"companyBName"`
}

// WarningCode classifies data-quality findings.
type WarningCode string

const (
	WarnInvalidYear WarningCode = "INVALID_CALENDAR_YEAR"
	WarnFetchFailed WarningCode = "FETCH_FAILED"
	WarnNoData      WarningCode = "NO_DATA"
)

// Warning is a non-fatal data-quality finding surfaced next to a comparison.
type Warning struct {
	Code   WarningCode `json:"code"`
	Slot   Slot        `json:"slot,omitempty"`
	Symbol string      `json:"symbol,omitempty"`
	Detail string      `json:"detail"`
}

// RatioComparison is the reconciled rows for one ratio plus their display views.
type RatioComparison struct {
	Key    RatioKey        `json:"key"`
	Code   string          `json:"code"`
	Label  string          `json:"label"`
	Rows   []ComparisonRow `json:"rows"`
	Series []CompanySeries `json:"series"`
	Bars   []BarPair       `json:"bars"`
	Empty  string          `json:"empty,omitempty"`
}

// Comparison is the full payload handed to clients for two selected slots.
type Comparison struct {
	CompanyA *SelectedCompany  `json:"companyA"`
	CompanyB *SelectedCompany  `json:"companyB"`
	Period   string            `json:"period"`
	Render   bool              `json:"render"`
	Years    []int             `json:"years"`
	Ratios   []RatioComparison `json:"ratios"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// ComparisonEvent is published after a comparison is computed.
type ComparisonEvent struct {
	ID        string     `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	SymbolA   string     `json:"symbolA,omitempty"`
	SymbolB   string     `json:"symbolB,omitempty"`
	Period    string     `json:"period"`
	Ratios    []RatioKey `json:"ratios"`
	Years     []int      `json:"years"`
	Warnings  []Warning  `json:"warnings,omitempty"`
}

// SnapshotBatch is the ingestion message that replaces one company's snapshot list.
type SnapshotBatch struct {
	Symbol    string          `json:"symbol"`
	Period    string          `json:"period"`
	Snapshots []RatioSnapshot `json:"snapshots"`
}
