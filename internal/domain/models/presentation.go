package models

// Classification is the qualitative bucket a ratio value falls into.
type Classification string

const (
	ClassGood        Classification = "good"
	ClassWarning     Classification = "warning"
	ClassDanger      Classification = "danger"
	ClassNeutral     Classification = "neutral"
	ClassUnavailable Classification = "unavailable"
)

// FormattedValue pairs a value with its display text and classification.
type FormattedValue struct {
	Value   Value          `json:"value"`
	Display string         `json:"display"`
	Class   Classification `json:"class"`
}

// SeriesPoint is one year of one company's values.
type SeriesPoint struct {
	Year  int            `json:"year"`
	Value FormattedValue `json:"value"`
}

// CompanySeries is the per-company layout used by the horizontal comparison box.
type CompanySeries struct {
	CompanyName string        `json:"companyName"`
	Points      []SeriesPoint `json:"points"`
}

// BarTrend describes how the current year moved against the previous one.
type BarTrend string

const (
	TrendUp      BarTrend = "up"
	TrendFlat    BarTrend = "flat"
	TrendDown    BarTrend = "down"
	TrendUnknown BarTrend = "unknown"
)

// BarPair is the previous/current bar pair of the vertical chart.
type BarPair struct {
	CompanyName string       `json:"companyName"`
	Previous    *SeriesPoint `json:"previous,omitempty"`
	Current     *SeriesPoint `json:"current,omitempty"`
	Trend       BarTrend     `json:"trend"`
}

// RatioDescription is the explanatory text attached to a ratio.
type RatioDescription struct {
	Code     string `json:"code"`
	Title    string `json:"title"`
	Markdown string `json:"markdown"`
	HTML     string `json:"html,omitempty"`
}
