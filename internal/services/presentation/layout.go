package presentation

import "FinCompare/internal/domain/models"

// EmptyMessage is shown when a ratio has no rows to compare.
const EmptyMessage = "No comparison data available."

// Series regroups rows into one series per company. Companies without a name
// (empty slots) are dropped. Points keep the rows' most-recent-first order.
func Series(code string, rows []models.ComparisonRow) []models.CompanySeries {
	if len(rows) == 0 {
		return []models.CompanySeries{}
	}

	a := models.CompanySeries{CompanyName: rows[0].CompanyAName, Points: make([]models.SeriesPoint, 0, len(rows))}
	b := models.CompanySeries{CompanyName: rows[0].CompanyBName, Points: make([]models.SeriesPoint, 0, len(rows))}
	for _, r := range rows {
		a.Points = append(a.Points, models.SeriesPoint{Year: r.Year, Value: Format(code, r.CompanyA)})
		b.Points = append(b.Points, models.SeriesPoint{Year: r.Year, Value: Format(code, r.CompanyB)})
	}

	out := make([]models.CompanySeries, 0, 2)
	for _, s := range []models.CompanySeries{a, b} {
		if s.CompanyName == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Bars builds the previous/current pair for each company series.
func Bars(series []models.CompanySeries) []models.BarPair {
	out := make([]models.BarPair, 0, len(series))
	for _, s := range series {
		pair := models.BarPair{CompanyName: s.CompanyName, Trend: models.TrendUnknown}
		if len(s.Points) > 0 {
			cur := s.Points[0]
			pair.Current = &cur
		}
		if len(s.Points) > 1 {
			prev := s.Points[1]
			pair.Previous = &prev
		}
		if pair.Current != nil && pair.Previous != nil {
			pair.Trend = Trend(pair.Previous.Value.Value, pair.Current.Value.Value)
		}
		out = append(out, pair)
	}
	return out
}

// Trend compares the current value against the previous one.
func Trend(previous, current models.Value) models.BarTrend {
	p, okP := previous.Get()
	c, okC := current.Get()
	switch {
	case !okP || !okC:
		return models.TrendUnknown
	case c > p:
		return models.TrendUp
	case c == p:
		return models.TrendFlat
	default:
		return models.TrendDown
	}
}

// Build assembles the display views for one ratio's reconciled rows.
func Build(key models.RatioKey, rows []models.ComparisonRow) models.RatioComparison {
	info, _ := key.Info()
	series := Series(info.Code, rows)
	rc := models.RatioComparison{
		Key:    key,
		Code:   info.Code,
		Label:  info.Label,
		Rows:   rows,
		Series: series,
		Bars:   Bars(series),
	}
	if len(series) == 0 {
		rc.Empty = EmptyMessage
	}
	return rc
}
