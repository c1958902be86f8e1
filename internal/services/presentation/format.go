package presentation

import (
	"github.com/shopspring/decimal"

	"FinCompare/internal/domain/models"
)

// NotAvailable is displayed in place of an absent value.
const NotAvailable = "N/A"

// FormatNumber renders v with two decimals, rounding half away from zero.
func FormatNumber(v models.Value) string {
	n, ok := v.Get()
	if !ok {
		return NotAvailable
	}
	return decimal.NewFromFloat(n).StringFixed(2)
}

// Format pairs a value with its display text and classification.
func Format(code string, v models.Value) models.FormattedValue {
	return models.FormattedValue{
		Value:   v,
		Display: FormatNumber(v),
		Class:   Classify(code, v),
	}
}
