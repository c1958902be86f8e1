package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// CalendarYear is the fiscal year label of a snapshot. Providers send it as a
// string, occasionally as a bare number; both decode to the literal text.
type CalendarYear string

func (y *CalendarYear) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*y = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode calendarYear: %w", err)
		}
		*y = CalendarYear(s)
		return nil
	}
	*y = CalendarYear(b)
	return nil
}

// RatioSnapshot is one fiscal period of ratio data for one company.
type RatioSnapshot struct {
	Symbol       string       `json:"symbol"`
	Date         string       `json:"date,omitempty"`
	CalendarYear CalendarYear `json:"calendarYear"`
	Period       string       `json:"period,omitempty"`

	CurrentRatio        RawValue `json:"currentRatio"`
	QuickRatio          RawValue `json:"quickRatio"`
	ReturnOnEquity      RawValue `json:"returnOnEquity"`
	ReturnOnAssets      RawValue `json:"returnOnAssets"`
	ReceivablesTurnover RawValue `json:"receivablesTurnover"`
	DebtEquityRatio     RawValue `json:"debtEquityRatio"`
	PriceEarningsRatio  RawValue `json:"priceEarningsRatio"`
	PriceToSalesRatio   RawValue `json:"priceToSalesRatio"`
	PriceToBookRatio    RawValue `json:"priceToBookRatio"`
}

// SelectedCompany occupies one comparison slot.
type SelectedCompany struct {
	Symbol            string `json:"symbol" validate:"required,max=20"`
	Name              string `json:"name"`
	Currency          string `json:"currency,omitempty"`
	StockExchange     string `json:"stockExchange,omitempty"`
	ExchangeShortName string `json:"exchangeShortName,omitempty"`
}

// DisplayName returns the company name, or "" for an empty slot.
func (c *SelectedCompany) DisplayName() string {
	if c == nil {
		return ""
	}
	return c.Name
}

// Slot identifies one side of a comparison.
type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

// ParseSlot accepts "A"/"B" in any case.
func ParseSlot(s string) (Slot, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return SlotA, nil
	case "B":
		return SlotB, nil
	default:
		return "", fmt.Errorf("unknown slot %q", s)
	}
}
