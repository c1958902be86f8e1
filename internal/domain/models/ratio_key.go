package models

import (
	"errors"
	"fmt"
	"strings"
)

// RatioKey names one of the ratio fields carried by RatioSnapshot.
type RatioKey string

const (
	CurrentRatio        RatioKey = "currentRatio"
	QuickRatio          RatioKey = "quickRatio"
	ReturnOnEquity      RatioKey = "returnOnEquity"
	ReturnOnAssets      RatioKey = "returnOnAssets"
	ReceivablesTurnover RatioKey = "receivablesTurnover"
	DebtEquityRatio     RatioKey = "debtEquityRatio"
	PriceEarningsRatio  RatioKey = "priceEarningsRatio"
	PriceToSalesRatio   RatioKey = "priceToSalesRatio"
	PriceToBookRatio    RatioKey = "priceToBookRatio"
)

// ErrUnknownRatio is returned by ParseRatioKey for names outside the closed set.
var ErrUnknownRatio = errors.New("unknown ratio key")

// RatioInfo describes a ratio key for display.
type RatioInfo struct {
	Key      RatioKey `json:"key"`
	Code     string   `json:"code"`
	Label    string   `json:"label"`
	Category string   `json:"category"`

	field func(*RatioSnapshot) RawValue
}

var ratioCatalog = []RatioInfo{
	{Key: CurrentRatio, Code: "CR", Label: "Current Ratio", Category: "liquidity",
		field: func(s *RatioSnapshot) RawValue { return s.CurrentRatio }},
	{Key: QuickRatio, Code: "QR", Label: "Quick Ratio", Category: "liquidity",
		field: func(s *RatioSnapshot) RawValue { return s.QuickRatio }},
	{Key: ReturnOnEquity, Code: "ROE", Label: "Return on Equity", Category: "profitability",
		field: func(s *RatioSnapshot) RawValue { return s.ReturnOnEquity }},
	{Key: ReturnOnAssets, Code: "ROA", Label: "Return on Assets", Category: "profitability",
		field: func(s *RatioSnapshot) RawValue { return s.ReturnOnAssets }},
	{Key: ReceivablesTurnover, Code: "RT", Label: "Receivables Turnover", Category: "efficiency",
		field: func(s *RatioSnapshot) RawValue { return s.ReceivablesTurnover }},
	{Key: DebtEquityRatio, Code: "DE", Label: "Debt to Equity Ratio", Category: "leverage",
		field: func(s *RatioSnapshot) RawValue { return s.DebtEquityRatio }},
	{Key: PriceEarningsRatio, Code: "PE", Label: "Price to Earnings Ratio", Category: "valuation",
		field: func(s *RatioSnapshot) RawValue { return s.PriceEarningsRatio }},
	{Key: PriceToSalesRatio, Code: "PSR", Label: "Price to Sales Ratio", Category: "valuation",
		field: func(s *RatioSnapshot) RawValue { return s.PriceToSalesRatio }},
	{Key: PriceToBookRatio, Code: "PBR", Label: "Price to Book Ratio", Category: "valuation",
		field: func(s *RatioSnapshot) RawValue { return s.PriceToBookRatio }},
}

var (
	ratioByKey  = make(map[RatioKey]*RatioInfo, len(ratioCatalog))
	ratioByCode = make(map[string]*RatioInfo, len(ratioCatalog))
)

func init() {
	for i := range ratioCatalog {
		info := &ratioCatalog[i]
		ratioByKey[info.Key] = info
		ratioByCode[info.Code] = info
	}
}

// AllRatioKeys returns the closed set in catalog order.
func AllRatioKeys() []RatioKey {
	keys := make([]RatioKey, 0, len(ratioCatalog))
	for _, info := range ratioCatalog {
		keys = append(keys, info.Key)
	}
	return keys
}

// RatioCatalog returns a copy of the catalog.
func RatioCatalog() []RatioInfo {
	out := make([]RatioInfo, len(ratioCatalog))
	copy(out, ratioCatalog)
	return out
}

// ParseRatioKey validates a ratio field name. Matching is exact.
func ParseRatioKey(s string) (RatioKey, error) {
	k := RatioKey(strings.TrimSpace(s))
	if _, ok := ratioByKey[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRatio, s)
	}
	return k, nil
}

// ParseRatioKeys validates a list; an empty list means every key.
func ParseRatioKeys(names []string) ([]RatioKey, error) {
	if len(names) == 0 {
		return AllRatioKeys(), nil
	}
	seen := make(map[RatioKey]bool, len(names))
	keys := make([]RatioKey, 0, len(names))
	for _, n := range names {
		k, err := ParseRatioKey(n)
		if err != nil {
			return nil, err
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys, nil
}

// Info returns catalog metadata; ok is false for keys outside the set.
func (k RatioKey) Info() (RatioInfo, bool) {
	info, ok := ratioByKey[k]
	if !ok {
		return RatioInfo{}, false
	}
	return *info, true
}

// Code returns the short display code, or "" for unknown keys.
func (k RatioKey) Code() string {
	if info, ok := ratioByKey[k]; ok {
		return info.Code
	}
	return ""
}

// Field extracts the raw value for k from s. Unknown keys and nil snapshots
// yield Missing.
func (k RatioKey) Field(s *RatioSnapshot) RawValue {
	info, ok := ratioByKey[k]
	if !ok || s == nil {
		return Missing()
	}
	return info.field(s)
}

// RatioByCode looks a ratio up by its display code (e.g. "CR").
func RatioByCode(code string) (RatioInfo, bool) {
	info, ok := ratioByCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return RatioInfo{}, false
	}
	return *info, true
}
