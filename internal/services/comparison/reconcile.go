package comparison

import (
	"sort"

	"FinCompare/internal/domain/models"
)

// WindowSize is the number of fiscal years compared: current and previous.
const WindowSize = 2

// ComparisonYears returns the distinct valid years across both lists, most
// recent first, truncated to WindowSize. Invalid years are skipped.
func ComparisonYears(a, b []models.RatioSnapshot) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	years := make([]int, 0, len(a)+len(b))
	for _, list := range [...][]models.RatioSnapshot{a, b} {
		for i := range list {
			y, ok := ParseYear(list[i].CalendarYear).Int()
			if !ok {
				continue
			}
			if _, dup := seen[y]; dup {
				continue
			}
			seen[y] = struct{}{}
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	if len(years) > WindowSize {
		years = years[:WindowSize]
	}
	return years
}

// Reconcile aligns two snapshot lists by fiscal year and extracts one ratio.
// It returns at most WindowSize rows in strictly descending year order and
// never fails: missing snapshots, fields or companies degrade to absent values
// and empty names.
func Reconcile(a, b []models.RatioSnapshot, companyA, companyB *models.SelectedCompany, key models.RatioKey) []models.ComparisonRow {
	years := ComparisonYears(a, b)
	nameA, nameB := companyA.DisplayName(), companyB.DisplayName()

	rows := make([]models.ComparisonRow, 0, len(years))
	for _, year := range years {
		rows = append(rows, models.ComparisonRow{
			Year:         year,
			CompanyA:     Coerce(key.Field(findYear(a, year))),
			CompanyB:     Coerce(key.Field(findYear(b, year))),
			CompanyAName: nameA,
			CompanyBName: nameB,
		})
	}
	return rows
}

// findYear returns the first snapshot whose calendarYear parses to year.
func findYear(list []models.RatioSnapshot, year int) *models.RatioSnapshot {
	for i := range list {
		if y, ok := ParseYear(list[i].CalendarYear).Int(); ok && y == year {
			return &list[i]
		}
	}
	return nil
}
