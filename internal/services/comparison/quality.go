package comparison

import (
	"fmt"

	"FinCompare/internal/domain/models"
)

// InspectYears reports snapshots whose calendarYear cannot take part in year
// matching. The snapshots stay excluded from the window; this only surfaces them.
func InspectYears(slot models.Slot, list []models.RatioSnapshot) []models.Warning {
	var out []models.Warning
	for i := range list {
		if ParseYear(list[i].CalendarYear).Valid() {
			continue
		}
		out = append(out, models.Warning{
			Code:   models.WarnInvalidYear,
			Slot:   slot,
			Symbol: list[i].Symbol,
			Detail: fmt.Sprintf("calendarYear %q at position %d is not a year", string(list[i].CalendarYear), i),
		})
	}
	return out
}

// ShouldRender reports whether a comparison has anything to show: at least one
// slot selected and at least one snapshot list loaded.
func ShouldRender(companyA, companyB *models.SelectedCompany, a, b []models.RatioSnapshot) bool {
	selected := companyA != nil || companyB != nil
	loaded := a != nil || b != nil
	return selected && loaded
}
