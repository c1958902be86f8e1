package comparison

import (
	"strconv"
	"strings"

	"FinCompare/internal/domain/models"
)

// Year is a parsed calendarYear. The zero value is the invalid sentinel:
// it never equals any year, itself included.
type Year struct {
	value int
	valid bool
}

// ParseYear accepts an integer surrounded by optional whitespace.
func ParseYear(y models.CalendarYear) Year {
	n, err := strconv.Atoi(strings.TrimSpace(string(y)))
	if err != nil {
		return Year{}
	}
	return Year{value: n, valid: true}
}

func (y Year) Int() (int, bool) { return y.value, y.valid }

func (y Year) Valid() bool { return y.valid }

func (y Year) Equal(o Year) bool { return y.valid && o.valid && y.value == o.value }

func (y Year) String() string {
	if !y.valid {
		return "invalid"
	}
	return strconv.Itoa(y.value)
}
