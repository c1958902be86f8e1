package comparison

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"

	"FinCompare/internal/domain/models"
)

// Coerce converts a raw ratio field into a finite number or absent.
// Text is parsed by its longest numeric prefix, so "12.5abc" yields 12.5.
func Coerce(raw models.RawValue) models.Value {
	switch raw.Kind() {
	case models.RawNumber:
		return models.Some(raw.Num())
	case models.RawText:
		f, ok := parseFloatPrefix(raw.Str())
		if !ok {
			return models.Absent()
		}
		return models.Some(f)
	default:
		return models.Absent()
	}
}

func parseFloatPrefix(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '\uFEFF' })
	if s == "" {
		return 0, false
	}

	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		// exponent only counts when it has digits
		if k > j {
			end = k
		}
	}

	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
