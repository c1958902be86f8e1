package repository

import "testing"

func TestNormalizePeriod(t *testing.T) {
	cases := map[string]Period{
		"":         PeriodAnnual,
		"annual":   PeriodAnnual,
		" Quarter": PeriodQuarter,
		"monthly":  PeriodAnnual,
	}
	for in, want := range cases {
		if got := NormalizePeriod(in); got != want {
			t.Fatalf("NormalizePeriod(%q) = %q, want %q", in, got, want)
		}
	}
}
