package presentation

import "FinCompare/internal/domain/models"

type rule func(float64) models.Classification

// Thresholds per display code. Codes without a rule classify as neutral.
var rules = map[string]rule{
	"CR": func(v float64) models.Classification {
		switch {
		case v >= 2:
			return models.ClassGood
		case v < 1:
			return models.ClassDanger
		default:
			return models.ClassWarning
		}
	},
	"QR": func(v float64) models.Classification {
		if v >= 1 {
			return models.ClassGood
		}
		return models.ClassDanger
	},
	"DE": func(v float64) models.Classification {
		switch {
		case v < 1:
			return models.ClassGood
		case v == 1:
			return models.ClassWarning
		default:
			return models.ClassDanger
		}
	},
	"PE": func(v float64) models.Classification {
		switch {
		case v < 15:
			return models.ClassGood
		case v < 20:
			return models.ClassWarning
		default:
			return models.ClassDanger
		}
	},
	"PSR": func(v float64) models.Classification {
		switch {
		case v < 2:
			return models.ClassGood
		case v < 5:
			return models.ClassWarning
		default:
			return models.ClassDanger
		}
	},
	"PBR": func(v float64) models.Classification {
		if v < 1 {
			return models.ClassGood
		}
		return models.ClassDanger
	},
}

// Classify buckets a value for the ratio with the given display code.
// Absent values are unavailable, never treated as zero.
func Classify(code string, v models.Value) models.Classification {
	n, ok := v.Get()
	if !ok {
		return models.ClassUnavailable
	}
	r, ok := rules[code]
	if !ok {
		return models.ClassNeutral
	}
	return r(n)
}

// HasRule reports whether code has classification thresholds.
func HasRule(code string) bool {
	_, ok := rules[code]
	return ok
}
