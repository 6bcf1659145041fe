package services

import (
	"math"

	"github.com/jrc-public-school/school-service/internal/models"
)

// Pure derivation functions applied once at record creation. The results
// are persisted with the record and never recomputed on read.

// Percentage computes the exam percentage rounded to two decimal places.
// Only defined for total > 0; callers must not invoke it otherwise.
func Percentage(obtained, total float64) float64 {
	return math.Round(obtained/total*10000) / 100
}

// LetterGrade maps a percentage to a grade. Lower bounds are inclusive.
func LetterGrade(pct float64) string {
	switch {
	case pct >= 90:
		return "A+"
	case pct >= 80:
		return "A"
	case pct >= 70:
		return "B"
	case pct >= 50:
		return "C"
	case pct >= 30:
		return "D"
	default:
		return "F"
	}
}

// PassFail returns pass at or above the 30 percent threshold.
func PassFail(pct float64) models.PassFail {
	if pct >= 30 {
		return models.ResultPass
	}
	return models.ResultFail
}

// FeeBalance is the outstanding amount on a fee record.
func FeeBalance(amount, paid float64) float64 {
	return amount - paid
}

// FeeStatus classifies a fee record from its amount and paid values.
func FeeStatus(amount, paid float64) models.FeeStatus {
	switch {
	case FeeBalance(amount, paid) <= 0:
		return models.FeePaid
	case paid > 0 && paid < amount:
		return models.FeePartial
	default:
		return models.FeePending
	}
}
