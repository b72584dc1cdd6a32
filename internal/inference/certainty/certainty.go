// Package certainty implements the certainty-factor algebra used by the
// diagnosis engine. Every function here is pure: no I/O, no shared state.
package certainty

import (
	"math"

	"dirok/internal/inference/models"
	dErrors "dirok/pkg/domain-errors"
)

// SingularityEpsilon bounds the mixed-sign denominator at a few ULPs of 1.
// At or below it both magnitudes are 1 up to rounding, so full belief meets
// full disbelief and the pair cancels to 0.
const SingularityEpsilon = 4 * 0x1p-52

// ErrNoEvidence is returned when combining an empty list of factors.
var ErrNoEvidence = dErrors.New(dErrors.CodeInvalidInput, "cannot combine zero certainty factors")

// Evaluate returns (MB - MD) scaled by the user's confidence.
// Confidence outside [0,1] is clamped to the nearest bound.
func Evaluate(rule models.Rule, confidence float64) float64 {
	return rule.Certainty() * models.ClampUnit(confidence)
}

// Combine merges two certainty factors.
//
//	both >= 0:  cf1 + cf2*(1-cf1)
//	both <  0:  cf1 + cf2*(1+cf1)
//	mixed:      (cf1+cf2) / (1 - min(|cf1|,|cf2|))
//
// The mixed branch returns 0 when its denominator collapses (combining 1 with
// -1). The result is clamped to [-1,1].
func Combine(cf1, cf2 float64) float64 {
	var out float64
	switch {
	case cf1 >= 0 && cf2 >= 0:
		out = cf1 + cf2*(1-cf1)
	case cf1 < 0 && cf2 < 0:
		out = cf1 + cf2*(1+cf1)
	default:
		denom := 1 - math.Min(math.Abs(cf1), math.Abs(cf2))
		if denom <= SingularityEpsilon {
			return 0
		}
		out = (cf1 + cf2) / denom
	}
	return clampSigned(out)
}

// CombineSequence folds factors left to right with Combine.
// An empty slice is an error: a disease with no evidence has no factor at all.
func CombineSequence(cfs []float64) (float64, error) {
	if len(cfs) == 0 {
		return 0, ErrNoEvidence
	}
	result := cfs[0]
	for _, cf := range cfs[1:] {
		result = Combine(result, cf)
	}
	return result, nil
}

// Percentage converts a factor to a display percentage clamped to [0,100].
func Percentage(cf float64) float64 {
	p := cf * 100
	if p != p || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

func clampSigned(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
