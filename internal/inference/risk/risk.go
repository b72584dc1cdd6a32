// Package risk derives a smoking-exposure multiplier and applies it to
// engine results. This is pure domain logic - no I/O, no side effects.
package risk

import (
	"math"
	"slices"

	"dirok/internal/inference/certainty"
	"dirok/internal/inference/engine"
	"dirok/internal/inference/models"
)

// scoreDivisor calibrates the multiplier. The attainable maximum score is 11,
// so the multiplier tops out at 1.25 rather than 1.5; the calibration is kept as is.
const (
	scoreDivisor    = 22.0
	multiplierRange = 0.5
)

var levelDescriptions = map[models.RiskLevel]string{
	models.RiskVeryHigh: "Your smoking history indicates a very high risk",
	models.RiskHigh:     "Your smoking history indicates a high risk",
	models.RiskModerate: "Your smoking history indicates a moderate risk",
	models.RiskLow:      "Your smoking history indicates a relatively low risk",
}

// ComputeRiskFactor scores age and smoking habits and converts the score to a multiplier.
//
// Buckets (additive):
//   - age: >=60 +3, >=50 +2, >=40 +1
//   - smoking years: >=20 +4, >=10 +3, >=5 +2, >=1 +1
//   - cigarettes per day: >=20 +4, >=10 +3, >=5 +2, >=1 +1
func ComputeRiskFactor(age, smokingYears, cigarettesPerDay int) models.RiskFactor {
	score := ageScore(age) + exposureScore(smokingYears) + exposureScore(cigarettesPerDay)
	level := levelFor(score)

	return models.RiskFactor{
		Multiplier:  1 + (float64(score)/scoreDivisor)*multiplierRange,
		Level:       level,
		Description: levelDescriptions[level],
		Score:       score,
		PackYears:   PackYears(smokingYears, cigarettesPerDay),
	}
}

// FromProfile is ComputeRiskFactor over a profile record.
func FromProfile(p models.Profile) models.RiskFactor {
	return ComputeRiskFactor(p.Age, p.SmokingYears, p.CigarettesPerDay)
}

// PackYears is (cigarettes per day / 20) * years smoked. Negative inputs count as zero.
func PackYears(smokingYears, cigarettesPerDay int) float64 {
	if smokingYears <= 0 || cigarettesPerDay <= 0 {
		return 0
	}
	return (float64(cigarettesPerDay) / 20) * float64(smokingYears)
}

// AdjustResults scales every CF by the multiplier, capped at 1 but not floored,
// re-derives percentages and re-sorts. The input slice is left untouched.
func AdjustResults(results []models.DiagnosisResult, rf models.RiskFactor) []models.DiagnosisResult {
	adjusted := make([]models.DiagnosisResult, len(results))
	for i, r := range results {
		cf := math.Min(1, r.CF*rf.Multiplier)
		r.OriginalCF = r.CF
		r.CF = cf
		r.Percentage = certainty.Percentage(cf)
		r.RiskAdjusted = true
		r.Matched = slices.Clone(r.Matched)
		adjusted[i] = r
	}
	engine.SortResults(adjusted)
	return adjusted
}

func ageScore(age int) int {
	switch {
	case age >= 60:
		return 3
	case age >= 50:
		return 2
	case age >= 40:
		return 1
	default:
		return 0
	}
}

func exposureScore(v int) int {
	switch {
	case v >= 20:
		return 4
	case v >= 10:
		return 3
	case v >= 5:
		return 2
	case v >= 1:
		return 1
	default:
		return 0
	}
}

func levelFor(score int) models.RiskLevel {
	switch {
	case score >= 9:
		return models.RiskVeryHigh
	case score >= 6:
		return models.RiskHigh
	case score >= 3:
		return models.RiskModerate
	default:
		return models.RiskLow
	}
}
