package summary

import (
	"fmt"
	"time"

	"dirok/internal/inference/models"
)

const (
	// UrgentThreshold is the primary CF at which a doctor visit is urgent.
	UrgentThreshold = 0.6
	// ScreeningPackYears is the exposure at which screening is advised.
	ScreeningPackYears = 10.0

	maxSecondary = 3
)

// Build packages risk-adjusted results into a report.
//
// Primary is results[0] (nil when empty); Secondary holds up to three of the
// following entries. Recommendations are appended in a fixed order and are
// not mutually exclusive.
func Build(results []models.DiagnosisResult, profile models.Profile, rf models.RiskFactor, now time.Time) models.Summary {
	s := models.Summary{
		GeneratedAt:     now,
		Profile:         profile,
		RiskFactor:      rf,
		Secondary:       []models.RankedDiagnosis{},
		AllResults:      results,
		Recommendations: Recommendations(results, rf),
	}
	if len(results) == 0 {
		return s
	}

	primary := rank(results[0])
	primary.Matched = results[0].Matched
	s.Primary = &primary

	end := min(len(results), 1+maxSecondary)
	for _, r := range results[1:end] {
		s.Secondary = append(s.Secondary, rank(r))
	}
	return s
}

// Recommendations lists advice for the top result and exposure level.
func Recommendations(results []models.DiagnosisResult, rf models.RiskFactor) []models.Recommendation {
	recs := []models.Recommendation{{
		Type:     models.RecommendationGeneral,
		Priority: models.PriorityHigh,
		Title:    "Stop smoking",
		Description: "Quitting now is the single most important step. The sooner you stop, " +
			"the sooner your body starts to recover.",
	}}

	if len(results) > 0 && results[0].CF >= UrgentThreshold {
		top := results[0]
		recs = append(recs, models.Recommendation{
			Type:     models.RecommendationMedical,
			Priority: models.PriorityUrgent,
			Title:    "See a doctor soon",
			Description: fmt.Sprintf("Based on your symptoms there is a %.2f%% likelihood of %s. "+
				"Please see a doctor for further examination.", top.Percentage, top.Disease.Name),
		})
	}

	if rf.PackYears >= ScreeningPackYears {
		recs = append(recs, models.Recommendation{
			Type:        models.RecommendationScreening,
			Priority:    models.PriorityHigh,
			Title:       "Get screened for lung cancer",
			Description: "Given your smoking history, a low-dose chest CT scan is advised for early detection of lung cancer.",
		})
	}

	recs = append(recs, models.Recommendation{
		Type:        models.RecommendationLifestyle,
		Priority:    models.PriorityMedium,
		Title:       "Healthy lifestyle",
		Description: "Eat nutritious food, exercise regularly, sleep enough and manage stress well.",
	})
	return recs
}

// Interpret bands a certainty factor by its percentage.
func Interpret(cf float64) models.Interpretation {
	pct := cf * 100
	switch {
	case pct >= 80:
		return models.Interpretation{
			Level:          models.InterpretationVeryHigh,
			Description:    "Very likely to have this disease",
			Recommendation: "Consult a specialist immediately",
		}
	case pct >= 60:
		return models.Interpretation{
			Level:          models.InterpretationHigh,
			Description:    "Likely to have this disease",
			Recommendation: "See a doctor as soon as possible",
		}
	case pct >= 40:
		return models.Interpretation{
			Level:          models.InterpretationModerate,
			Description:    "Possibly has this disease",
			Recommendation: "Get further examination to confirm",
		}
	case pct >= 20:
		return models.Interpretation{
			Level:          models.InterpretationLow,
			Description:    "Unlikely to have this disease",
			Recommendation: "Stay healthy and avoid smoking",
		}
	default:
		return models.Interpretation{
			Level:          models.InterpretationVeryLow,
			Description:    "Very unlikely to have this disease",
			Recommendation: "Keep up a healthy lifestyle",
		}
	}
}

func rank(r models.DiagnosisResult) models.RankedDiagnosis {
	return models.RankedDiagnosis{
		Disease:        r.Disease,
		CF:             r.CF,
		Percentage:     r.Percentage,
		Interpretation: Interpret(r.CF),
	}
}
