package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirok/internal/inference/models"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func result(id models.DiseaseID, name string, cf float64) models.DiagnosisResult {
	pct := cf * 100
	if pct < 0 {
		pct = 0
	}
	return models.DiagnosisResult{
		Disease:    models.Disease{ID: id, Name: name},
		CF:         cf,
		Percentage: pct,
	}
}

func recommendationTypes(recs []models.Recommendation) []models.RecommendationType {
	out := make([]models.RecommendationType, len(recs))
	for i, r := range recs {
		out[i] = r.Type
	}
	return out
}

func TestBuild_PrimaryAndSecondary(t *testing.T) {
	results := []models.DiagnosisResult{
		result("P1", "Lung cancer", 0.9),
		result("P5", "COPD", 0.7),
		result("P7", "Acute respiratory infection", 0.5),
		result("P4", "Heart attack", 0.3),
		result("P2", "Oral cancer", 0.1),
	}
	results[0].Matched = []models.MatchedEvidence{{Rule: models.Rule{ID: "R01"}}}
	profile := models.Profile{Name: "Budi", Age: 55}

	s := Build(results, profile, models.RiskFactor{Multiplier: 1.1}, fixedNow)

	require.NotNil(t, s.Primary)
	assert.Equal(t, models.DiseaseID("P1"), s.Primary.Disease.ID)
	assert.Equal(t, models.InterpretationVeryHigh, s.Primary.Interpretation.Level)
	assert.Len(t, s.Primary.Matched, 1)

	require.Len(t, s.Secondary, 3)
	assert.Equal(t, models.DiseaseID("P5"), s.Secondary[0].Disease.ID)
	assert.Equal(t, models.DiseaseID("P4"), s.Secondary[2].Disease.ID)
	assert.Equal(t, models.InterpretationLow, s.Secondary[2].Interpretation.Level)

	assert.Equal(t, fixedNow, s.GeneratedAt)
	assert.Equal(t, profile, s.Profile)
	assert.Len(t, s.AllResults, 5)
}

func TestBuild_Empty(t *testing.T) {
	s := Build(nil, models.Profile{}, models.RiskFactor{Multiplier: 1}, fixedNow)

	assert.Nil(t, s.Primary)
	assert.Empty(t, s.Secondary)
	assert.Equal(t,
		[]models.RecommendationType{models.RecommendationGeneral, models.RecommendationLifestyle},
		recommendationTypes(s.Recommendations))
}

func TestBuild_FewerThanThreeSecondary(t *testing.T) {
	s := Build([]models.DiagnosisResult{result("P1", "Lung cancer", 0.4), result("P2", "Oral cancer", 0.2)},
		models.Profile{}, models.RiskFactor{}, fixedNow)

	require.NotNil(t, s.Primary)
	assert.Len(t, s.Secondary, 1)
}

func TestRecommendations(t *testing.T) {
	t.Run("all four in fixed order", func(t *testing.T) {
		recs := Recommendations(
			[]models.DiagnosisResult{result("P1", "Lung cancer", 0.955)},
			models.RiskFactor{PackYears: 10},
		)
		assert.Equal(t, []models.RecommendationType{
			models.RecommendationGeneral,
			models.RecommendationMedical,
			models.RecommendationScreening,
			models.RecommendationLifestyle,
		}, recommendationTypes(recs))

		assert.Equal(t, models.PriorityHigh, recs[0].Priority)
		assert.Equal(t, models.PriorityUrgent, recs[1].Priority)
		assert.Contains(t, recs[1].Description, "95.50%")
		assert.Contains(t, recs[1].Description, "Lung cancer")
		assert.Equal(t, models.PriorityHigh, recs[2].Priority)
		assert.Equal(t, models.PriorityMedium, recs[3].Priority)
	})

	t.Run("doctor visit starts at 0.6", func(t *testing.T) {
		recs := Recommendations([]models.DiagnosisResult{result("P1", "Lung cancer", 0.6)}, models.RiskFactor{})
		assert.Contains(t, recommendationTypes(recs), models.RecommendationMedical)

		recs = Recommendations([]models.DiagnosisResult{result("P1", "Lung cancer", 0.59)}, models.RiskFactor{})
		assert.NotContains(t, recommendationTypes(recs), models.RecommendationMedical)
	})

	t.Run("screening needs ten pack-years", func(t *testing.T) {
		recs := Recommendations(nil, models.RiskFactor{PackYears: 9.9})
		assert.NotContains(t, recommendationTypes(recs), models.RecommendationScreening)
	})
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		cf   float64
		want models.InterpretationLevel
	}{
		{1.0, models.InterpretationVeryHigh},
		{0.8, models.InterpretationVeryHigh},
		{0.79, models.InterpretationHigh},
		{0.6, models.InterpretationHigh},
		{0.45, models.InterpretationModerate},
		{0.2, models.InterpretationLow},
		{0.19, models.InterpretationVeryLow},
		{-0.5, models.InterpretationVeryLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Interpret(tt.cf).Level, "cf=%v", tt.cf)
	}
}
