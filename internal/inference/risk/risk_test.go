package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirok/internal/inference/models"
)

func TestComputeRiskFactor(t *testing.T) {
	t.Run("middle-aged moderate smoker", func(t *testing.T) {
		rf := ComputeRiskFactor(55, 15, 12)

		assert.Equal(t, 8, rf.Score)
		assert.Equal(t, models.RiskHigh, rf.Level)
		assert.InDelta(t, 1+(8.0/22)*0.5, rf.Multiplier, 1e-12)
		assert.InDelta(t, 1.1818, rf.Multiplier, 1e-4)
		assert.InDelta(t, 9.0, rf.PackYears, 1e-12)
		assert.NotEmpty(t, rf.Description)
	})

	t.Run("non-smoker under forty", func(t *testing.T) {
		rf := ComputeRiskFactor(25, 0, 0)
		assert.Equal(t, 0, rf.Score)
		assert.Equal(t, models.RiskLow, rf.Level)
		assert.Equal(t, 1.0, rf.Multiplier)
		assert.Zero(t, rf.PackYears)
	})

	t.Run("maximum score keeps the 22 divisor", func(t *testing.T) {
		rf := ComputeRiskFactor(70, 40, 40)
		assert.Equal(t, 11, rf.Score)
		assert.Equal(t, models.RiskVeryHigh, rf.Level)
		assert.InDelta(t, 1.25, rf.Multiplier, 1e-12)
		assert.InDelta(t, 80.0, rf.PackYears, 1e-12)
	})

	t.Run("negative inputs score nothing", func(t *testing.T) {
		rf := ComputeRiskFactor(-1, -5, -10)
		assert.Equal(t, 0, rf.Score)
		assert.Zero(t, rf.PackYears)
	})
}

func TestComputeRiskFactor_Buckets(t *testing.T) {
	tests := []struct {
		name             string
		age, years, cigs int
		wantScore        int
		wantLevel        models.RiskLevel
	}{
		{"age 40 only", 40, 0, 0, 1, models.RiskLow},
		{"age 50 only", 50, 0, 0, 2, models.RiskLow},
		{"age 60 only", 60, 0, 0, 3, models.RiskModerate},
		{"one year one cigarette", 0, 1, 1, 2, models.RiskLow},
		{"five years five cigarettes", 0, 5, 5, 4, models.RiskModerate},
		{"ten years ten cigarettes", 0, 10, 10, 6, models.RiskHigh},
		{"twenty years twenty cigarettes", 0, 20, 20, 8, models.RiskHigh},
		{"just under very high", 45, 20, 10, 8, models.RiskHigh},
		{"very high threshold", 50, 20, 10, 9, models.RiskVeryHigh},
		{"bucket edges below", 39, 0, 0, 0, models.RiskLow},
		{"four years four cigarettes", 0, 4, 4, 2, models.RiskLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rf := ComputeRiskFactor(tt.age, tt.years, tt.cigs)
			assert.Equal(t, tt.wantScore, rf.Score)
			assert.Equal(t, tt.wantLevel, rf.Level)
		})
	}
}

func TestComputeRiskFactor_MultiplierBounds(t *testing.T) {
	for _, age := range []int{0, 39, 40, 49, 50, 59, 60, 90} {
		for _, years := range []int{0, 1, 4, 5, 9, 10, 19, 20, 50} {
			for _, cigs := range []int{0, 1, 4, 5, 9, 10, 19, 20, 60} {
				rf := ComputeRiskFactor(age, years, cigs)
				assert.GreaterOrEqual(t, rf.Multiplier, 1.0)
				assert.LessOrEqual(t, rf.Multiplier, 1.5)
			}
		}
	}
}

func TestFromProfile(t *testing.T) {
	rf := FromProfile(models.Profile{Age: 55, SmokingYears: 15, CigarettesPerDay: 12})
	assert.Equal(t, ComputeRiskFactor(55, 15, 12), rf)
}

func TestAdjustResults(t *testing.T) {
	results := []models.DiagnosisResult{
		{Disease: models.Disease{ID: "P1"}, CF: 0.9, Percentage: 90},
		{Disease: models.Disease{ID: "P2"}, CF: 0.5, Percentage: 50},
		{Disease: models.Disease{ID: "P3"}, CF: -0.3, Percentage: 0},
		{Disease: models.Disease{ID: "P4"}, CF: -0.1, Percentage: 0},
	}
	rf := models.RiskFactor{Multiplier: 1.2}

	adjusted := AdjustResults(results, rf)

	t.Run("caps at one", func(t *testing.T) {
		require.Equal(t, models.DiseaseID("P1"), adjusted[0].Disease.ID)
		assert.Equal(t, 1.0, adjusted[0].CF)
		assert.Equal(t, 100.0, adjusted[0].Percentage)
		assert.Equal(t, 0.9, adjusted[0].OriginalCF)
		assert.True(t, adjusted[0].RiskAdjusted)
	})

	t.Run("scales positive results", func(t *testing.T) {
		assert.InDelta(t, 0.6, adjusted[1].CF, 1e-12)
		assert.InDelta(t, 60.0, adjusted[1].Percentage, 1e-9)
	})

	t.Run("negative results grow more negative and display zero", func(t *testing.T) {
		require.Equal(t, models.DiseaseID("P3"), adjusted[3].Disease.ID)
		assert.InDelta(t, -0.36, adjusted[3].CF, 1e-12)
		assert.Zero(t, adjusted[3].Percentage)
		assert.Equal(t, models.DiseaseID("P4"), adjusted[2].Disease.ID)
		assert.Greater(t, adjusted[2].CF, adjusted[3].CF)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		assert.Equal(t, 0.9, results[0].CF)
		assert.Equal(t, -0.3, results[2].CF)
		assert.False(t, results[0].RiskAdjusted)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, AdjustResults(nil, rf))
	})
}
