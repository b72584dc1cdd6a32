package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"dirok/internal/inference/certainty"
	"dirok/internal/inference/models"
)

type EngineSuite struct {
	suite.Suite
	kb *models.KnowledgeBase
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

// SetupTest builds a small rule base:
//
//	P1 lung cancer   <- G01 (0.8/0.1), G02 (0.9/0.05)
//	P4 heart attack  <- G01 (0.3/0.6), G07 (0.98/0.01)
//	P6 stroke        <- G20 (0.98/0.01)
//	P9 unrelated     <- G99 (0.5/0.1)
func (s *EngineSuite) SetupTest() {
	symptoms := []models.Symptom{
		{ID: "G01", Name: "Persistent cough", Category: "respiratory", MB: 0.8, MD: 0.1},
		{ID: "G02", Name: "Coughing up blood", Category: "respiratory", MB: 0.9, MD: 0.05},
		{ID: "G07", Name: "Chest pain spreading to left arm", Category: "pain", MB: 0.95, MD: 0.02},
		{ID: "G20", Name: "Facial numbness", Category: "neurological", MB: 0.95, MD: 0.02},
	}
	diseases := []models.Disease{
		{ID: "P1", Name: "Lung cancer", SymptomIDs: []models.SymptomID{"G01", "G02"}, Severity: models.SeverityCritical},
		{ID: "P4", Name: "Heart attack", SymptomIDs: []models.SymptomID{"G01", "G07"}, Severity: models.SeverityCritical},
		{ID: "P6", Name: "Stroke", SymptomIDs: []models.SymptomID{"G20"}, Severity: models.SeverityCritical},
		{ID: "P9", Name: "Unrelated", SymptomIDs: []models.SymptomID{"G99"}, Severity: models.SeverityLow},
	}
	rules := []models.Rule{
		{ID: "R01", SymptomID: "G01", DiseaseID: "P1", MB: 0.8, MD: 0.1},
		{ID: "R02", SymptomID: "G02", DiseaseID: "P1", MB: 0.9, MD: 0.05},
		{ID: "R03", SymptomID: "G01", DiseaseID: "P4", MB: 0.3, MD: 0.6},
		{ID: "R04", SymptomID: "G07", DiseaseID: "P4", MB: 0.98, MD: 0.01},
		{ID: "R05", SymptomID: "G20", DiseaseID: "P6", MB: 0.98, MD: 0.01},
		{ID: "R06", SymptomID: "G99", DiseaseID: "P9", MB: 0.5, MD: 0.1},
	}
	kb, err := models.NewKnowledgeBase(symptoms, diseases, rules)
	s.Require().NoError(err)
	s.kb = kb
}

func (s *EngineSuite) TestEmptyObservations() {
	s.Run("returns an empty, non-nil slice", func() {
		results := Diagnose(s.kb, nil)
		s.NotNil(results)
		s.Empty(results)
	})

	s.Run("nil knowledge base is treated as empty", func() {
		results := Diagnose(nil, []models.Observation{models.NewObservation("G01", 1)})
		s.Empty(results)
	})
}

func (s *EngineSuite) TestSingleRule() {
	results := Diagnose(s.kb, []models.Observation{models.NewObservation("G02", 1.0)})

	s.Require().Len(results, 1)
	s.Equal(models.DiseaseID("P1"), results[0].Disease.ID)
	s.InDelta(0.85, results[0].CF, 1e-9)
	s.InDelta(85.0, results[0].Percentage, 1e-9)
	s.Equal(1, results[0].MatchedCount)
	s.Equal(2, results[0].TotalSymptoms)
	s.Equal("Coughing up blood", results[0].Matched[0].Symptom.Name)
}

func (s *EngineSuite) TestDiseasesWithoutEvidenceAreOmitted() {
	results := Diagnose(s.kb, []models.Observation{
		models.NewObservation("G01", 1.0),
		models.NewObservation("G02", 0.8),
	})

	for _, r := range results {
		s.NotEqual(models.DiseaseID("P6"), r.Disease.ID, "stroke has no observed symptom")
		s.NotEqual(models.DiseaseID("P9"), r.Disease.ID, "unrelated has no observed symptom")
		s.Positive(r.MatchedCount)
	}
	s.Len(results, 2)
}

func (s *EngineSuite) TestCombinesInObservationOrder() {
	obs := []models.Observation{
		models.NewObservation("G01", 1.0),
		models.NewObservation("G02", 0.8),
	}
	results := Diagnose(s.kb, obs)

	want := certainty.Combine(0.7, 0.85*0.8)
	s.Require().NotEmpty(results)
	s.Equal(models.DiseaseID("P1"), results[0].Disease.ID)
	s.InDelta(want, results[0].CF, 1e-9)
	s.Equal(models.SymptomID("G01"), results[0].Matched[0].Rule.SymptomID)
	s.Equal(models.SymptomID("G02"), results[0].Matched[1].Rule.SymptomID)
}

func (s *EngineSuite) TestNegativeResultsKeepSignForRanking() {
	results := Diagnose(s.kb, []models.Observation{models.NewObservation("G01", 1.0)})

	s.Require().Len(results, 2)
	s.Equal(models.DiseaseID("P1"), results[0].Disease.ID)
	s.Equal(models.DiseaseID("P4"), results[1].Disease.ID)
	s.InDelta(-0.3, results[1].CF, 1e-9)
	s.Zero(results[1].Percentage)
}

func (s *EngineSuite) TestUnknownSymptomIgnored() {
	results := Diagnose(s.kb, []models.Observation{
		models.NewObservation("G404", 1.0),
		models.NewObservation("G20", 0.6),
	})

	s.Require().Len(results, 1)
	s.Equal(models.DiseaseID("P6"), results[0].Disease.ID)
}

func (s *EngineSuite) TestOutOfRangeConfidenceIsClamped() {
	results := Diagnose(s.kb, []models.Observation{{SymptomID: "G20", Confidence: 3}})

	s.Require().Len(results, 1)
	s.InDelta(0.97, results[0].CF, 1e-9)
	s.Equal(1.0, results[0].Matched[0].Confidence)
}

func (s *EngineSuite) TestPercentagesBounded() {
	obs := []models.Observation{
		models.NewObservation("G01", 1),
		models.NewObservation("G02", 1),
		models.NewObservation("G07", 1),
		models.NewObservation("G20", 1),
	}
	for _, r := range Diagnose(s.kb, obs) {
		s.GreaterOrEqual(r.Percentage, 0.0)
		s.LessOrEqual(r.Percentage, 100.0)
	}
}

func (s *EngineSuite) TestParallelMatchesSequential() {
	obs := []models.Observation{
		models.NewObservation("G01", 0.6),
		models.NewObservation("G07", 0.8),
		models.NewObservation("G20", 0.4),
		models.NewObservation("G02", 1.0),
	}
	sequential := Diagnose(s.kb, obs)

	parallel, err := New(WithParallelism(4)).Diagnose(context.Background(), s.kb, obs)
	s.Require().NoError(err)
	s.Equal(sequential, parallel)
}

func (s *EngineSuite) TestParallelHonoursCancellation() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithParallelism(2)).Diagnose(ctx, s.kb, []models.Observation{models.NewObservation("G01", 1)})
	s.ErrorIs(err, context.Canceled)
}

func TestSortResults_TieBreaksOnDiseaseID(t *testing.T) {
	results := []models.DiagnosisResult{
		{Disease: models.Disease{ID: "P3"}, CF: 0.5},
		{Disease: models.Disease{ID: "P1"}, CF: 0.5},
		{Disease: models.Disease{ID: "P2"}, CF: 0.9},
		{Disease: models.Disease{ID: "P4"}, CF: -0.2},
	}
	SortResults(results)

	ids := make([]models.DiseaseID, len(results))
	for i, r := range results {
		ids[i] = r.Disease.ID
	}
	assert.Equal(t, []models.DiseaseID{"P2", "P1", "P3", "P4"}, ids)
}

func TestDuplicatePairFirstRuleWins(t *testing.T) {
	kb, err := models.NewKnowledgeBase(
		nil,
		[]models.Disease{{ID: "P1", Name: "Lung cancer", Severity: models.SeverityCritical}},
		[]models.Rule{
			{ID: "R1", SymptomID: "G01", DiseaseID: "P1", MB: 0.8, MD: 0.1},
			{ID: "R2", SymptomID: "G01", DiseaseID: "P1", MB: 0.2, MD: 0.1},
		},
	)
	require.NoError(t, err)

	results := Diagnose(kb, []models.Observation{models.NewObservation("G01", 1)})
	require.Len(t, results, 1)
	assert.Equal(t, models.RuleID("R1"), results[0].Matched[0].Rule.ID)
	assert.Empty(t, results[0].Matched[0].Symptom.ID, "symptom missing from catalogue stays zero")
}
