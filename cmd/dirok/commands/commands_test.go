package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirok/internal/inference/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDiagnose_JSON(t *testing.T) {
	out, err := run(t, "diagnose", "--input", "testdata/request.yaml", "--format", "json")
	require.NoError(t, err)

	var s models.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	require.NotNil(t, s.Primary)
	assert.Equal(t, models.DiseaseID("P1"), s.Primary.Disease.ID)
	assert.Equal(t, "male", s.Profile.Gender)
	assert.Equal(t, models.RiskHigh, s.RiskFactor.Level)
	assert.Equal(t, 8, s.RiskFactor.Score)
}

func TestDiagnose_Text(t *testing.T) {
	out, err := run(t, "diagnose", "-i", "testdata/request.yaml", "-o", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "Diagnosis for Budi")
	assert.Contains(t, out, "Risk level:")
	assert.Contains(t, out, "Lung cancer")
	assert.Contains(t, out, "Stop smoking")
}

func TestDiagnose_NoSymptoms(t *testing.T) {
	out, err := run(t, "diagnose", "-i", "testdata/empty.json", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "none (no matching symptoms)")
	assert.NotContains(t, out, "See a doctor soon")
}

func TestDiagnose_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing input flag", []string{"diagnose"}},
		{"missing file", []string{"diagnose", "-i", "testdata/nope.yaml"}},
		{"symptom without id", []string{"diagnose", "-i", "testdata/missing_id.yaml"}},
		{"bad format", []string{"diagnose", "-i", "testdata/request.yaml", "--format", "xml"}},
		{"bad knowledge base", []string{"diagnose", "-i", "testdata/request.yaml", "--kb", "testdata/nope.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestKBValidate(t *testing.T) {
	out, err := run(t, "kb", "validate")
	require.NoError(t, err)
	assert.Equal(t, "built-in knowledge base: ok (33 symptoms, 8 diseases, 56 rules)\n", out)

	out, err = run(t, "kb", "validate", "--kb", "../../../internal/knowledgebase/testdata/kb.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, ": ok (")

	_, err = run(t, "kb", "validate", "--kb", "../../../internal/knowledgebase/testdata/unknown_disease.yaml")
	assert.Error(t, err)
}

func TestLoadRequest_Normalises(t *testing.T) {
	profile, obs, err := loadRequest("testdata/request.yaml")
	require.NoError(t, err)

	assert.Equal(t, "Budi", profile.Name)
	require.Len(t, obs, 3)
	assert.Equal(t, models.SymptomID("G01"), obs[0].SymptomID)
	assert.Equal(t, 0.8, obs[1].Confidence)
	assert.Equal(t, models.ConfidenceCertain, obs[2].Confidence)
}

func TestDiagnose_AutoFormatIsJSONWhenPiped(t *testing.T) {
	out, err := run(t, "diagnose", "-i", "testdata/request.yaml")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)))
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	got, err := resolveFormat("auto", &buf)
	require.NoError(t, err)
	assert.Equal(t, "json", got)

	got, err = resolveFormat("text", &buf)
	require.NoError(t, err)
	assert.Equal(t, "text", got)

	_, err = resolveFormat("yaml", &buf)
	assert.Error(t, err)
}

func TestDiagnose_LowercaseKnowledgeBaseIDs(t *testing.T) {
	out, err := run(t, "diagnose", "-i", "testdata/lowercase_request.yaml", "--kb", "testdata/lowercase_kb.yaml", "-o", "json")
	require.NoError(t, err)

	var s models.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	require.NotNil(t, s.Primary)
	assert.Equal(t, models.DiseaseID("d1"), s.Primary.Disease.ID)
	assert.InDelta(t, 70.0, s.Primary.Percentage, 1e-9)
}
