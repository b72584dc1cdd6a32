package handler

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirok/internal/diagnosis/service"
	"dirok/internal/inference/models"
	"dirok/pkg/testutil"
)

func TestDiagnose_SymptomIDsKeepTheirCase(t *testing.T) {
	kb, err := models.NewKnowledgeBase(
		[]models.Symptom{{ID: "s1", Name: "Persistent cough", Category: "respiratory", MB: 0.8, MD: 0.1}},
		[]models.Disease{{ID: "d1", Name: "Lung cancer", SymptomIDs: []models.SymptomID{"s1"}, Severity: models.SeverityCritical}},
		[]models.Rule{{ID: "r1", SymptomID: "s1", DiseaseID: "d1", MB: 0.8, MD: 0.1}},
	)
	require.NoError(t, err)
	svc, err := service.New(kb, nil)
	require.NoError(t, err)

	router := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(router)

	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/diagnoses", DiagnoseRequest{
		Profile:  ProfileRequest{Age: 30},
		Symptoms: []SymptomRequest{{ID: " s1 "}},
	}))

	testutil.AssertStatus(t, rr, http.StatusCreated)
	resp := testutil.UnmarshalResponse[DiagnosisResponse](t, rr)
	require.Len(t, resp.Observations, 1)
	assert.Equal(t, models.SymptomID("s1"), resp.Observations[0].SymptomID)
	require.NotNil(t, resp.Primary)
	assert.Equal(t, models.DiseaseID("d1"), resp.Primary.Disease.ID)
}
