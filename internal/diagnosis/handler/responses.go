package handler

import (
	"cmp"
	"slices"
	"time"

	"dirok/internal/inference/models"
)

// DiagnosisResponse is the HTTP representation of one stored diagnosis.
type DiagnosisResponse struct {
	ID           string               `json:"id"`
	CreatedAt    time.Time            `json:"created_at"`
	Observations []models.Observation `json:"observations"`
	models.Summary
}

func FromRecord(rec *models.Record) *DiagnosisResponse {
	return &DiagnosisResponse{
		ID:           rec.ID.String(),
		CreatedAt:    rec.CreatedAt,
		Observations: rec.Observations,
		Summary:      rec.Summary,
	}
}

// HistoryItem is a compact history entry for GET /diagnoses.
type HistoryItem struct {
	ID             string           `json:"id"`
	CreatedAt      time.Time        `json:"created_at"`
	Name           string           `json:"name,omitempty"`
	Age            int              `json:"age"`
	RiskLevel      models.RiskLevel `json:"risk_level"`
	PrimaryDisease string           `json:"primary_disease,omitempty"`
	Percentage     float64          `json:"percentage"`
}

type HistoryResponse struct {
	Diagnoses []HistoryItem `json:"diagnoses"`
	Total     int           `json:"total"`
}

func FromRecords(records []*models.Record) *HistoryResponse {
	items := make([]HistoryItem, 0, len(records))
	for _, rec := range records {
		item := HistoryItem{
			ID:             rec.ID.String(),
			CreatedAt:      rec.CreatedAt,
			Name:           rec.Profile.Name,
			Age:            rec.Profile.Age,
			RiskLevel:      rec.Summary.RiskFactor.Level,
			PrimaryDisease: rec.PrimaryDiseaseName(),
		}
		if len(rec.Results) > 0 {
			item.Percentage = rec.Results[0].Percentage
		}
		items = append(items, item)
	}
	return &HistoryResponse{Diagnoses: items, Total: len(items)}
}

// SymptomCategory groups catalogue entries for display.
type SymptomCategory struct {
	Name     string           `json:"name"`
	Symptoms []models.Symptom `json:"symptoms"`
}

type SymptomCatalogueResponse struct {
	Categories      []SymptomCategory        `json:"categories"`
	ConfidenceScale []models.ConfidenceLevel `json:"confidence_scale"`
	Total           int                      `json:"total"`
}

// FromKnowledgeBase groups symptoms by category. Categories keep the order in
// which they first appear; symptoms within a category are sorted by ID.
func FromKnowledgeBase(kb *models.KnowledgeBase) *SymptomCatalogueResponse {
	resp := &SymptomCatalogueResponse{
		Categories:      []SymptomCategory{},
		ConfidenceScale: models.ConfidenceScale(),
	}
	if kb == nil {
		return resp
	}

	index := map[string]int{}
	for _, s := range kb.Symptoms() {
		i, ok := index[s.Category]
		if !ok {
			i = len(resp.Categories)
			index[s.Category] = i
			resp.Categories = append(resp.Categories, SymptomCategory{Name: s.Category})
		}
		resp.Categories[i].Symptoms = append(resp.Categories[i].Symptoms, s)
		resp.Total++
	}
	for _, c := range resp.Categories {
		slices.SortFunc(c.Symptoms, func(a, b models.Symptom) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}
	return resp
}
