package models

import (
	"time"

	dErrors "dirok/pkg/domain-errors"
)

var errInvalidDiagnosisID = dErrors.New(dErrors.CodeInvalidInput, "invalid diagnosis id")

// Profile is the demographic and smoking-habit record supplied with a diagnosis request.
type Profile struct {
	Name             string `json:"name,omitempty"`
	Gender           string `json:"gender,omitempty"`
	Age              int    `json:"age"`
	SmokingYears     int    `json:"smoking_years"`
	CigarettesPerDay int    `json:"cigarettes_per_day"`
}

// RiskLevel is the qualitative band of a risk score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
)

// RiskFactor scales raw certainty factors by smoking exposure.
type RiskFactor struct {
	Multiplier  float64   `json:"multiplier"`
	Level       RiskLevel `json:"level"`
	Description string    `json:"description"`
	Score       int       `json:"risk_score"`
	PackYears   float64   `json:"pack_years"`
}

// InterpretationLevel bands a certainty factor for display.
type InterpretationLevel string

const (
	InterpretationVeryHigh InterpretationLevel = "very_high"
	InterpretationHigh     InterpretationLevel = "high"
	InterpretationModerate InterpretationLevel = "moderate"
	InterpretationLow      InterpretationLevel = "low"
	InterpretationVeryLow  InterpretationLevel = "very_low"
)

type Interpretation struct {
	Level          InterpretationLevel `json:"level"`
	Description    string              `json:"description"`
	Recommendation string              `json:"recommendation"`
}

type RecommendationType string

const (
	RecommendationGeneral   RecommendationType = "general"
	RecommendationMedical   RecommendationType = "medical"
	RecommendationScreening RecommendationType = "screening"
	RecommendationLifestyle RecommendationType = "lifestyle"
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

type Recommendation struct {
	Type        RecommendationType `json:"type"`
	Priority    Priority           `json:"priority"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
}

// RankedDiagnosis is a result paired with its interpretation for reporting.
type RankedDiagnosis struct {
	Disease        Disease           `json:"disease"`
	CF             float64           `json:"cf"`
	Percentage     float64           `json:"percentage"`
	Interpretation Interpretation    `json:"interpretation"`
	Matched        []MatchedEvidence `json:"matched_symptoms,omitempty"`
}

// Summary packages ranked, risk-adjusted results for a renderer or report writer.
type Summary struct {
	GeneratedAt     time.Time         `json:"generated_at"`
	Profile         Profile           `json:"profile"`
	RiskFactor      RiskFactor        `json:"risk_factor"`
	Primary         *RankedDiagnosis  `json:"primary_diagnosis"`
	Secondary       []RankedDiagnosis `json:"secondary_diagnoses"`
	AllResults      []DiagnosisResult `json:"all_results"`
	Recommendations []Recommendation  `json:"recommendations"`
}
