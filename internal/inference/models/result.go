package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchedEvidence records one rule that fired for a disease.
// Symptom is the zero value when the rule names a symptom missing from the catalogue.
type MatchedEvidence struct {
	Symptom    Symptom `json:"symptom"`
	Rule       Rule    `json:"rule"`
	Confidence float64 `json:"confidence"`
	CF         float64 `json:"cf"`
}

// DiagnosisResult is the engine output for a single disease.
//
// CF keeps its sign for ranking; Percentage is CF*100 clamped to [0,100] for display.
type DiagnosisResult struct {
	Disease       Disease           `json:"disease"`
	CF            float64           `json:"cf"`
	OriginalCF    float64           `json:"original_cf"`
	Percentage    float64           `json:"percentage"`
	Matched       []MatchedEvidence `json:"matched_symptoms"`
	MatchedCount  int               `json:"matched_count"`
	TotalSymptoms int               `json:"total_symptoms"`
	RiskAdjusted  bool              `json:"risk_adjusted"`
}

// DiagnosisID identifies a stored diagnosis run.
type DiagnosisID uuid.UUID

func NewDiagnosisID() DiagnosisID {
	return DiagnosisID(uuid.New())
}

func ParseDiagnosisID(s string) (DiagnosisID, error) {
	u, err := uuid.Parse(s)
	if err != nil || u == uuid.Nil {
		return DiagnosisID{}, errInvalidDiagnosisID
	}
	return DiagnosisID(u), nil
}

func (id DiagnosisID) String() string {
	return uuid.UUID(id).String()
}

func (id DiagnosisID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id DiagnosisID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *DiagnosisID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// Record is one completed diagnosis kept in history.
type Record struct {
	ID           DiagnosisID       `json:"id"`
	CreatedAt    time.Time         `json:"created_at"`
	Profile      Profile           `json:"profile"`
	Observations []Observation     `json:"observations"`
	Results      []DiagnosisResult `json:"results"`
	Summary      Summary           `json:"summary"`
}

// PrimaryDiseaseName returns the top-ranked disease name, or "" when nothing matched.
func (r *Record) PrimaryDiseaseName() string {
	if len(r.Results) == 0 {
		return ""
	}
	return r.Results[0].Disease.Name
}
