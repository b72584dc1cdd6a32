package models

// Confidence scale offered to users when they report a symptom.
const (
	ConfidenceCertain    = 1.0
	ConfidenceConfident  = 0.8
	ConfidenceFairlySure = 0.6
	ConfidenceUnsure     = 0.4
	ConfidenceVeryUnsure = 0.2
)

// ConfidenceLevel labels one step of the confidence scale.
type ConfidenceLevel struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// ConfidenceScale lists the choices, most certain first.
func ConfidenceScale() []ConfidenceLevel {
	return []ConfidenceLevel{
		{Value: ConfidenceCertain, Label: "Very sure"},
		{Value: ConfidenceConfident, Label: "Sure"},
		{Value: ConfidenceFairlySure, Label: "Fairly sure"},
		{Value: ConfidenceUnsure, Label: "Unsure"},
		{Value: ConfidenceVeryUnsure, Label: "Not sure"},
	}
}

// Observation asserts that a symptom is present with the given confidence.
type Observation struct {
	SymptomID  SymptomID `json:"symptom_id"`
	Confidence float64   `json:"confidence"`
}

// NewObservation clamps confidence into [0,1]; it never fails.
func NewObservation(symptomID SymptomID, confidence float64) Observation {
	return Observation{SymptomID: symptomID, Confidence: ClampUnit(confidence)}
}

// ClampUnit clamps v into [0,1]. NaN maps to 0.
func ClampUnit(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
