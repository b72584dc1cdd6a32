package models

import (
	"fmt"
	"slices"
	"strings"

	dErrors "dirok/pkg/domain-errors"
)

type (
	SymptomID string
	DiseaseID string
	RuleID    string
)

// Severity tags how dangerous a disease is. It is display metadata only.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityModerate, SeverityLow:
		return true
	}
	return false
}

// Symptom is a catalogue entry the user can report. MB/MD are defaults shown
// to knowledge-base maintainers; inference reads belief from rules instead.
type Symptom struct {
	ID          SymptomID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	MB          float64   `json:"mb"`
	MD          float64   `json:"md"`
}

func NewSymptom(id SymptomID, name, category string, mb, md float64) (Symptom, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Symptom{}, dErrors.New(dErrors.CodeInvariantViolation, "symptom id cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return Symptom{}, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("symptom %s: name cannot be empty", id))
	}
	if err := validateMeasures(string(id), mb, md); err != nil {
		return Symptom{}, err
	}
	return Symptom{ID: id, Code: string(id), Name: name, Category: category, MB: mb, MD: md}, nil
}

// Disease is a diagnosable condition and the symptoms associated with it.
type Disease struct {
	ID          DiseaseID   `json:"id"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	SymptomIDs  []SymptomID `json:"symptoms"`
	Severity    Severity    `json:"severity"`
}

func NewDisease(id DiseaseID, name string, symptomIDs []SymptomID, severity Severity) (Disease, error) {
	if strings.TrimSpace(string(id)) == "" {
		return Disease{}, dErrors.New(dErrors.CodeInvariantViolation, "disease id cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return Disease{}, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("disease %s: name cannot be empty", id))
	}
	if !severity.IsValid() {
		return Disease{}, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("disease %s: invalid severity %q", id, severity))
	}
	return Disease{
		ID:         id,
		Code:       string(id),
		Name:       name,
		SymptomIDs: slices.Clone(symptomIDs),
		Severity:   severity,
	}, nil
}

// Rule links one symptom to one disease with a belief/disbelief pair.
//
// Invariants:
//   - MB and MD lie in [0,1]
//   - at most one rule per (symptom, disease) is expected; callers own that
type Rule struct {
	ID        RuleID    `json:"id"`
	SymptomID SymptomID `json:"symptom_id"`
	DiseaseID DiseaseID `json:"disease_id"`
	MB        float64   `json:"mb"`
	MD        float64   `json:"md"`
}

func NewRule(id RuleID, symptomID SymptomID, diseaseID DiseaseID, mb, md float64) (Rule, error) {
	if symptomID == "" || diseaseID == "" {
		return Rule{}, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("rule %s: symptom and disease ids are required", id))
	}
	if err := validateMeasures(string(id), mb, md); err != nil {
		return Rule{}, err
	}
	return Rule{ID: id, SymptomID: symptomID, DiseaseID: diseaseID, MB: mb, MD: md}, nil
}

// Certainty is the rule's own certainty factor, MB - MD.
func (r Rule) Certainty() float64 {
	return r.MB - r.MD
}

func validateMeasures(owner string, mb, md float64) error {
	if mb < 0 || mb > 1 {
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("%s: mb must be within [0,1], got %v", owner, mb))
	}
	if md < 0 || md > 1 {
		return dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("%s: md must be within [0,1], got %v", owner, md))
	}
	return nil
}

type ruleKey struct {
	symptom SymptomID
	disease DiseaseID
}

// KnowledgeBase is an immutable snapshot of symptoms, diseases and rules.
// Accessors return copies so callers cannot mutate the snapshot.
type KnowledgeBase struct {
	symptoms []Symptom
	diseases []Disease
	rules    []Rule

	symptomByID map[SymptomID]int
	ruleByPair  map[ruleKey]int
}

// NewKnowledgeBase validates and indexes a snapshot.
//
// Duplicate symptom, disease or rule IDs are rejected, as are rules pointing at
// an unknown disease. Rules may name symptoms missing from the catalogue; such
// rules still fire. When two rules share a (symptom, disease) pair the first
// one wins.
func NewKnowledgeBase(symptoms []Symptom, diseases []Disease, rules []Rule) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		symptoms:    slices.Clone(symptoms),
		diseases:    make([]Disease, len(diseases)),
		rules:       slices.Clone(rules),
		symptomByID: make(map[SymptomID]int, len(symptoms)),
		ruleByPair:  make(map[ruleKey]int, len(rules)),
	}

	for i, s := range kb.symptoms {
		if _, dup := kb.symptomByID[s.ID]; dup {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("duplicate symptom id %s", s.ID))
		}
		kb.symptomByID[s.ID] = i
	}

	diseaseIDs := make(map[DiseaseID]struct{}, len(diseases))
	for i, d := range diseases {
		if _, dup := diseaseIDs[d.ID]; dup {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("duplicate disease id %s", d.ID))
		}
		diseaseIDs[d.ID] = struct{}{}
		d.SymptomIDs = slices.Clone(d.SymptomIDs)
		kb.diseases[i] = d
	}

	ruleIDs := make(map[RuleID]struct{}, len(rules))
	for i, r := range kb.rules {
		if r.ID != "" {
			if _, dup := ruleIDs[r.ID]; dup {
				return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("duplicate rule id %s", r.ID))
			}
			ruleIDs[r.ID] = struct{}{}
		}
		if _, ok := diseaseIDs[r.DiseaseID]; !ok {
			return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("rule %s references unknown disease %s", r.ID, r.DiseaseID))
		}
		key := ruleKey{symptom: r.SymptomID, disease: r.DiseaseID}
		if _, exists := kb.ruleByPair[key]; !exists {
			kb.ruleByPair[key] = i
		}
	}

	return kb, nil
}

func (kb *KnowledgeBase) Symptoms() []Symptom {
	return slices.Clone(kb.symptoms)
}

func (kb *KnowledgeBase) Diseases() []Disease {
	out := make([]Disease, len(kb.diseases))
	for i, d := range kb.diseases {
		d.SymptomIDs = slices.Clone(d.SymptomIDs)
		out[i] = d
	}
	return out
}

func (kb *KnowledgeBase) Rules() []Rule {
	return slices.Clone(kb.rules)
}

// Symptom returns the catalogue entry for id.
func (kb *KnowledgeBase) Symptom(id SymptomID) (Symptom, bool) {
	i, ok := kb.symptomByID[id]
	if !ok {
		return Symptom{}, false
	}
	return kb.symptoms[i], true
}

// Rule returns the rule linking symptom to disease, if any.
func (kb *KnowledgeBase) Rule(symptom SymptomID, disease DiseaseID) (Rule, bool) {
	i, ok := kb.ruleByPair[ruleKey{symptom: symptom, disease: disease}]
	if !ok {
		return Rule{}, false
	}
	return kb.rules[i], true
}

func (kb *KnowledgeBase) RulesByDisease(disease DiseaseID) []Rule {
	var out []Rule
	for _, r := range kb.rules {
		if r.DiseaseID == disease {
			out = append(out, r)
		}
	}
	return out
}

func (kb *KnowledgeBase) RulesBySymptom(symptom SymptomID) []Rule {
	var out []Rule
	for _, r := range kb.rules {
		if r.SymptomID == symptom {
			out = append(out, r)
		}
	}
	return out
}

// Counts reports the size of the snapshot.
func (kb *KnowledgeBase) Counts() (symptoms, diseases, rules int) {
	return len(kb.symptoms), len(kb.diseases), len(kb.rules)
}
