// Package knowledgebase supplies rule bases to the inference engine, either
// the built-in one or a YAML file loaded at start-up.
package knowledgebase

import (
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"dirok/internal/inference/models"
	dErrors "dirok/pkg/domain-errors"
)

// File is the on-disk layout of a rule base.
//
//	symptoms:
//	  - {id: G01, name: Persistent cough, category: respiratory, mb: 0.8, md: 0.1}
//	diseases:
//	  - {id: P1, name: Lung cancer, severity: critical, symptoms: [G01]}
//	rules:
//	  - {id: R01, symptom: G01, disease: P1, mb: 0.8, md: 0.1}
type File struct {
	Symptoms []SymptomEntry `yaml:"symptoms"`
	Diseases []DiseaseEntry `yaml:"diseases"`
	Rules    []RuleEntry    `yaml:"rules"`
}

type SymptomEntry struct {
	ID          string  `yaml:"id"`
	Code        string  `yaml:"code"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	MB          float64 `yaml:"mb"`
	MD          float64 `yaml:"md"`
}

type DiseaseEntry struct {
	ID          string   `yaml:"id"`
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Severity    string   `yaml:"severity"`
	Symptoms    []string `yaml:"symptoms"`
}

type RuleEntry struct {
	ID      string  `yaml:"id"`
	Symptom string  `yaml:"symptom"`
	Disease string  `yaml:"disease"`
	MB      float64 `yaml:"mb"`
	MD      float64 `yaml:"md"`
}

// LoadFile reads a YAML rule base and validates it into a snapshot.
//
// Error cases:
//   - file missing or unreadable, invalid YAML (CodeBadRequest)
//   - an entry failing its constructor, duplicate IDs, rules to unknown
//     diseases (CodeInvariantViolation)
func LoadFile(path string) (*models.KnowledgeBase, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to load knowledge base from "+path)
	}

	var f File
	if err := k.UnmarshalWithConf("", &f, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to parse knowledge base from "+path)
	}

	kb, err := f.Build()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "knowledge base validation failed for "+path)
	}
	return kb, nil
}

// Load returns the file at path, or the built-in rule base when path is empty.
func Load(path string) (*models.KnowledgeBase, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Build converts the entries through the model constructors.
func (f File) Build() (*models.KnowledgeBase, error) {
	symptoms := make([]models.Symptom, 0, len(f.Symptoms))
	for _, e := range f.Symptoms {
		s, err := models.NewSymptom(models.SymptomID(e.ID), e.Name, e.Category, e.MB, e.MD)
		if err != nil {
			return nil, err
		}
		if e.Code != "" {
			s.Code = e.Code
		}
		s.Description = e.Description
		symptoms = append(symptoms, s)
	}

	diseases := make([]models.Disease, 0, len(f.Diseases))
	for _, e := range f.Diseases {
		ids := make([]models.SymptomID, len(e.Symptoms))
		for i, id := range e.Symptoms {
			ids[i] = models.SymptomID(id)
		}
		severity := models.Severity(e.Severity)
		if severity == "" {
			severity = models.SeverityModerate
		}
		d, err := models.NewDisease(models.DiseaseID(e.ID), e.Name, ids, severity)
		if err != nil {
			return nil, err
		}
		if e.Code != "" {
			d.Code = e.Code
		}
		d.Description = e.Description
		diseases = append(diseases, d)
	}

	rules := make([]models.Rule, 0, len(f.Rules))
	for _, e := range f.Rules {
		r, err := models.NewRule(models.RuleID(e.ID), models.SymptomID(e.Symptom), models.DiseaseID(e.Disease), e.MB, e.MD)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}

	return models.NewKnowledgeBase(symptoms, diseases, rules)
}
