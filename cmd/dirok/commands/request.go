package commands

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"dirok/internal/inference/models"
)

// requestFile is the on-disk diagnosis request. JSON files load too since
// YAML is a superset of JSON.
//
//	profile: {name: Budi, age: 55, smoking_years: 15, cigarettes_per_day: 12}
//	symptoms:
//	  - {id: G01, confidence: 0.8}
//	  - {id: G02}
type requestFile struct {
	Profile struct {
		Name             string `yaml:"name"`
		Gender           string `yaml:"gender"`
		Age              int    `yaml:"age"`
		SmokingYears     int    `yaml:"smoking_years"`
		CigarettesPerDay int    `yaml:"cigarettes_per_day"`
	} `yaml:"profile"`
	Symptoms []struct {
		ID         string   `yaml:"id"`
		Confidence *float64 `yaml:"confidence"`
	} `yaml:"symptoms"`
}

func loadRequest(path string) (models.Profile, []models.Observation, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return models.Profile{}, nil, fmt.Errorf("failed to load request from %q: %w", path, err)
	}

	var req requestFile
	if err := k.UnmarshalWithConf("", &req, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return models.Profile{}, nil, fmt.Errorf("failed to parse request from %q: %w", path, err)
	}

	profile := models.Profile{
		Name:             strings.TrimSpace(req.Profile.Name),
		Gender:           strings.ToLower(strings.TrimSpace(req.Profile.Gender)),
		Age:              req.Profile.Age,
		SmokingYears:     req.Profile.SmokingYears,
		CigarettesPerDay: req.Profile.CigarettesPerDay,
	}

	observations := make([]models.Observation, 0, len(req.Symptoms))
	for i, s := range req.Symptoms {
		id := strings.TrimSpace(s.ID)
		if id == "" {
			return models.Profile{}, nil, fmt.Errorf("symptoms[%d]: id is required", i)
		}
		confidence := models.ConfidenceCertain
		if s.Confidence != nil {
			confidence = *s.Confidence
		}
		observations = append(observations, models.NewObservation(models.SymptomID(id), confidence))
	}
	return profile, observations, nil
}
