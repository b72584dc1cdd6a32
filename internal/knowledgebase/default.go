package knowledgebase

import "dirok/internal/inference/models"

// Default returns the built-in rule base: 33 symptoms, 8 smoking-related
// diseases and 56 rules.
func Default() *models.KnowledgeBase {
	kb, err := models.NewKnowledgeBase(defaultSymptoms(), defaultDiseases(), defaultRules())
	if err != nil {
		panic("knowledgebase: built-in data is invalid: " + err.Error())
	}
	return kb
}

func defaultSymptoms() []models.Symptom {
	return []models.Symptom{
		{ID: "G01", Code: "G01", Name: "Persistent cough lasting more than 3 weeks", Category: "respiratory", MB: 0.8, MD: 0.1},
		{ID: "G02", Code: "G02", Name: "Coughing up blood (hemoptysis)", Category: "respiratory", MB: 0.9, MD: 0.05},
		{ID: "G03", Code: "G03", Name: "Shortness of breath (dyspnea)", Category: "respiratory", MB: 0.85, MD: 0.1},
		{ID: "G04", Code: "G04", Name: "Wheezing", Category: "respiratory", MB: 0.75, MD: 0.15},
		{ID: "G05", Code: "G05", Name: "Excessive phlegm production", Category: "respiratory", MB: 0.7, MD: 0.15},
		{ID: "G06", Code: "G06", Name: "Persistent chest pain", Category: "pain", MB: 0.85, MD: 0.1},
		{ID: "G07", Code: "G07", Name: "Chest pain spreading to the left arm", Category: "pain", MB: 0.95, MD: 0.02},
		{ID: "G08", Code: "G08", Name: "Chronic sore throat", Category: "pain", MB: 0.8, MD: 0.1},
		{ID: "G09", Code: "G09", Name: "Pain when swallowing (odynophagia)", Category: "pain", MB: 0.85, MD: 0.08},
		{ID: "G10", Code: "G10", Name: "Sudden severe headache", Category: "pain", MB: 0.9, MD: 0.05},
		{ID: "G11", Code: "G11", Name: "Drastic unexplained weight loss", Category: "systemic", MB: 0.85, MD: 0.1},
		{ID: "G12", Code: "G12", Name: "Extreme fatigue", Category: "systemic", MB: 0.7, MD: 0.2},
		{ID: "G13", Code: "G13", Name: "Unexplained fever", Category: "systemic", MB: 0.65, MD: 0.2},
		{ID: "G14", Code: "G14", Name: "Excessive night sweats", Category: "systemic", MB: 0.7, MD: 0.15},
		{ID: "G15", Code: "G15", Name: "Loss of appetite", Category: "systemic", MB: 0.65, MD: 0.2},
		{ID: "G16", Code: "G16", Name: "Heart palpitations", Category: "cardiovascular", MB: 0.8, MD: 0.1},
		{ID: "G17", Code: "G17", Name: "Swelling of the legs and ankles", Category: "cardiovascular", MB: 0.75, MD: 0.15},
		{ID: "G18", Code: "G18", Name: "Cold sweats", Category: "cardiovascular", MB: 0.85, MD: 0.1},
		{ID: "G19", Code: "G19", Name: "Nausea and vomiting", Category: "cardiovascular", MB: 0.6, MD: 0.25},
		{ID: "G20", Code: "G20", Name: "Weakness or numbness in the face, arm or leg", Category: "neurological", MB: 0.95, MD: 0.02},
		{ID: "G21", Code: "G21", Name: "Difficulty speaking or understanding speech", Category: "neurological", MB: 0.9, MD: 0.05},
		{ID: "G22", Code: "G22", Name: "Sudden vision problems", Category: "neurological", MB: 0.85, MD: 0.08},
		{ID: "G23", Code: "G23", Name: "Loss of balance or coordination", Category: "neurological", MB: 0.8, MD: 0.1},
		{ID: "G24", Code: "G24", Name: "Mouth sores that do not heal", Category: "oral", MB: 0.9, MD: 0.05},
		{ID: "G25", Code: "G25", Name: "White or red patches in the mouth", Category: "oral", MB: 0.85, MD: 0.08},
		{ID: "G26", Code: "G26", Name: "Prolonged hoarseness", Category: "oral", MB: 0.85, MD: 0.1},
		{ID: "G27", Code: "G27", Name: "Difficulty swallowing (dysphagia)", Category: "oral", MB: 0.85, MD: 0.1},
		{ID: "G28", Code: "G28", Name: "Lump in the neck", Category: "oral", MB: 0.8, MD: 0.12},
		{ID: "G29", Code: "G29", Name: "Erectile dysfunction", Category: "reproductive", MB: 0.85, MD: 0.1},
		{ID: "G30", Code: "G30", Name: "Reduced libido", Category: "reproductive", MB: 0.75, MD: 0.15},
		{ID: "G31", Code: "G31", Name: "Fertility problems", Category: "reproductive", MB: 0.7, MD: 0.2},
		{ID: "G32", Code: "G32", Name: "Recurring colds", Category: "respiratory", MB: 0.65, MD: 0.2},
		{ID: "G33", Code: "G33", Name: "Recurring respiratory infections", Category: "respiratory", MB: 0.8, MD: 0.1},
	}
}

func defaultDiseases() []models.Disease {
	return []models.Disease{
		{
			ID:         "P1",
			Code:       "P1",
			Name:       "Lung cancer",
			SymptomIDs: []models.SymptomID{"G01", "G02", "G03", "G06", "G11", "G12", "G13", "G14", "G15"},
			Severity:   models.SeverityCritical,
		},
		{
			ID:         "P2",
			Code:       "P2",
			Name:       "Oral cancer",
			SymptomIDs: []models.SymptomID{"G08", "G09", "G11", "G15", "G24", "G25", "G27", "G28"},
			Severity:   models.SeverityHigh,
		},
		{
			ID:         "P3",
			Code:       "P3",
			Name:       "Throat cancer",
			SymptomIDs: []models.SymptomID{"G08", "G09", "G11", "G15", "G26", "G27", "G28"},
			Severity:   models.SeverityHigh,
		},
		{
			ID:         "P4",
			Code:       "P4",
			Name:       "Heart attack",
			SymptomIDs: []models.SymptomID{"G03", "G06", "G07", "G12", "G16", "G17", "G18", "G19"},
			Severity:   models.SeverityCritical,
		},
		{
			ID:         "P5",
			Code:       "P5",
			Name:       "Chronic obstructive pulmonary disease (COPD)",
			SymptomIDs: []models.SymptomID{"G01", "G03", "G04", "G05", "G12", "G17", "G33"},
			Severity:   models.SeverityHigh,
		},
		{
			ID:         "P6",
			Code:       "P6",
			Name:       "Stroke",
			SymptomIDs: []models.SymptomID{"G10", "G19", "G20", "G21", "G22", "G23"},
			Severity:   models.SeverityCritical,
		},
		{
			ID:         "P7",
			Code:       "P7",
			Name:       "Acute respiratory infection",
			SymptomIDs: []models.SymptomID{"G01", "G03", "G04", "G05", "G08", "G13", "G32", "G33"},
			Severity:   models.SeverityModerate,
		},
		{
			ID:         "P8",
			Code:       "P8",
			Name:       "Impotence (erectile dysfunction)",
			SymptomIDs: []models.SymptomID{"G29", "G30", "G31"},
			Severity:   models.SeverityModerate,
		},
	}
}

func defaultRules() []models.Rule {
	return []models.Rule{
		{ID: "R01", SymptomID: "G01", DiseaseID: "P1", MB: 0.8, MD: 0.1},
		{ID: "R02", SymptomID: "G02", DiseaseID: "P1", MB: 0.95, MD: 0.02},
		{ID: "R03", SymptomID: "G03", DiseaseID: "P1", MB: 0.85, MD: 0.1},
		{ID: "R04", SymptomID: "G06", DiseaseID: "P1", MB: 0.9, MD: 0.08},
		{ID: "R05", SymptomID: "G11", DiseaseID: "P1", MB: 0.85, MD: 0.1},
		{ID: "R06", SymptomID: "G12", DiseaseID: "P1", MB: 0.7, MD: 0.2},
		{ID: "R07", SymptomID: "G13", DiseaseID: "P1", MB: 0.65, MD: 0.2},
		{ID: "R08", SymptomID: "G14", DiseaseID: "P1", MB: 0.75, MD: 0.15},
		{ID: "R09", SymptomID: "G15", DiseaseID: "P1", MB: 0.65, MD: 0.2},

		{ID: "R10", SymptomID: "G08", DiseaseID: "P2", MB: 0.75, MD: 0.15},
		{ID: "R11", SymptomID: "G09", DiseaseID: "P2", MB: 0.85, MD: 0.1},
		{ID: "R12", SymptomID: "G11", DiseaseID: "P2", MB: 0.8, MD: 0.12},
		{ID: "R13", SymptomID: "G15", DiseaseID: "P2", MB: 0.65, MD: 0.2},
		{ID: "R14", SymptomID: "G24", DiseaseID: "P2", MB: 0.95, MD: 0.03},
		{ID: "R15", SymptomID: "G25", DiseaseID: "P2", MB: 0.9, MD: 0.05},
		{ID: "R16", SymptomID: "G27", DiseaseID: "P2", MB: 0.85, MD: 0.1},
		{ID: "R17", SymptomID: "G28", DiseaseID: "P2", MB: 0.8, MD: 0.12},

		{ID: "R18", SymptomID: "G08", DiseaseID: "P3", MB: 0.8, MD: 0.12},
		{ID: "R19", SymptomID: "G09", DiseaseID: "P3", MB: 0.9, MD: 0.05},
		{ID: "R20", SymptomID: "G11", DiseaseID: "P3", MB: 0.8, MD: 0.12},
		{ID: "R21", SymptomID: "G15", DiseaseID: "P3", MB: 0.65, MD: 0.2},
		{ID: "R22", SymptomID: "G26", DiseaseID: "P3", MB: 0.95, MD: 0.03},
		{ID: "R23", SymptomID: "G27", DiseaseID: "P3", MB: 0.88, MD: 0.08},
		{ID: "R24", SymptomID: "G28", DiseaseID: "P3", MB: 0.82, MD: 0.1},

		{ID: "R25", SymptomID: "G03", DiseaseID: "P4", MB: 0.8, MD: 0.12},
		{ID: "R26", SymptomID: "G06", DiseaseID: "P4", MB: 0.88, MD: 0.08},
		{ID: "R27", SymptomID: "G07", DiseaseID: "P4", MB: 0.98, MD: 0.01},
		{ID: "R28", SymptomID: "G12", DiseaseID: "P4", MB: 0.7, MD: 0.18},
		{ID: "R29", SymptomID: "G16", DiseaseID: "P4", MB: 0.82, MD: 0.1},
		{ID: "R30", SymptomID: "G17", DiseaseID: "P4", MB: 0.75, MD: 0.15},
		{ID: "R31", SymptomID: "G18", DiseaseID: "P4", MB: 0.92, MD: 0.05},
		{ID: "R32", SymptomID: "G19", DiseaseID: "P4", MB: 0.65, MD: 0.22},

		{ID: "R33", SymptomID: "G01", DiseaseID: "P5", MB: 0.88, MD: 0.08},
		{ID: "R34", SymptomID: "G03", DiseaseID: "P5", MB: 0.95, MD: 0.03},
		{ID: "R35", SymptomID: "G04", DiseaseID: "P5", MB: 0.9, MD: 0.05},
		{ID: "R36", SymptomID: "G05", DiseaseID: "P5", MB: 0.85, MD: 0.1},
		{ID: "R37", SymptomID: "G12", DiseaseID: "P5", MB: 0.7, MD: 0.18},
		{ID: "R38", SymptomID: "G17", DiseaseID: "P5", MB: 0.72, MD: 0.16},
		{ID: "R39", SymptomID: "G33", DiseaseID: "P5", MB: 0.85, MD: 0.1},

		{ID: "R40", SymptomID: "G10", DiseaseID: "P6", MB: 0.92, MD: 0.05},
		{ID: "R41", SymptomID: "G19", DiseaseID: "P6", MB: 0.6, MD: 0.25},
		{ID: "R42", SymptomID: "G20", DiseaseID: "P6", MB: 0.98, MD: 0.01},
		{ID: "R43", SymptomID: "G21", DiseaseID: "P6", MB: 0.95, MD: 0.03},
		{ID: "R44", SymptomID: "G22", DiseaseID: "P6", MB: 0.88, MD: 0.08},
		{ID: "R45", SymptomID: "G23", DiseaseID: "P6", MB: 0.85, MD: 0.1},

		{ID: "R46", SymptomID: "G01", DiseaseID: "P7", MB: 0.75, MD: 0.15},
		{ID: "R47", SymptomID: "G03", DiseaseID: "P7", MB: 0.7, MD: 0.18},
		{ID: "R48", SymptomID: "G04", DiseaseID: "P7", MB: 0.72, MD: 0.16},
		{ID: "R49", SymptomID: "G05", DiseaseID: "P7", MB: 0.78, MD: 0.12},
		{ID: "R50", SymptomID: "G08", DiseaseID: "P7", MB: 0.7, MD: 0.18},
		{ID: "R51", SymptomID: "G13", DiseaseID: "P7", MB: 0.65, MD: 0.2},
		{ID: "R52", SymptomID: "G32", DiseaseID: "P7", MB: 0.8, MD: 0.12},
		{ID: "R53", SymptomID: "G33", DiseaseID: "P7", MB: 0.88, MD: 0.08},

		{ID: "R54", SymptomID: "G29", DiseaseID: "P8", MB: 0.95, MD: 0.03},
		{ID: "R55", SymptomID: "G30", DiseaseID: "P8", MB: 0.85, MD: 0.1},
		{ID: "R56", SymptomID: "G31", DiseaseID: "P8", MB: 0.75, MD: 0.15},
	}
}
