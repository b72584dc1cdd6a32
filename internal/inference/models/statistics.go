package models

// DiseaseCount pairs a disease name with how often it ranked first.
type DiseaseCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics aggregates the diagnosis history.
type Statistics struct {
	TotalDiagnoses      int            `json:"total_diagnoses"`
	AverageAge          float64        `json:"average_age"`
	MostCommonDisease   *DiseaseCount  `json:"most_common_disease"`
	DiseaseDistribution map[string]int `json:"disease_distribution"`
}
