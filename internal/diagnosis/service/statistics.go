package service

import (
	"math"

	"dirok/internal/inference/models"
)

// ComputeStatistics aggregates records given newest first.
//
// AverageAge is rounded to one decimal. The most common primary disease breaks
// ties in favour of the disease seen most recently.
func ComputeStatistics(records []*models.Record) *models.Statistics {
	stats := &models.Statistics{
		TotalDiagnoses:      len(records),
		DiseaseDistribution: map[string]int{},
	}
	if len(records) == 0 {
		return stats
	}

	var ageSum int
	var order []string
	for _, rec := range records {
		ageSum += rec.Profile.Age
		name := rec.PrimaryDiseaseName()
		if name == "" {
			continue
		}
		if _, seen := stats.DiseaseDistribution[name]; !seen {
			order = append(order, name)
		}
		stats.DiseaseDistribution[name]++
	}
	stats.AverageAge = math.Round(float64(ageSum)/float64(len(records))*10) / 10

	for _, name := range order {
		count := stats.DiseaseDistribution[name]
		if stats.MostCommonDisease == nil || count > stats.MostCommonDisease.Count {
			stats.MostCommonDisease = &models.DiseaseCount{Name: name, Count: count}
		}
	}
	return stats
}
