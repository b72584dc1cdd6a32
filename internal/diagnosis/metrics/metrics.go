package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the diagnosis module.
type Metrics struct {
	// Completed diagnoses by risk level of the profile
	DiagnosesTotal *prometheus.CounterVec

	// Primary disease of each completed diagnosis ("none" when nothing matched)
	PrimaryDisease *prometheus.CounterVec

	// Number of diseases that had at least one matching rule
	MatchedDiseases prometheus.Histogram

	// Full pipeline latency: engine, risk adjustment, summary and history write
	EvaluateLatency prometheus.Histogram

	// Size of the active knowledge base by kind
	KnowledgeBaseSize *prometheus.GaugeVec

	// Engine result cache lookups by outcome ("hit", "miss")
	ResultCache *prometheus.CounterVec
}

// New creates a Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the metrics with reg. Tests pass a fresh registry.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DiagnosesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dirok_diagnoses_total",
			Help: "Total completed diagnoses by risk level",
		}, []string{"risk_level"}),

		PrimaryDisease: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dirok_primary_disease_total",
			Help: "Primary disease of completed diagnoses",
		}, []string{"disease"}),

		MatchedDiseases: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dirok_matched_diseases",
			Help:    "Number of diseases with at least one matching rule per diagnosis",
			Buckets: []float64{0, 1, 2, 3, 4, 6, 8, 12},
		}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dirok_diagnose_duration_seconds",
			Help:    "Duration of a full diagnosis including history persistence",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),

		KnowledgeBaseSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dirok_knowledge_base_entries",
			Help: "Entries in the active knowledge base",
		}, []string{"kind"}), // kind: "symptoms", "diseases", "rules"

		ResultCache: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dirok_result_cache_lookups_total",
			Help: "Engine result cache lookups by outcome",
		}, []string{"outcome"}),
	}
}

// RecordDiagnosis counts a completed diagnosis.
func (m *Metrics) RecordDiagnosis(riskLevel, primaryDisease string, matched int) {
	if m == nil {
		return
	}
	if primaryDisease == "" {
		primaryDisease = "none"
	}
	m.DiagnosesTotal.WithLabelValues(riskLevel).Inc()
	m.PrimaryDisease.WithLabelValues(primaryDisease).Inc()
	m.MatchedDiseases.Observe(float64(matched))
}

// ObserveEvaluateLatency records the total diagnosis duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}

// SetKnowledgeBaseSize publishes the counts of the active knowledge base.
func (m *Metrics) SetKnowledgeBaseSize(symptoms, diseases, rules int) {
	if m == nil {
		return
	}
	m.KnowledgeBaseSize.WithLabelValues("symptoms").Set(float64(symptoms))
	m.KnowledgeBaseSize.WithLabelValues("diseases").Set(float64(diseases))
	m.KnowledgeBaseSize.WithLabelValues("rules").Set(float64(rules))
}

// RecordCacheLookup counts one result cache lookup.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.ResultCache.WithLabelValues(outcome).Inc()
}
