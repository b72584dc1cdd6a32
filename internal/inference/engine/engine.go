package engine

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"dirok/internal/inference/certainty"
	"dirok/internal/inference/models"
)

// Engine ranks diseases by combined certainty factor. It holds no state
// between calls; the knowledge base is read, never retained.
type Engine struct {
	parallelism int
	logger      *slog.Logger
}

type Option func(*Engine)

// WithParallelism evaluates up to n diseases concurrently. n <= 1 keeps the
// evaluation sequential. Output is identical either way.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func New(opts ...Option) *Engine {
	e := &Engine{parallelism: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Diagnose runs a sequential engine over kb and observations.
func Diagnose(kb *models.KnowledgeBase, observations []models.Observation) []models.DiagnosisResult {
	results, _ := New().Diagnose(context.Background(), kb, observations)
	return results
}

// Diagnose evaluates every disease in kb against observations.
//
// A disease with no matching rule is left out entirely. Matching rules are
// evaluated and combined in observation order. Results are sorted by signed CF,
// highest first, with disease ID as tie-breaker. Unknown symptoms are ignored
// and an empty observation list yields an empty slice.
//
// The only error is ctx cancellation while evaluating in parallel.
func (e *Engine) Diagnose(ctx context.Context, kb *models.KnowledgeBase, observations []models.Observation) ([]models.DiagnosisResult, error) {
	results := []models.DiagnosisResult{}
	if kb == nil || len(observations) == 0 {
		return results, nil
	}

	diseases := kb.Diseases()
	slots := make([]*models.DiagnosisResult, len(diseases))

	if e.parallelism <= 1 {
		for i, disease := range diseases {
			slots[i] = evaluateDisease(kb, disease, observations)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.parallelism)
		for i, disease := range diseases {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				slots[i] = evaluateDisease(kb, disease, observations)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for _, r := range slots {
		if r != nil {
			results = append(results, *r)
		}
	}
	SortResults(results)

	if e.logger != nil {
		e.logger.DebugContext(ctx, "diagnosis evaluated",
			"observations", len(observations),
			"diseases", len(diseases),
			"matched_diseases", len(results),
		)
	}
	return results, nil
}

// evaluateDisease returns nil when no observation has a rule for disease.
func evaluateDisease(kb *models.KnowledgeBase, disease models.Disease, observations []models.Observation) *models.DiagnosisResult {
	var (
		cfs     []float64
		matched []models.MatchedEvidence
	)
	for _, obs := range observations {
		rule, ok := kb.Rule(obs.SymptomID, disease.ID)
		if !ok {
			continue
		}
		cf := certainty.Evaluate(rule, obs.Confidence)
		cfs = append(cfs, cf)

		symptom, _ := kb.Symptom(obs.SymptomID)
		matched = append(matched, models.MatchedEvidence{
			Symptom:    symptom,
			Rule:       rule,
			Confidence: models.ClampUnit(obs.Confidence),
			CF:         cf,
		})
	}

	combined, err := certainty.CombineSequence(cfs)
	if err != nil {
		// No evidence for this disease.
		return nil
	}

	return &models.DiagnosisResult{
		Disease:       disease,
		CF:            combined,
		OriginalCF:    combined,
		Percentage:    certainty.Percentage(combined),
		Matched:       matched,
		MatchedCount:  len(matched),
		TotalSymptoms: len(disease.SymptomIDs),
	}
}

// SortResults orders results by signed CF descending, then by disease ID.
func SortResults(results []models.DiagnosisResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].CF != results[j].CF {
			return results[i].CF > results[j].CF
		}
		return results[i].Disease.ID < results[j].Disease.ID
	})
}
