// Package service runs the diagnosis pipeline (engine, risk adjustment, summary)
// and keeps the resulting records in history.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dirok/internal/diagnosis/metrics"
	"dirok/internal/diagnosis/store/history"
	"dirok/internal/inference/engine"
	"dirok/internal/inference/models"
	"dirok/internal/inference/risk"
	"dirok/internal/inference/summary"
	dErrors "dirok/pkg/domain-errors"
	"dirok/pkg/platform/sentinel"
	"dirok/pkg/requestcontext"
)

const tracerName = "dirok/diagnosis"

// Service owns the active knowledge base and the history store.
type Service struct {
	mu         sync.RWMutex
	kb         *models.KnowledgeBase
	generation uint64

	store   history.Store
	engine  *engine.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
	cache   *resultCache
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithEngine replaces the default sequential engine.
func WithEngine(e *engine.Engine) Option {
	return func(s *Service) {
		s.engine = e
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithResultCache keeps up to size engine evaluations for identical requests.
// The cache is dropped whenever the knowledge base is replaced.
func WithResultCache(size int) Option {
	return func(s *Service) {
		s.cache = newResultCache(size)
	}
}

// New constructs a Service. A nil store falls back to an in-memory history
// with the default limit.
func New(kb *models.KnowledgeBase, store history.Store, opts ...Option) (*Service, error) {
	if kb == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "knowledge base is required")
	}
	if store == nil {
		store = history.NewInMemory(history.DefaultLimit)
	}

	s := &Service{
		kb:     kb,
		store:  store,
		engine: engine.New(),
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.metrics.SetKnowledgeBaseSize(kb.Counts())
	return s, nil
}

// KnowledgeBase returns the active snapshot.
func (s *Service) KnowledgeBase() *models.KnowledgeBase {
	kb, _ := s.snapshot()
	return kb
}

func (s *Service) snapshot() (*models.KnowledgeBase, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kb, s.generation
}

// ReplaceKnowledgeBase swaps the snapshot used by subsequent diagnoses.
// Diagnoses already running keep the snapshot they started with.
func (s *Service) ReplaceKnowledgeBase(ctx context.Context, kb *models.KnowledgeBase) error {
	if kb == nil {
		return dErrors.New(dErrors.CodeInvariantViolation, "knowledge base is required")
	}
	s.mu.Lock()
	s.kb = kb
	s.generation++
	s.mu.Unlock()
	s.cache.purge()

	symptoms, diseases, rules := kb.Counts()
	s.metrics.SetKnowledgeBaseSize(symptoms, diseases, rules)
	s.logger.InfoContext(ctx, "knowledge base replaced",
		"symptoms", symptoms,
		"diseases", diseases,
		"rules", rules,
	)
	return nil
}

// Diagnose runs the full pipeline and stores the record.
//
// Repeated symptoms collapse to one observation at the position of their first
// occurrence, carrying the last confidence given.
func (s *Service) Diagnose(ctx context.Context, profile models.Profile, observations []models.Observation) (*models.Record, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "diagnosis.diagnose")
	defer span.End()

	if err := validateProfile(profile); err != nil {
		span.SetStatus(codes.Error, "invalid profile")
		return nil, err
	}

	kb, generation := s.snapshot()
	obs := dedupeObservations(observations)
	span.SetAttributes(attribute.Int("observations", len(obs)))

	raw, err := s.evaluate(ctx, kb, generation, obs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "engine failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "diagnosis was interrupted")
	}

	rf := risk.FromProfile(profile)
	adjusted := risk.AdjustResults(raw, rf)
	now := requestcontext.Now(ctx)

	rec := &models.Record{
		ID:           models.NewDiagnosisID(),
		CreatedAt:    now,
		Profile:      profile,
		Observations: obs,
		Results:      adjusted,
		Summary:      summary.Build(adjusted, profile, rf, now),
	}

	if err := s.store.Save(ctx, rec); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "history save failed")
		s.logger.ErrorContext(ctx, "failed to save diagnosis",
			"request_id", requestcontext.RequestID(ctx),
			"diagnosis_id", rec.ID.String(),
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save diagnosis")
	}

	primary := rec.PrimaryDiseaseName()
	span.SetAttributes(
		attribute.String("diagnosis_id", rec.ID.String()),
		attribute.Int("matched_diseases", len(adjusted)),
		attribute.String("risk_level", string(rf.Level)),
		attribute.String("primary_disease", primary),
	)
	s.metrics.RecordDiagnosis(string(rf.Level), primary, len(adjusted))
	s.metrics.ObserveEvaluateLatency(time.Since(start))

	s.logger.InfoContext(ctx, "diagnosis completed",
		"request_id", requestcontext.RequestID(ctx),
		"diagnosis_id", rec.ID.String(),
		"observations", len(obs),
		"matched_diseases", len(adjusted),
		"primary_disease", primary,
		"risk_level", rf.Level,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return rec, nil
}

func (s *Service) evaluate(ctx context.Context, kb *models.KnowledgeBase, generation uint64, obs []models.Observation) ([]models.DiagnosisResult, error) {
	ctx, span := s.tracer.Start(ctx, "diagnosis.engine")
	defer span.End()

	var key string
	if s.cache != nil {
		key = cacheKey(generation, obs)
		cached, hit := s.cache.get(key)
		s.metrics.RecordCacheLookup(hit)
		span.SetAttributes(attribute.Bool("cache_hit", hit))
		if hit {
			return cached, nil
		}
	}

	results, err := s.engine.Diagnose(ctx, kb, obs)
	if err != nil {
		return nil, err
	}
	s.cache.add(key, results)
	return results, nil
}

// History lists stored diagnoses, newest first.
func (s *Service) History(ctx context.Context) ([]*models.Record, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list diagnoses")
	}
	return records, nil
}

func (s *Service) Get(ctx context.Context, id models.DiagnosisID) (*models.Record, error) {
	rec, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translateStoreError(err, "failed to load diagnosis")
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id models.DiagnosisID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return translateStoreError(err, "failed to delete diagnosis")
	}
	s.logger.InfoContext(ctx, "diagnosis deleted",
		"request_id", requestcontext.RequestID(ctx),
		"diagnosis_id", id.String(),
	)
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to clear history")
	}
	s.logger.InfoContext(ctx, "diagnosis history cleared",
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// Statistics summarises the stored history.
func (s *Service) Statistics(ctx context.Context) (*models.Statistics, error) {
	records, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStatistics(records), nil
}

func translateStoreError(err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeNotFound, "diagnosis not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

func validateProfile(p models.Profile) error {
	switch {
	case p.Age < 0:
		return dErrors.New(dErrors.CodeValidation, "age cannot be negative")
	case p.SmokingYears < 0:
		return dErrors.New(dErrors.CodeValidation, "smoking_years cannot be negative")
	case p.CigarettesPerDay < 0:
		return dErrors.New(dErrors.CodeValidation, "cigarettes_per_day cannot be negative")
	}
	return nil
}

func dedupeObservations(observations []models.Observation) []models.Observation {
	out := make([]models.Observation, 0, len(observations))
	index := make(map[models.SymptomID]int, len(observations))
	for _, o := range observations {
		o = models.NewObservation(o.SymptomID, o.Confidence)
		if i, seen := index[o.SymptomID]; seen {
			out[i].Confidence = o.Confidence
			continue
		}
		index[o.SymptomID] = len(out)
		out = append(out, o)
	}
	return out
}
