package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dirok/internal/inference/models"
	"dirok/pkg/platform/httputil"
	"dirok/pkg/requestcontext"
)

// Service defines the diagnosis operations exposed over HTTP.
type Service interface {
	Diagnose(ctx context.Context, profile models.Profile, observations []models.Observation) (*models.Record, error)
	History(ctx context.Context) ([]*models.Record, error)
	Get(ctx context.Context, id models.DiagnosisID) (*models.Record, error)
	Delete(ctx context.Context, id models.DiagnosisID) error
	Clear(ctx context.Context) error
	Statistics(ctx context.Context) (*models.Statistics, error)
	KnowledgeBase() *models.KnowledgeBase
}

// Handler wires diagnosis endpoints to the diagnosis service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts diagnosis endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/diagnoses", func(r chi.Router) {
		r.Post("/", h.HandleDiagnose)
		r.Get("/", h.HandleList)
		r.Delete("/", h.HandleClear)
		r.Get("/statistics", h.HandleStatistics)
		r.Get("/{id}", h.HandleGet)
		r.Delete("/{id}", h.HandleDelete)
	})
	r.Get("/knowledge-base/symptoms", h.HandleSymptoms)
}

// HandleDiagnose handles POST /diagnoses.
func (h *Handler) HandleDiagnose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[DiagnoseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.Diagnose(ctx, req.ToProfile(), req.ToObservations())
	if err != nil {
		h.logger.ErrorContext(ctx, "diagnosis failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "diagnosis created",
		"request_id", requestID,
		"diagnosis_id", rec.ID.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromRecord(rec))
}

// HandleList handles GET /diagnoses.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := h.service.History(ctx)
	if err != nil {
		h.logError(ctx, "failed to list diagnoses", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecords(records))
}

// HandleGet handles GET /diagnoses/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := models.ParseDiagnosisID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	rec, err := h.service.Get(ctx, id)
	if err != nil {
		h.logError(ctx, "failed to get diagnosis", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromRecord(rec))
}

// HandleDelete handles DELETE /diagnoses/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := models.ParseDiagnosisID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		h.logError(ctx, "failed to delete diagnosis", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleClear handles DELETE /diagnoses.
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.Clear(ctx); err != nil {
		h.logError(ctx, "failed to clear diagnoses", err)
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleStatistics handles GET /diagnoses/statistics.
func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.service.Statistics(ctx)
	if err != nil {
		h.logError(ctx, "failed to compute statistics", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

// HandleSymptoms handles GET /knowledge-base/symptoms.
func (h *Handler) HandleSymptoms(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromKnowledgeBase(h.service.KnowledgeBase()))
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
