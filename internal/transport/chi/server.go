package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/corpuskit/winnow/internal/cleaner"
	"github.com/corpuskit/winnow/internal/domain"
	"github.com/corpuskit/winnow/internal/domain/record"
	datasetuc "github.com/corpuskit/winnow/internal/usecase/dataset"
	healthuc "github.com/corpuskit/winnow/internal/usecase/health"
)

// Error codes returned to clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeDatasetNotFound  = "dataset_not_found"
	codeDatasetTooLarge  = "dataset_too_large"
	codeInternalError    = "internal_error"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes dataset storage and cleaning over HTTP.
type Server struct {
	datasets      *datasetuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	datasets *datasetuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		datasets: datasets,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrDatasetNotFound, http.StatusNotFound, codeDatasetNotFound),
		sentinelHandler(domain.ErrDatasetTooLarge, http.StatusRequestEntityTooLarge, codeDatasetTooLarge),
		sentinelHandler(domain.ErrInvalidDatasetName, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidConfig, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Register mounts all routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/clean", s.CleanBatch)
		r.Get("/datasets", s.ListDatasets)
		r.Route("/datasets/{dataset}", func(r chi.Router) {
			r.Put("/", s.PutDataset)
			r.Get("/", s.GetDataset)
			r.Delete("/", s.DeleteDataset)
			r.Post("/clean", s.CleanDataset)
		})
	})
}

// CleanRequest is the body of POST /api/v1/clean.
type CleanRequest struct {
	Records []record.Record `json:"records"`
}

// CleanResponse carries the survivors and per-stage drop counts.
type CleanResponse struct {
	Records []record.Record `json:"records"`
	Stats   cleaner.Stats   `json:"stats"`
}

// CleanBatch handles POST /api/v1/clean.
func (s *Server) CleanBatch(w http.ResponseWriter, r *http.Request) {
	var req CleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cleaned, stats, err := s.datasets.Clean(r.Context(), req.Records)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CleanResponse{Records: cleaned, Stats: stats})
}

// PutDatasetRequest is the body of PUT /api/v1/datasets/{dataset}.
type PutDatasetRequest struct {
	Records []record.Record `json:"records"`
}

// PutDatasetResponse confirms how many records were stored.
type PutDatasetResponse struct {
	Dataset string `json:"dataset"`
	Records int    `json:"records"`
}

// PutDataset handles PUT /api/v1/datasets/{dataset}.
func (s *Server) PutDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")

	var req PutDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Records) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "records must not be empty")
		return
	}

	if err := s.datasets.Put(r.Context(), name, req.Records); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, PutDatasetResponse{
		Dataset: name,
		Records: len(req.Records),
	})
}

// DatasetResponse carries the stored records of one dataset.
type DatasetResponse struct {
	Dataset string          `json:"dataset"`
	Records []record.Record `json:"records"`
}

// GetDataset handles GET /api/v1/datasets/{dataset}.
func (s *Server) GetDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")

	records, err := s.datasets.Get(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if records == nil {
		records = []record.Record{}
	}

	writeJSON(w, http.StatusOK, DatasetResponse{Dataset: name, Records: records})
}

// DeleteDataset handles DELETE /api/v1/datasets/{dataset}.
func (s *Server) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")

	if err := s.datasets.Delete(r.Context(), name); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DatasetListResponse lists stored dataset names.
type DatasetListResponse struct {
	Datasets []string `json:"datasets"`
}

// ListDatasets handles GET /api/v1/datasets.
func (s *Server) ListDatasets(w http.ResponseWriter, r *http.Request) {
	names, err := s.datasets.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, DatasetListResponse{Datasets: names})
}

// CleanDatasetResponse reports a stored cleaning run.
type CleanDatasetResponse struct {
	Dataset string        `json:"dataset"`
	Stats   cleaner.Stats `json:"stats"`
}

// CleanDataset handles POST /api/v1/datasets/{dataset}/clean.
func (s *Server) CleanDataset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "dataset")

	stats, err := s.datasets.CleanStored(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CleanDatasetResponse{Dataset: name, Stats: stats})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrDatasetNotFound,
		domain.ErrDatasetTooLarge,
		domain.ErrInvalidDatasetName,
		domain.ErrInvalidRecord,
		domain.ErrInvalidConfig,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
