// Package httpapi exposes schedule generation over HTTP
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/internal/domain/repository"
	"pilot-career-service/internal/usecase"
	"pilot-career-service/pkg/logger"
)

// ScheduleService is the use case surface served over HTTP
type ScheduleService interface {
	Generate(ctx context.Context, req entity.ScheduleRequest) (*entity.Schedule, error)
	Preview(ctx context.Context, req entity.ScheduleRequest) (*entity.Schedule, error)
	GetSchedule(ctx context.Context, id string) (*entity.Schedule, error)
	ListSchedules(ctx context.Context, pilotID string, limit int) ([]*entity.Schedule, error)
	SearchRoutes(ctx context.Context, query entity.RouteQuery) ([]entity.Route, error)
}

// Renderer renders a schedule as a plain text itinerary
type Renderer interface {
	Render(ctx context.Context, schedule *entity.Schedule) (string, error)
}

// Handler serves the schedule API
type Handler struct {
	service  ScheduleService
	renderer Renderer
	logger   logger.Logger
}

// NewHandler creates a new API handler
func NewHandler(service ScheduleService, renderer Renderer, logger logger.Logger) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
		logger:   logger,
	}
}

// NewRouter mounts the API, health check and, when metricsHandler is not
// nil, /metrics
func NewRouter(h *Handler, metricsHandler http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Post("/schedules", h.handleGenerate)
		r.Post("/schedules/preview", h.handlePreview)
		r.Get("/schedules/{scheduleID}", h.handleGetSchedule)
		r.Get("/pilots/{pilotID}/schedules", h.handleListSchedules)
		r.Get("/routes", h.handleSearchRoutes)
	})
	return r
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	schedule, err := h.service.Generate(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, schedule)
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}
	schedule, err := h.service.Preview(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeSchedule(w, r, http.StatusOK, schedule)
}

func (h *Handler) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetSchedule(r.Context(), chi.URLParam(r, "scheduleID"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeSchedule(w, r, http.StatusOK, schedule)
}

func (h *Handler) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	schedules, err := h.service.ListSchedules(r.Context(), chi.URLParam(r, "pilotID"), limit)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedules": schedules})
}

func (h *Handler) handleSearchRoutes(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset")
	if !ok {
		return
	}

	query := entity.RouteQuery{
		Departure: r.URL.Query().Get("departure"),
		Arrival:   r.URL.Query().Get("arrival"),
		Airline:   r.URL.Query().Get("airline"),
		Limit:     limit,
		Offset:    offset,
	}
	if haul := r.URL.Query().Get("haul"); haul != "" {
		parsed, err := entity.ParseHaulType(haul)
		if err != nil {
			writeError(w, http.StatusBadRequest, string(usecase.KindInvalidRequest), err.Error())
			return
		}
		query.Haul = parsed
	}

	routes, err := h.service.SearchRoutes(r.Context(), query)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"routes": routes})
}

func (h *Handler) decodeRequest(w http.ResponseWriter, r *http.Request) (entity.ScheduleRequest, bool) {
	var req entity.ScheduleRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(usecase.KindInvalidRequest), "invalid JSON body")
		return req, false
	}
	return req, true
}

func (h *Handler) writeSchedule(w http.ResponseWriter, r *http.Request, status int, schedule *entity.Schedule) {
	if r.URL.Query().Get("format") != "text" || h.renderer == nil {
		writeJSON(w, status, schedule)
		return
	}
	text, err := h.renderer.Render(r.Context(), schedule)
	if err != nil {
		h.logger.Error("Failed to render schedule", "scheduleID", schedule.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to render schedule")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

// writeServiceError maps use case failures to HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrScheduleNotFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	kind := usecase.KindOf(err)
	switch kind {
	case usecase.KindInvalidRequest:
		writeError(w, http.StatusBadRequest, string(kind), err.Error())
	case usecase.KindUnknownAirport:
		writeError(w, http.StatusNotFound, string(kind), err.Error())
	case usecase.KindNoRoutesAvailable, usecase.KindScheduleInfeasible:
		writeError(w, http.StatusUnprocessableEntity, string(kind), err.Error())
	default:
		h.logger.Error("Request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(started).String(),
			"requestID", middleware.GetReqID(r.Context()))
	})
}

func queryInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, string(usecase.KindInvalidRequest), key+" must be an integer")
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": message})
}
