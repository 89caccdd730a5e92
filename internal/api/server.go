package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/activity"
	"github.com/animvsh/lingoose-speaks-ai-sub000/internal/processor"
)

// Pipelines is the analysis surface the HTTP layer exposes.
// *processor.Processor satisfies it.
type Pipelines interface {
	BehaviorAnalysis(ctx context.Context, req processor.BehaviorRequest) (*processor.BehaviorResult, error)
	CoreMetrics(ctx context.Context, req processor.CoreMetricsRequest) (*processor.CoreMetricsResult, error)
}

// PlanReader serves the live activity plan. *store.Store satisfies it.
type PlanReader interface {
	ForwardPlan(ctx context.Context, phoneNumber string) ([]activity.Activity, error)
}

type Server struct {
	router *chi.Mux
	port   int
	proc   Pipelines
	plans  PlanReader
	logger *slog.Logger
}

func NewServer(port int, proc Pipelines, plans PlanReader, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	// Analysis webhooks arrive from browser and serverless contexts alike;
	// the CORS policy is deliberately wide open.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))

	s := &Server{
		router: router,
		port:   port,
		proc:   proc,
		plans:  plans,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Post("/api/v1/analysis/behavior", s.behaviorAnalysis)
	router.Post("/api/v1/analysis/core-metrics", s.coreMetrics)
	router.Get("/api/v1/analysis/activities/{phoneNumber}", s.activities)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	slog.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) behaviorAnalysis(w http.ResponseWriter, r *http.Request) {
	var req processor.BehaviorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	res, err := s.proc.BehaviorAnalysis(r.Context(), req)
	if err != nil {
		s.writePipelineError(w, "behavior analysis", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"metrics":      res.Metrics,
		"improvements": res.Improvements,
	})
}

func (s *Server) coreMetrics(w http.ResponseWriter, r *http.Request) {
	var req processor.CoreMetricsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	res, err := s.proc.CoreMetrics(r.Context(), req)
	if err != nil {
		s.writePipelineError(w, "core metrics", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":               true,
		"composite_score":       res.CompositeScore,
		"advancement_eligible":  res.AdvancementEligible,
		"areas_for_improvement": res.AreasForImprovement,
	})
}

func (s *Server) activities(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phoneNumber")
	plan, err := s.plans.ForwardPlan(r.Context(), phone)
	if err != nil {
		s.logger.Error("forward plan fetch failed", "phone_number", phone, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch activity plan")
		return
	}
	if plan == nil {
		plan = []activity.Activity{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"activities": plan,
	})
}

// writePipelineError maps processor errors onto the HTTP contract: caller
// mistakes get a 400 with the reason, everything else a generic 500. The
// caller may retry the whole request; partial state is never left behind.
func (s *Server) writePipelineError(w http.ResponseWriter, pipeline string, err error) {
	var inputErr *processor.InputError
	if errors.As(err, &inputErr) {
		writeError(w, http.StatusBadRequest, inputErr.Error())
		return
	}
	s.logger.Error("pipeline failed", "pipeline", pipeline, "error", err)
	writeError(w, http.StatusInternalServerError, "analysis temporarily unavailable")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
