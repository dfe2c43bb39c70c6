package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/plrcalc/profitshare/eligibility"
	"github.com/plrcalc/profitshare/employee"
	"github.com/plrcalc/profitshare/engine"
	"github.com/plrcalc/profitshare/internal/logger"
	"github.com/plrcalc/profitshare/specification"
)

type Server struct {
	db     *sql.DB // nil when running on the in-memory store
	store  employee.Store
	eng    *engine.Engine
	log    *slog.Logger
	router *chi.Mux
}

// NewServer wires the employee store, the eligibility engine with the
// built-in policy catalog, and the HTTP routes. An empty databaseURL runs
// the server on the in-memory store.
func NewServer(databaseURL string, log *slog.Logger) (*Server, error) {
	var db *sql.DB
	var store employee.Store

	if databaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory employee store")
		store = employee.NewInMemoryStore()
	} else {
		var err error
		db, err = sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		store = employee.NewPostgresStore(db)
	}

	eng := engine.NewEngineWithStore(store)
	if err := registerBuiltinPolicies(eng); err != nil {
		return nil, fmt.Errorf("failed to register policies: %w", err)
	}

	s := &Server{
		db:    db,
		store: store,
		eng:   eng,
		log:   log,
	}

	s.setupRoutes()

	return s, nil
}

// registerBuiltinPolicies installs the ready-made profit-sharing rules.
// Trees are assembled here, before the engine is shared with any handler.
func registerBuiltinPolicies(eng *engine.Engine) error {
	policies := []*engine.Policy{
		{
			ID:     "standard",
			Name:   "Standard eligibility",
			Spec:   eligibility.StandardEligibility(),
			Active: true,
		},
		{
			ID:     "senior-technology",
			Name:   "Senior technology band",
			Spec:   eligibility.SeniorTechnology(),
			Active: true,
		},
		{
			ID:     "entry-level",
			Name:   "Entry-level band",
			Spec:   eligibility.EntryLevel(),
			Active: true,
		},
	}

	for _, p := range policies {
		if err := eng.AddPolicy(p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/v1/health", s.handleHealth)

	r.Get("/api/v1/policies", s.handleListPolicies)
	r.Post("/api/v1/evaluate", s.handleEvaluate)

	r.Route("/api/v1/employees", func(r chi.Router) {
		r.Get("/", s.handleListEmployees)
		r.Post("/", s.handleCreateEmployee)

		r.Route("/{employeeId}", func(r chi.Router) {
			r.Get("/", s.handleGetEmployee)
			r.Put("/", s.handleUpdateEmployee)
			r.Delete("/", s.handleDeleteEmployee)

			r.Post("/eligibility", s.handleEmployeeEligibility)
		})
	})

	s.router = r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"activePolicies": len(s.eng.ListActive()),
	})
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	active := s.eng.ListActive()

	policies := make([]PolicyResponse, 0, len(active))
	for _, p := range active {
		policies = append(policies, PolicyResponse{
			ID:     p.ID,
			Name:   p.Name,
			Rule:   fmt.Sprintf("%v", p.Spec),
			Active: p.Active,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"policies": policies,
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if req.Candidate == nil {
		respondError(w, http.StatusBadRequest, "candidate is required", nil)
		return
	}

	candidate := specification.FieldMap(req.Candidate)

	var results []*engine.EvaluationResult
	if len(req.PolicyIDs) > 0 {
		results = make([]*engine.EvaluationResult, 0, len(req.PolicyIDs))
		for _, policyID := range req.PolicyIDs {
			result, err := s.eng.Evaluate(policyID, candidate)
			if err != nil {
				respondError(w, http.StatusNotFound, "policy not found", err)
				return
			}
			results = append(results, result)
		}
	} else {
		results = s.eng.EvaluateAll(candidate)
	}

	responses := make([]EvaluationResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, newEvaluationResponse(result))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"results": responses,
	})
}

func (s *Server) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	all, err := s.store.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list employees", err)
		return
	}

	employees := make([]EmployeeResponse, 0, len(all))
	for _, e := range all {
		employees = append(employees, newEmployeeResponse(e))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"employees": employees,
	})
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	e, err := req.toEmployee(uuid.NewString())
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee record", err)
		return
	}

	if err := employee.Validate(e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee record", err)
		return
	}

	if err := s.store.Add(e); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to store employee", err)
		return
	}

	respondJSON(w, http.StatusCreated, newEmployeeResponse(e))
}

func (s *Server) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	e, err := s.store.Get(employeeID)
	if err != nil {
		respondError(w, http.StatusNotFound, "employee not found", err)
		return
	}

	respondJSON(w, http.StatusOK, newEmployeeResponse(e))
}

func (s *Server) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	var req EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	e, err := req.toEmployee(employeeID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee record", err)
		return
	}

	if err := employee.Validate(e); err != nil {
		respondError(w, http.StatusBadRequest, "invalid employee record", err)
		return
	}

	if err := s.store.Update(e); err != nil {
		respondError(w, http.StatusNotFound, "employee not found", err)
		return
	}

	respondJSON(w, http.StatusOK, newEmployeeResponse(e))
}

func (s *Server) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	if err := s.store.Delete(employeeID); err != nil {
		respondError(w, http.StatusNotFound, "employee not found", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEmployeeEligibility(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	e, err := s.store.Get(employeeID)
	if err != nil {
		respondError(w, http.StatusNotFound, "employee not found", err)
		return
	}

	candidate := e.Candidate()

	var results []*engine.EvaluationResult
	if policyID := r.URL.Query().Get("policy"); policyID != "" {
		result, err := s.eng.Evaluate(policyID, candidate)
		if err != nil {
			respondError(w, http.StatusNotFound, "policy not found", err)
			return
		}
		results = []*engine.EvaluationResult{result}
	} else {
		results = s.eng.EvaluateAll(candidate)
	}

	responses := make([]EvaluationResponse, 0, len(results))
	for _, result := range results {
		responses = append(responses, newEvaluationResponse(result))
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"employeeId":   e.ID,
		"employeeName": e.Name,
		"results":      responses,
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]string{
		"error": message,
	}
	if err != nil {
		response["details"] = err.Error()
	}
	respondJSON(w, status, response)
}

func errMalformed(field, value string) error {
	return fmt.Errorf("field %q: malformed value %q", field, value)
}

func main() {
	log := logger.Setup()

	server, err := NewServer(os.Getenv("DATABASE_URL"), log)
	if err != nil {
		log.Error("failed to create server", "error", err)
		os.Exit(1)
	}
	if server.db != nil {
		defer server.db.Close()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
	}

	log.Info("server stopped")
}
