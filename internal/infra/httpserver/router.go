package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/bryanwahyu/song-critic/internal/application/analyses"
	"github.com/bryanwahyu/song-critic/internal/application/sessions"
	domain "github.com/bryanwahyu/song-critic/internal/domain/analysis"
	"github.com/bryanwahyu/song-critic/internal/middleware"
)

type Router struct {
	analysesSvc *analyses.Service
	sessionsSvc *sessions.Service
}

func NewRouter(analysesSvc *analyses.Service, sessionsSvc *sessions.Service, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{analysesSvc: analysesSvc, sessionsSvc: sessionsSvc}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyses", r.wrap(r.handleAnalyze))
		rt.Get("/analyses", r.wrap(r.handleHistory))
		rt.Get("/analyses/example", r.wrap(r.handleExample))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Post("/analyses/{id}/export", r.wrap(r.handleExport))

		rt.Post("/sessions", r.wrap(r.handleSessionCreate))
		rt.Get("/sessions/{sid}", r.wrap(r.handleSessionSnapshot))
		rt.Post("/sessions/{sid}/analyze", r.wrap(r.handleSessionAnalyze))
		rt.Post("/sessions/{sid}/example", r.wrap(r.handleSessionExample))
		rt.Post("/sessions/{sid}/reset", r.wrap(r.handleSessionReset))
		rt.Post("/sessions/{sid}/select", r.wrap(r.handleSessionSelect))
		rt.Post("/sessions/{sid}/toggle", r.wrap(r.handleSessionToggle))
		rt.Post("/sessions/{sid}/compare", r.wrap(r.handleSessionCompare))
		rt.Post("/sessions/{sid}/clear-selection", r.wrap(r.handleSessionClearSelection))
		rt.Post("/sessions/{sid}/export", r.wrap(r.handleSessionExport))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			http.Error(w, err.Error(), statusFor(err))
		}
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrSafetyBlocked):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrInvalidAnalysis):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

//
// ==== ANALYSES ====
//

// POST /v1/analyses
// Body: {"title": "...", "lyrics": "...", "music_description": "...", "genre": "..."}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body domain.Request
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	middleware.IncrementAnalyses()
	owner := middleware.GetOwner(req.Context())
	res, err := r.analysesSvc.Analyze(req.Context(), owner, body)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	return writeJSON(w, http.StatusOK, res)
}

// GET /v1/analyses
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	if !r.analysesSvc.HistoryEnabled() {
		return writeJSON(w, http.StatusOK, map[string]any{
			"enabled": false,
			"items":   []*domain.Result{},
		})
	}

	owner := middleware.GetOwner(req.Context())
	if owner == "" {
		http.Error(w, "history requires an API key", http.StatusUnauthorized)
		return nil
	}

	items, err := r.analysesSvc.History(req.Context(), owner)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*domain.Result{}
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"enabled": true,
		"items":   items,
	})
}

// GET /v1/analyses/example
func (r *Router) handleExample(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, r.analysesSvc.Example())
}

// GET /v1/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	owner := middleware.GetOwner(req.Context())
	if owner == "" {
		http.Error(w, "history requires an API key", http.StatusUnauthorized)
		return nil
	}

	res, err := r.analysesSvc.Get(req.Context(), owner, chi.URLParam(req, "id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, res)
}

// POST /v1/analyses/{id}/export
// Body: {"format": "text" | "markdown" | "json"}
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	owner := middleware.GetOwner(req.Context())
	if owner == "" {
		http.Error(w, "history requires an API key", http.StatusUnauthorized)
		return nil
	}

	var body struct {
		Format string `json:"format"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	art, err := r.analysesSvc.Export(req.Context(), owner, chi.URLParam(req, "id"), body.Format)
	if err != nil {
		return err
	}
	middleware.IncrementExports()
	return serveArtifact(w, art)
}

// serveArtifact answers with the upload URL when the artifact store took the
// file, otherwise streams the document inline as a download.
func serveArtifact(w http.ResponseWriter, art *analyses.Artifact) error {
	if art.URL != "" {
		return writeJSON(w, http.StatusOK, art)
	}
	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.FileName))
	_, err := w.Write(art.Data)
	return err
}

//
// ==== SESSIONS ====
//

// POST /v1/sessions
func (r *Router) handleSessionCreate(w http.ResponseWriter, req *http.Request) error {
	owner := middleware.GetOwner(req.Context())
	id := r.sessionsSvc.Create(owner)
	return writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// GET /v1/sessions/{sid}
func (r *Router) handleSessionSnapshot(w http.ResponseWriter, req *http.Request) error {
	v, err := r.sessionsSvc.Snapshot(chi.URLParam(req, "sid"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, v)
}

// POST /v1/sessions/{sid}/analyze
// Failure still renders the session view: the machine lands back on the input
// state with the message attached, and the status code reflects the cause.
func (r *Router) handleSessionAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body domain.Request
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	middleware.IncrementAnalyses()
	v, err := r.sessionsSvc.Submit(req.Context(), chi.URLParam(req, "sid"), body)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		middleware.IncrementAnalysesFailed()
		return writeJSON(w, statusFor(err), v)
	}
	return writeJSON(w, http.StatusOK, v)
}

// POST /v1/sessions/{sid}/example
func (r *Router) handleSessionExample(w http.ResponseWriter, req *http.Request) error {
	v, err := r.sessionsSvc.ShowExample(chi.URLParam(req, "sid"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, v)
}

// POST /v1/sessions/{sid}/reset
func (r *Router) handleSessionReset(w http.ResponseWriter, req *http.Request) error {
	v, err := r.sessionsSvc.Reset(chi.URLParam(req, "sid"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, v)
}

// POST /v1/sessions/{sid}/select
// Body: {"id": "<analysis id>"}
func (r *Router) handleSessionSelect(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	v, err := r.sessionsSvc.Select(req.Context(), chi.URLParam(req, "sid"), body.ID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, v)
}

// POST /v1/sessions/{sid}/toggle
// Body: {"id": "<analysis id>"}
func (r *Router) handleSessionToggle(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	v, err := r.sessionsSvc.Toggle(chi.URLParam(req, "sid"), body.ID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, v)
}

// POST /v1/sessions/{sid}/compare
func (r *Router) handleSessionCompare(w http.ResponseWriter, req *http.Request) error {
	v, err := r.sessionsSvc.Compare(req.Context(), chi.URLParam(req, "sid"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, v)
}

// POST /v1/sessions/{sid}/clear-selection
func (r *Router) handleSessionClearSelection(w http.ResponseWriter, req *http.Request) error {
	v, err := r.sessionsSvc.ClearSelection(chi.URLParam(req, "sid"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, v)
}

// POST /v1/sessions/{sid}/export
// Body: {"format": "text" | "markdown" | "json"}
func (r *Router) handleSessionExport(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Format string `json:"format"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	art, err := r.sessionsSvc.Export(req.Context(), chi.URLParam(req, "sid"), body.Format)
	if err != nil {
		return err
	}
	middleware.IncrementExports()
	return serveArtifact(w, art)
}
