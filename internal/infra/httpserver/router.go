package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apptasks "github.com/adiwahyudi/board-api/internal/application/tasks"
	domain "github.com/adiwahyudi/board-api/internal/domain/tasks"
	"github.com/adiwahyudi/board-api/internal/middleware"
	"github.com/adiwahyudi/board-api/internal/telemetry"
)

type Router struct {
	tasksSvc    *apptasks.Service
	interceptor *telemetry.Interceptor
}

// NewRouter wires the middleware chain and the task CRUD routes. Every
// unhandled handler error funnels through the failure interceptor.
func NewRouter(
	tasksSvc *apptasks.Service,
	interceptor *telemetry.Interceptor,
	resolver *telemetry.Resolver,
	checkers map[string]middleware.HealthChecker,
	logger *slog.Logger,
) http.Handler {
	r := &Router{tasksSvc: tasksSvc, interceptor: interceptor}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "x-board-id"},
	}))
	mux.Use(middleware.Logging(logger))
	mux.Use(middleware.Metrics)
	mux.Use(middleware.RateLimitMiddleware(100, 50, func(req *http.Request) string {
		if id, ok := resolver.Resolve(req); ok {
			return id
		}
		return req.RemoteAddr
	}))
	mux.Use(interceptor.Middleware)

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/v1/boards/{boardId}/tasks", func(rt chi.Router) {
		rt.Get("/", r.wrap(r.handleList))
		rt.Post("/", r.wrap(r.handleCreate))
		rt.Get("/{id}", r.wrap(r.handleGet))
		rt.Put("/{id}", r.wrap(r.handleUpdate))
		rt.Delete("/{id}", r.wrap(r.handleDelete))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps domain misses locally and hands everything else to the
// failure interceptor, the single funnel for unhandled errors.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error":   http.StatusText(http.StatusNotFound),
				"message": err.Error(),
			})
			return
		}
		r.interceptor.HandleRequestFailure(w, req, err)
	}
}

// GET /v1/boards/{boardId}/tasks?limit=20
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	board := chi.URLParam(req, "boardId")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.tasksSvc.List(req.Context(), board, limit)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Task{}
	}
	writeJSON(w, http.StatusOK, list)
	return nil
}

// POST /v1/boards/{boardId}/tasks
func (r *Router) handleCreate(w http.ResponseWriter, req *http.Request) error {
	board := chi.URLParam(req, "boardId")

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}

	t, err := r.tasksSvc.Create(req.Context(), apptasks.CreateTaskCommand{
		BoardID:     board,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, t)
	return nil
}

// GET /v1/boards/{boardId}/tasks/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	board := chi.URLParam(req, "boardId")
	id := chi.URLParam(req, "id")

	t, err := r.tasksSvc.Get(req.Context(), board, domain.TaskID(id))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, t)
	return nil
}

// PUT /v1/boards/{boardId}/tasks/{id}
func (r *Router) handleUpdate(w http.ResponseWriter, req *http.Request) error {
	board := chi.URLParam(req, "boardId")
	id := chi.URLParam(req, "id")

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}

	t, err := r.tasksSvc.Update(req.Context(), apptasks.UpdateTaskCommand{
		BoardID:     board,
		ID:          id,
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
	})
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, t)
	return nil
}

// DELETE /v1/boards/{boardId}/tasks/{id}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	board := chi.URLParam(req, "boardId")
	id := chi.URLParam(req, "id")

	if err := r.tasksSvc.Delete(req.Context(), board, domain.TaskID(id)); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
