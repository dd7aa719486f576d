package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/dedup"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/feed"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/hub"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/ratelimit"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping calls f(ctx)
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Deps holds the components served over HTTP
type Deps struct {
	Store    *scout.Store
	Rosters  scout.RosterSource
	Feed     *feed.Service
	Hub      *hub.Hub
	Football *upstream.Client

	// Checks are pinged by the health endpoint, keyed by dependency name
	Checks map[string]Pinger
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Deps
	ctx    context.Context
	logger *logrus.Entry
}

// NewHandler creates a new handler. ctx bounds the lifetime of WebSocket
// connections.
func NewHandler(ctx context.Context, deps Deps, logger *logrus.Entry) *Handler {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	if deps.Rosters == nil {
		deps.Rosters = scout.StaticRosters{}
	}
	return &Handler{
		Deps:   deps,
		ctx:    ctx,
		logger: logger.WithField("component", "handlers"),
	}
}

// Register mounts every route on r
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HealthCheck)
	r.Get("/ws", h.HandleWebSocket)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.HealthCheck)
		r.Get("/metrics", h.Metrics)
		r.Get("/ws", h.HandleWebSocket)

		// Scout
		r.Route("/scout", func(r chi.Router) {
			r.Get("/positions", h.GetPositions)
			r.Get("/teams", h.GetScoutTeams)
			r.Get("/lineups/{team}", h.GetLineup)

			r.Post("/sessions", h.CreateSession)
			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", h.GetSession)
				r.Delete("/", h.DeleteSession)
				r.Post("/toggle", h.ToggleSelection)
				r.Post("/clear", h.ClearSelection)
				r.Post("/team", h.LoadTeam)
				r.Put("/notes", h.SetNotes)
				r.Get("/aggregate", h.GetAggregate)
				r.Get("/report", h.DownloadReport)
			})
		})

		// Pages
		r.Get("/pages/home", h.GetHomePage)
		r.Get("/pages/posts", h.GetPostsPage)
		r.Get("/pages/posts/{slug}", h.GetPostPage)
		r.Get("/pages/matches", h.GetMatchesPage)
		r.Get("/pages/matches/{id}", h.GetMatchPage)
		r.Get("/pages/predictions", h.GetPredictionsPage)
		r.Get("/pages/teams", h.GetTeamsPage)
		r.Get("/pages/profile", h.GetProfilePage)

		// Writes
		r.Post("/predictions", h.CreatePrediction)
		r.Post("/posts", h.CreatePost)
		r.Put("/posts/{slug}", h.UpdatePost)
		r.Post("/posts/{slug}/like", h.LikePost)
		r.Post("/posts/{slug}/comments", h.AddComment)
		r.Post("/matches/sync", h.SyncMatches)

		// Football backend passthrough
		r.HandleFunc("/football/*", h.ProxyFootball)
	})
}

// HealthCheck returns the health status of the gateway and its dependencies
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "healthy"
	checks := make(map[string]string, len(h.Checks))
	for name, p := range h.Checks {
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
			status = "degraded"
			continue
		}
		checks[name] = "ok"
	}

	body := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC(),
		"service":   "scout-gateway",
		"checks":    checks,
	}
	if h.Store != nil {
		body["sessions"] = h.Store.Len()
	}
	if h.Hub != nil {
		body["active_clients"] = h.Hub.GetClientCount()
	}

	// Every dependency has a fallback, so a degraded gateway still serves
	respondJSON(w, http.StatusOK, body)
}

// Metrics returns hub metrics
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{}
	if h.Hub != nil {
		body["hub"] = h.Hub.GetMetrics()
	}
	if h.Store != nil {
		body["sessions"] = h.Store.Len()
	}
	respondJSON(w, http.StatusOK, body)
}

// Helper functions

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func decodeBody(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.WithError(err).Warn("error encoding response")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errResp := models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}

	if err != nil {
		entry := h.logger.WithFields(logrus.Fields{"status": status, "error": err})
		if status >= 500 {
			entry.Error(message)
		} else {
			entry.Debug(message)
		}
	}

	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		h.logger.WithError(err).Warn("error encoding error response")
	}
}

// respondFailure maps a domain error to its HTTP status
func (h *Handler) respondFailure(w http.ResponseWriter, message string, err error) {
	var validation *feed.ValidationError
	var upstreamErr *upstream.HTTPError

	switch {
	case errors.Is(err, scout.ErrSessionNotFound):
		h.respondError(w, http.StatusNotFound, "session not found", err)
	case errors.Is(err, feed.ErrPostNotFound):
		h.respondError(w, http.StatusNotFound, "post not found", err)
	case errors.Is(err, feed.ErrMatchNotFound):
		h.respondError(w, http.StatusNotFound, "match not found", err)
	case errors.Is(err, scout.ErrUnknownPosition):
		h.respondError(w, http.StatusBadRequest, "unknown position", err)
	case errors.As(err, &validation):
		h.respondError(w, http.StatusBadRequest, validation.Error(), err)
	case errors.Is(err, dedup.ErrDuplicatePrediction):
		h.respondError(w, http.StatusConflict, "prediction already submitted", err)
	case errors.Is(err, ratelimit.ErrRateLimited):
		w.Header().Set("Retry-After", "60")
		h.respondError(w, http.StatusTooManyRequests, "too many requests", err)
	case errors.As(err, &upstreamErr):
		status := http.StatusBadGateway
		if upstreamErr.StatusCode >= 400 && upstreamErr.StatusCode < 500 {
			status = upstreamErr.StatusCode
		}
		h.respondError(w, status, message, err)
	default:
		h.respondError(w, http.StatusBadGateway, message, err)
	}
}
