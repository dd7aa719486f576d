package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
)

type teamRequest struct {
	Team string `json:"team"`
}

type toggleRequest struct {
	PositionID string `json:"position_id"`
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// GetPositions returns the pitch slots of the formation
func (h *Handler) GetPositions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"formation":     scout.Formation,
		"max_selection": scout.MaxSelection,
		"positions":     scout.Positions(),
	})
}

// GetScoutTeams lists the clubs with a known roster
func (h *Handler) GetScoutTeams(w http.ResponseWriter, r *http.Request) {
	teams := scout.TeamNames()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
		"count": len(teams),
	})
}

// GetLineup returns a team's full lineup and its aggregate without
// touching any session
func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	team := strings.TrimSpace(chi.URLParam(r, "team"))
	if team == "" {
		h.respondError(w, http.StatusBadRequest, "team is required", nil)
		return
	}

	roster, known := h.Rosters.RosterFor(ctx, team)
	var sel scout.Selection
	sel.LoadTeam(roster)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team":       team,
		"known_team": known,
		"formation":  scout.Formation,
		"lineup":     scout.Lineup(roster),
		"aggregate":  scout.Aggregate(sel.Entries()),
	})
}

// CreateSession opens a scouting session, optionally naming its team
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req teamRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	snap := h.Store.Create(r.Context(), strings.TrimSpace(req.Team))
	respondJSON(w, http.StatusCreated, snap.View())
}

// GetSession returns a session with its selection and aggregate
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.Store.Get(id)
	if err != nil {
		h.respondFailure(w, "failed to retrieve session", err)
		return
	}
	respondJSON(w, http.StatusOK, snap.View())
}

// DeleteSession ends a session
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		h.respondFailure(w, "failed to delete session", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ToggleSelection adds or removes a pitch slot from the selection
func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req toggleRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.PositionID == "" {
		h.respondError(w, http.StatusBadRequest, "position_id is required", nil)
		return
	}

	snap, added, err := h.Store.Toggle(r.Context(), id, req.PositionID)
	if err != nil {
		h.respondFailure(w, "failed to toggle selection", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session": snap.View(),
		"added":   added,
	})
}

// ClearSelection empties the selection
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.Store.Clear(r.Context(), id)
	if err != nil {
		h.respondFailure(w, "failed to clear selection", err)
		return
	}
	respondJSON(w, http.StatusOK, snap.View())
}

// LoadTeam replaces the selection with a team's full lineup
func (h *Handler) LoadTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req teamRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	team := strings.TrimSpace(req.Team)
	if team == "" {
		h.respondError(w, http.StatusBadRequest, "team is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	snap, known, err := h.Store.LoadTeam(ctx, id, team)
	if err != nil {
		h.respondFailure(w, "failed to load team", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"session":    snap.View(),
		"known_team": known,
	})
}

// SetNotes replaces the session's scouting notes
func (h *Handler) SetNotes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req notesRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	snap, err := h.Store.SetNotes(r.Context(), id, req.Notes)
	if err != nil {
		h.respondFailure(w, "failed to update notes", err)
		return
	}
	respondJSON(w, http.StatusOK, snap.View())
}

// GetAggregate returns the aggregate metrics of the selection
func (h *Handler) GetAggregate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.Store.Get(id)
	if err != nil {
		h.respondFailure(w, "failed to retrieve session", err)
		return
	}
	respondJSON(w, http.StatusOK, snap.Report)
}

// DownloadReport returns the session's scouting report as a JSON attachment
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	snap, err := h.Store.Get(id)
	if err != nil {
		h.respondFailure(w, "failed to retrieve session", err)
		return
	}

	now := time.Now()
	data, err := json.MarshalIndent(scout.BuildReport(snap, now), "", "  ")
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "failed to encode report", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+scout.ReportFilename(now)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// sessionID parses the {id} route parameter, answering 400 when invalid
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid session id", err)
		return uuid.Nil, false
	}
	return id, true
}
