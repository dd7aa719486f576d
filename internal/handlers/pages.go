package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/feed"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// pageTimeout bounds a page build; sections that miss it fall back
const pageTimeout = 20 * time.Second

// GetHomePage returns popular posts, recent posts and categories
func (h *Handler) GetHomePage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.Feed.HomePage(ctx))
}

// GetPostsPage returns one page of posts
// Query params: page, page_size, plus filters forwarded to the backend
// (category, tag, search)
func (h *Handler) GetPostsPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	page := parseIntParam(r, "page", 1)
	size := parseIntParam(r, "page_size", feed.DefaultPageSize)

	query := r.URL.Query()
	query.Del("page")
	query.Del("page_size")

	respondJSON(w, http.StatusOK, h.Feed.PostsPage(ctx, query, page, size))
}

// GetPostPage returns a post with its content and comments
func (h *Handler) GetPostPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	page, err := h.Feed.PostPage(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.respondFailure(w, "failed to load post", err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// GetMatchesPage returns every match
func (h *Handler) GetMatchesPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.Feed.MatchesPage(ctx))
}

// GetMatchPage returns a match with its prediction split
func (h *Handler) GetMatchPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid match id", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	page, err := h.Feed.MatchPage(ctx, id)
	if err != nil {
		h.respondFailure(w, "failed to load match", err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// GetPredictionsPage returns upcoming matches and the ranking
func (h *Handler) GetPredictionsPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.Feed.PredictionsPage(ctx))
}

// GetTeamsPage returns the club list
// Query params: search
func (h *Handler) GetTeamsPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	respondJSON(w, http.StatusOK, h.Feed.TeamsPage(ctx, r.URL.Query().Get("search")))
}

// GetProfilePage returns a user's stats and prediction history
// Query params: email (required)
func (h *Handler) GetProfilePage(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		h.respondError(w, http.StatusBadRequest, "email is required", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	respondJSON(w, http.StatusOK, h.Feed.UserProfile(ctx, email))
}

// CreatePrediction submits a match prediction
func (h *Handler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	var input models.PredictionInput
	if err := decodeBody(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	p, err := h.Feed.SubmitPrediction(ctx, input)
	if err != nil {
		h.respondFailure(w, "failed to submit prediction", err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// CreatePost publishes a post
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if err := decodeBody(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	post, err := h.Feed.CreatePost(ctx, input)
	if err != nil {
		h.respondFailure(w, "failed to create post", err)
		return
	}
	respondJSON(w, http.StatusCreated, post)
}

// UpdatePost edits a post
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var input models.PostInput
	if err := decodeBody(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	post, err := h.Feed.UpdatePost(ctx, chi.URLParam(r, "slug"), input)
	if err != nil {
		h.respondFailure(w, "failed to update post", err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// LikePost likes a post
func (h *Handler) LikePost(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	res, err := h.Feed.LikePost(ctx, chi.URLParam(r, "slug"))
	if err != nil {
		h.respondFailure(w, "failed to like post", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

// AddComment comments on a post
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	var input models.CommentInput
	if err := decodeBody(r, &input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pageTimeout)
	defer cancel()

	c, err := h.Feed.AddComment(ctx, chi.URLParam(r, "slug"), input)
	if err != nil {
		h.respondFailure(w, "failed to add comment", err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// SyncMatches triggers a fixture import on the backend
func (h *Handler) SyncMatches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	res, err := h.Feed.SyncMatches(ctx)
	if err != nil {
		h.respondFailure(w, "failed to sync matches", err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}
