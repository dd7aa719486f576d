package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/dedup"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/feed"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/ratelimit"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// fakeBackend serves a small subset of the football API
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/api/matches/upcoming/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":7,"home_team":"Flamengo","away_team":"Vasco","competition":"Brasileirão","match_date":"2025-11-20","match_time":"16:00:00","status":"scheduled"}]`)
	})
	mux.HandleFunc("/api/stats/ranking/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/predictions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			fmt.Fprint(w, `[{"id":1,"match":7,"prediction":"home"},{"id":2,"match":7,"prediction":"draw"},{"id":3,"match":8,"prediction":"home"}]`)
			return
		}
		var in models.PredictionInput
		json.NewDecoder(r.Body).Decode(&in)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Prediction{
			ID:         1,
			UserName:   in.UserName,
			UserEmail:  in.UserEmail,
			Match:      in.Match,
			Prediction: in.Prediction,
			Confidence: in.Confidence,
		})
	})
	mux.HandleFunc("/api/matches/sync_from_api/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"ok","created":2,"updated":1,"total":3}`)
	})
	mux.HandleFunc("/api/matches/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/matches/" {
			fmt.Fprint(w, `{"results":[{"id":7,"home_team":"Flamengo","away_team":"Vasco","match_time":"16:00:00"},{"id":8,"home_team":"Grêmio","away_team":"Bahia","match_time":"19:30:00"}]}`)
			return
		}
		if r.URL.Path != "/api/matches/7/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"id":7,"home_team":"Flamengo","away_team":"Vasco","match_date":"2025-11-20","match_time":"16:00:00","status":"finished","home_score":2,"away_score":0}`)
	})
	mux.HandleFunc("/api/posts/", func(w http.ResponseWriter, r *http.Request) {
		var in models.PostInput
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/posts/create/":
			json.NewDecoder(r.Body).Decode(&in)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.PostDetail{Post: models.Post{ID: 4, Title: in.Title, Slug: in.Slug}, Content: in.Content})
		case r.Method == http.MethodPut && r.URL.Path == "/api/posts/analise/update/":
			json.NewDecoder(r.Body).Decode(&in)
			json.NewEncoder(w).Encode(models.PostDetail{Post: models.Post{ID: 4, Title: in.Title, Slug: "analise"}, Content: in.Content})
		case r.Method == http.MethodGet && r.URL.Path == "/api/posts/analise/":
			fmt.Fprint(w, `{"id":4,"title":"Análise","slug":"analise","content":"texto","comments":[{"id":1,"author_name":"Ana","content":"Boa"}]}`)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/echo/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo-Method", r.Method)
		w.WriteHeader(http.StatusTeapot)
		fmt.Fprintf(w, "%s?%s|%s", r.URL.Path, r.URL.RawQuery, r.Header.Get("X-Scout"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestRouter(t *testing.T, checks map[string]Pinger) http.Handler {
	t.Helper()
	backend := fakeBackend(t)
	client := upstream.New(backend.URL+"/api", 5*time.Second, nil, quietLogger())

	h := NewHandler(context.Background(), Deps{
		Store:    scout.NewStore(nil, nil, 0, quietLogger()),
		Feed:     feed.NewService(client, nil, nil, nil, quietLogger()),
		Football: client,
		Checks:   checks,
	}, quietLogger())

	r := chi.NewRouter()
	h.Register(r)
	return r
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return v
}

type toggleResponse struct {
	Session models.ScoutSession `json:"session"`
	Added   bool                `json:"added"`
}

type lineupResponse struct {
	KnownTeam bool                 `json:"known_team"`
	Lineup    []models.LineupEntry `json:"lineup"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type teamResponse struct {
	Session   models.ScoutSession `json:"session"`
	KnownTeam bool                `json:"known_team"`
}

func TestScoutSessionFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/api/v1/scout/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	session := decode[models.ScoutSession](t, rec)
	base := "/api/v1/scout/sessions/" + session.ID

	rec = do(t, r, http.MethodPost, base+"/toggle", `{"position_id":"GK"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	toggled := decode[toggleResponse](t, rec)
	if !toggled.Added || len(toggled.Session.Selected) != 1 {
		t.Fatalf("expected GK added, got %+v", toggled)
	}
	if toggled.Session.Selected[0].PositionID != "GK" {
		t.Errorf("expected entry id GK, got %s", toggled.Session.Selected[0].PositionID)
	}
	if toggled.Session.Report.Count != 1 {
		t.Errorf("expected aggregate count 1, got %d", toggled.Session.Report.Count)
	}

	rec = do(t, r, http.MethodPost, base+"/toggle", `{"position_id":"XX"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown position: expected 400, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodPost, base+"/team", `{"team":"Flamengo"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("load team: expected 200, got %d", rec.Code)
	}
	loaded := decode[teamResponse](t, rec)
	if !loaded.KnownTeam || len(loaded.Session.Selected) != scout.MaxSelection {
		t.Fatalf("expected full known lineup, got known=%v len=%d", loaded.KnownTeam, len(loaded.Session.Selected))
	}
	if loaded.Session.Selected[0].Name != "Rossi" {
		t.Errorf("expected Rossi in goal, got %s", loaded.Session.Selected[0].Name)
	}

	rec = do(t, r, http.MethodPut, base+"/notes", `{"notes":"pressão alta"}`)
	if got := decode[models.ScoutSession](t, rec); got.Notes != "pressão alta" {
		t.Errorf("expected notes to be saved, got %q", got.Notes)
	}

	rec = do(t, r, http.MethodGet, base+"/aggregate", "")
	if agg := decode[models.AggregateReport](t, rec); agg.Count != scout.MaxSelection {
		t.Errorf("expected aggregate of %d players, got %d", scout.MaxSelection, agg.Count)
	}

	rec = do(t, r, http.MethodGet, base+"/report", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("report: expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment; filename=\"scout-report-") {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	report := decode[models.ScoutReport](t, rec)
	if report.Formation != scout.Formation || report.Notes != "pressão alta" {
		t.Errorf("unexpected report: %+v", report)
	}

	rec = do(t, r, http.MethodPost, base+"/clear", "")
	if got := decode[models.ScoutSession](t, rec); len(got.Selected) != 0 || got.Report.Count != 0 {
		t.Errorf("expected empty selection after clear, got %d", len(got.Selected))
	}

	if rec := do(t, r, http.MethodDelete, base, ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", rec.Code)
	}
	if rec := do(t, r, http.MethodGet, base, ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", rec.Code)
	}
}

func TestScoutSession_InvalidID(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/api/v1/scout/sessions/not-a-uuid", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	resp := decode[models.ErrorResponse](t, rec)
	if resp.Code != http.StatusBadRequest || resp.Message != "invalid session id" {
		t.Errorf("unexpected error response: %+v", resp)
	}
}

func TestGetLineup(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		team  string
		known bool
		first string
	}{
		{"Flamengo", true, "Rossi"},
		{"Time%20Desconhecido", false, "Jogador #001"},
	}

	for _, tt := range tests {
		t.Run(tt.team, func(t *testing.T) {
			rec := do(t, r, http.MethodGet, "/api/v1/scout/lineups/"+tt.team, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			body := decode[lineupResponse](t, rec)

			if body.KnownTeam != tt.known {
				t.Errorf("expected known_team %v, got %v", tt.known, body.KnownTeam)
			}
			if len(body.Lineup) != scout.MaxSelection {
				t.Fatalf("expected %d lineup entries, got %d", scout.MaxSelection, len(body.Lineup))
			}
			if body.Lineup[0].Name != tt.first {
				t.Errorf("expected %s first, got %s", tt.first, body.Lineup[0].Name)
			}
		})
	}
}

func TestGetPositions(t *testing.T) {
	r := newTestRouter(t, nil)

	var body struct {
		Formation string            `json:"formation"`
		Positions []models.Position `json:"positions"`
	}
	rec := do(t, r, http.MethodGet, "/api/v1/scout/positions", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Formation != "4-3-3" || len(body.Positions) != scout.MaxSelection {
		t.Errorf("unexpected positions response: %+v", body)
	}
}

func TestPredictionsPage_PartialFallback(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/api/v1/pages/predictions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	page := decode[models.PredictionsPage](t, rec)
	if page.MatchesFallback {
		t.Error("matches should come from the backend")
	}
	if !page.RankingFallback {
		t.Error("ranking should fall back when the backend fails")
	}
	if len(page.Matches) != 1 || page.Matches[0].Time != "16:00" {
		t.Errorf("unexpected matches: %+v", page.Matches)
	}
}

func TestCreatePrediction(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/api/v1/predictions", `{"user_name":"Ana","user_email":"ANA@example.com","match":7,"prediction":"Home"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	p := decode[models.Prediction](t, rec)
	if p.UserEmail != "ana@example.com" || p.Prediction != models.OutcomeHome || p.Confidence != 3 {
		t.Errorf("expected normalized prediction, got %+v", p)
	}

	rec = do(t, r, http.MethodPost, "/api/v1/predictions", `{"user_name":"Ana","user_email":"nope","match":7,"prediction":"home"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid email: expected 400, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodPost, "/api/v1/predictions", `{`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", rec.Code)
	}
}

func TestSyncMatches(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/api/v1/matches/sync", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if res := decode[models.SyncResult](t, rec); res.Total != 3 {
		t.Errorf("expected total 3, got %d", res.Total)
	}
}

func TestGetProfilePage_RequiresEmail(t *testing.T) {
	r := newTestRouter(t, nil)

	if rec := do(t, r, http.MethodGet, "/api/v1/pages/profile", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestProxyFootball(t *testing.T) {
	r := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/football/echo/?limit=5", nil)
	req.Header.Set("X-Scout", "yes")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected upstream status to pass through, got %d", rec.Code)
	}
	if rec.Header().Get("X-Echo-Method") != http.MethodPost {
		t.Errorf("expected response headers to be copied, got %v", rec.Header())
	}
	if got := rec.Body.String(); got != "/api/echo/?limit=5|yes" {
		t.Errorf("unexpected proxied body: %s", got)
	}
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, map[string]Pinger{
		"redis":    PingFunc(func(context.Context) error { return nil }),
		"postgres": PingFunc(func(context.Context) error { return errors.New("connection refused") }),
	})

	rec := do(t, r, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decode[healthResponse](t, rec)

	if body.Status != "degraded" {
		t.Errorf("expected degraded, got %s", body.Status)
	}
	if body.Checks["redis"] != "ok" || body.Checks["postgres"] != "connection refused" {
		t.Errorf("unexpected checks: %v", body.Checks)
	}
}

func TestRespondFailure(t *testing.T) {
	h := NewHandler(context.Background(), Deps{}, quietLogger())

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"session not found", scout.ErrSessionNotFound, http.StatusNotFound},
		{"unknown position", scout.ErrUnknownPosition, http.StatusBadRequest},
		{"validation", &feed.ValidationError{Field: "email", Message: "invalid"}, http.StatusBadRequest},
		{"duplicate", fmt.Errorf("claim: %w", dedup.ErrDuplicatePrediction), http.StatusConflict},
		{"rate limited", ratelimit.ErrRateLimited, http.StatusTooManyRequests},
		{"backend 404 passes through", &upstream.HTTPError{StatusCode: 404}, http.StatusNotFound},
		{"backend 500 is bad gateway", fmt.Errorf("x: %w", &upstream.HTTPError{StatusCode: 500}), http.StatusBadGateway},
		{"connection failure", errors.New("making request: dial tcp"), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.respondFailure(rec, "failed", tt.err)
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rec.Code)
			}
			if resp := decode[models.ErrorResponse](t, rec); resp.Code != tt.status {
				t.Errorf("expected body code %d, got %d", tt.status, resp.Code)
			}
		})
	}
}

func TestResourcePrefix(t *testing.T) {
	tests := map[string]string{
		"/posts/abc/like/": "/posts/",
		"/predictions/":    "/predictions/",
		"/matches":         "/matches/",
		"/stats/ranking/":  "/stats/",
	}
	for in, want := range tests {
		if got := resourcePrefix(in); got != want {
			t.Errorf("resourcePrefix(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMatchPages(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/api/v1/pages/matches", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	list := decode[models.MatchesPage](t, rec)
	if list.Fallback || list.Total != 2 || list.Matches[1].Time != "19:30" {
		t.Errorf("unexpected matches page: %+v", list)
	}

	rec = do(t, r, http.MethodGet, "/api/v1/pages/matches/7", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	page := decode[models.MatchPage](t, rec)
	if page.Fallback || page.PredictionsFallback {
		t.Error("expected live match data")
	}
	if page.Result != models.OutcomeHome || page.Predictions != 2 || page.Split["draw"] != 1 {
		t.Errorf("unexpected match page: %+v", page)
	}

	tests := []struct {
		path string
		code int
	}{
		{"/api/v1/pages/matches/abc", http.StatusBadRequest},
		{"/api/v1/pages/matches/0", http.StatusBadRequest},
		{"/api/v1/pages/matches/404", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := do(t, r, http.MethodGet, tt.path, ""); rec.Code != tt.code {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.code, rec.Code)
		}
	}
}

func TestPostPages(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodGet, "/api/v1/pages/posts/analise", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	page := decode[models.PostPage](t, rec)
	if page.Fallback || page.Post.Content != "texto" || len(page.Post.Comments) != 1 {
		t.Errorf("unexpected post page: %+v", page)
	}

	if rec := do(t, r, http.MethodGet, "/api/v1/pages/posts/missing", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing post: expected 404, got %d", rec.Code)
	}
}

func TestPostWrites(t *testing.T) {
	r := newTestRouter(t, nil)

	rec := do(t, r, http.MethodPost, "/api/v1/posts", `{"title":" Nova análise ","slug":"nova","content":"texto"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if post := decode[models.PostDetail](t, rec); post.Title != "Nova análise" || post.Slug != "nova" {
		t.Errorf("unexpected created post: %+v", post)
	}

	rec = do(t, r, http.MethodPost, "/api/v1/posts", `{"title":"sem corpo"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid post: expected 400, got %d", rec.Code)
	}

	rec = do(t, r, http.MethodPut, "/api/v1/posts/analise", `{"title":"Editada","content":"novo texto"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if post := decode[models.PostDetail](t, rec); post.Title != "Editada" || post.Slug != "analise" {
		t.Errorf("unexpected updated post: %+v", post)
	}

	rec = do(t, r, http.MethodPut, "/api/v1/posts/missing", `{"title":"x","content":"y"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing post: expected 404, got %d", rec.Code)
	}
}
