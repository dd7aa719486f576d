package feed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/fallback"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/feed"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

var errNotFound = &upstream.HTTPError{StatusCode: 404, Method: "GET", Path: "/"}

func TestMatchesPage(t *testing.T) {
	live := &MockBackend{matches: []models.Match{
		{ID: 7, HomeTeam: "Bahia", AwayTeam: "Vitória", MatchTime: "16:00:00", Status: "scheduled"},
		{ID: 8, HomeTeam: "Santos", AwayTeam: "Vasco", MatchTime: "18:30:00", Status: "finished"},
	}}
	page := feed.NewService(live, nil, nil, nil, quietLogger()).MatchesPage(context.Background())
	if page.Fallback || page.Total != 2 || page.Matches[1].Time != "18:30" {
		t.Errorf("unexpected live page %+v", page)
	}

	down := feed.NewService(&MockBackend{matchesErr: errDown}, nil, nil, nil, quietLogger()).MatchesPage(context.Background())
	if !down.Fallback || down.Total != len(fallback.UpcomingMatches()) {
		t.Errorf("expected placeholder matches, got %+v", down)
	}
}

func TestMatchPage(t *testing.T) {
	backend := &MockBackend{
		match: models.Match{ID: 7, HomeTeam: "Bahia", AwayTeam: "Vitória", MatchTime: "16:00:00", Status: "finished", HomeScore: intPtr(1), AwayScore: intPtr(3)},
		allPreds: []models.Prediction{
			{Match: 7, Prediction: "home"},
			{Match: 7, Prediction: "away"},
			{Match: 7, Prediction: "away"},
			{Match: 8, Prediction: "draw"},
			{Match: 7, Prediction: "bogus"},
		},
	}

	page, err := feed.NewService(backend, nil, nil, nil, quietLogger()).MatchPage(context.Background(), 7)
	if err != nil {
		t.Fatalf("MatchPage() error = %v", err)
	}
	if page.Fallback || page.PredictionsFallback {
		t.Error("expected live data")
	}
	if page.Match.HomeTeam != "Bahia" || page.Match.Time != "16:00" || page.Result != models.OutcomeAway {
		t.Errorf("unexpected match %+v result %s", page.Match, page.Result)
	}
	if page.Predictions != 3 || page.Split["home"] != 1 || page.Split["away"] != 2 || page.Split["draw"] != 0 {
		t.Errorf("unexpected split %d %v", page.Predictions, page.Split)
	}
}

func TestMatchPage_Fallbacks(t *testing.T) {
	tests := []struct {
		name        string
		backend     *MockBackend
		id          int
		wantErr     error
		wantMatch   bool
		wantPredsFB bool
	}{
		{"backend says missing", &MockBackend{matchErr: errNotFound}, 1, feed.ErrMatchNotFound, false, false},
		{"backend down, placeholder has id", &MockBackend{matchErr: errDown, allPredsErr: errDown}, 1, nil, true, true},
		{"backend down, unknown id", &MockBackend{matchErr: errDown}, 99, feed.ErrMatchNotFound, false, false},
		{"predictions down only", &MockBackend{match: models.Match{ID: 3}, allPredsErr: errDown}, 3, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := feed.NewService(tt.backend, nil, nil, nil, quietLogger()).MatchPage(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil {
				return
			}
			if page.Fallback != tt.wantMatch {
				t.Errorf("match fallback = %v, want %v", page.Fallback, tt.wantMatch)
			}
			if page.PredictionsFallback != tt.wantPredsFB {
				t.Errorf("predictions fallback = %v, want %v", page.PredictionsFallback, tt.wantPredsFB)
			}
			if page.Predictions != 0 && tt.wantPredsFB {
				t.Errorf("expected no predictions on fallback, got %d", page.Predictions)
			}
		})
	}
}

func TestPostPage(t *testing.T) {
	placeholder := fallback.Posts()[0].Slug

	tests := []struct {
		name         string
		backend      *MockBackend
		slug         string
		wantErr      error
		wantFallback bool
	}{
		{"live", &MockBackend{post: models.PostDetail{Post: models.Post{Slug: "ao-vivo"}, Content: "texto"}}, "ao-vivo", nil, false},
		{"backend says missing", &MockBackend{postErr: errNotFound}, placeholder, feed.ErrPostNotFound, false},
		{"backend down, placeholder slug", &MockBackend{postErr: errDown}, placeholder, nil, true},
		{"backend down, unknown slug", &MockBackend{postErr: errDown}, "nada", feed.ErrPostNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := feed.NewService(tt.backend, nil, nil, nil, quietLogger()).PostPage(context.Background(), tt.slug)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if err != nil {
				return
			}
			if page.Fallback != tt.wantFallback {
				t.Errorf("fallback = %v, want %v", page.Fallback, tt.wantFallback)
			}
			if page.Post.Slug != tt.slug {
				t.Errorf("expected slug %s, got %s", tt.slug, page.Post.Slug)
			}
			if page.Post.Comments == nil {
				t.Error("comments should never be null")
			}
		})
	}
}
