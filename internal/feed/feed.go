package feed

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

const (
	// RankingLimit is the leaderboard size shown on the predictions page
	RankingLimit = 10
	// HighlightLimit caps the popular and recent post lists on the home page
	HighlightLimit = 5
	// DefaultPageSize applies when the posts page size is absent
	DefaultPageSize = 9
	// MaxPageSize caps the posts page size
	MaxPageSize = 50
)

// Backend is the subset of the football API the pages consume
type Backend interface {
	ListPosts(ctx context.Context, query url.Values) ([]models.Post, error)
	PopularPosts(ctx context.Context) ([]models.Post, error)
	RecentPosts(ctx context.Context) ([]models.Post, error)
	Categories(ctx context.Context) ([]models.Category, error)
	LikePost(ctx context.Context, slug string) (models.LikeResult, error)
	AddComment(ctx context.Context, slug string, input models.CommentInput) (models.Comment, error)
	UpcomingMatches(ctx context.Context) ([]models.Match, error)
	SyncMatches(ctx context.Context) (models.SyncResult, error)
	CreatePrediction(ctx context.Context, input models.PredictionInput) (models.Prediction, error)
	MyPredictions(ctx context.Context, email string) ([]models.Prediction, error)
	Ranking(ctx context.Context, limit int) ([]models.UserStats, error)
	UserStats(ctx context.Context, id int) (models.UserStats, error)

	GetPost(ctx context.Context, slug string) (models.PostDetail, error)
	CreatePost(ctx context.Context, input models.PostInput) (models.PostDetail, error)
	UpdatePost(ctx context.Context, slug string, input models.PostInput) (models.PostDetail, error)
	Tags(ctx context.Context) ([]models.Tag, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	GetMatch(ctx context.Context, id int) (models.Match, error)
	ListPredictions(ctx context.Context) ([]models.Prediction, error)
}

var (
	// ErrPostNotFound is returned when neither the backend nor the
	// placeholder data has the requested post
	ErrPostNotFound = errors.New("post not found")
	// ErrMatchNotFound is returned when neither the backend nor the
	// placeholder data has the requested match
	ErrMatchNotFound = errors.New("match not found")
)

// TeamSource lists the clubs shown on the teams page
type TeamSource interface {
	GetTeams(ctx context.Context) ([]models.Team, error)
}

// PredictionGate rejects repeated prediction submissions
type PredictionGate interface {
	Claim(ctx context.Context, p models.PredictionInput) error
	Release(ctx context.Context, p models.PredictionInput) error
}

// SyncGate limits how often match syncs reach the backend
type SyncGate interface {
	Allow(ctx context.Context) error
}

// Service builds page view-models and gates writes to the backend.
// Every read falls back to placeholder data on failure.
type Service struct {
	backend Backend
	teams   TeamSource
	dedup   PredictionGate
	limiter SyncGate
	logger  *logrus.Entry
}

// NewService creates a page service. teams, dedup and limiter may be nil.
func NewService(backend Backend, teams TeamSource, dedup PredictionGate, limiter SyncGate, logger *logrus.Entry) *Service {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Service{
		backend: backend,
		teams:   teams,
		dedup:   dedup,
		limiter: limiter,
		logger:  logger.WithField("component", "feed"),
	}
}

// isNotFound reports whether the backend answered 404
func isNotFound(err error) bool {
	var httpErr *upstream.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// logFallback records a masked fetch failure
func (s *Service) logFallback(section string, err error) {
	s.logger.WithFields(logrus.Fields{
		"section": section,
		"error":   err,
	}).Warn("⚠️  serving placeholder data")
}
