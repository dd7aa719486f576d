package feed

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// ValidationError rejects a write before it reaches the backend
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidatePrediction normalizes and checks a prediction submission
func ValidatePrediction(p *models.PredictionInput) error {
	p.Normalize()
	switch {
	case p.UserName == "":
		return &ValidationError{Field: "user_name", Message: "required"}
	case !validEmail(p.UserEmail):
		return &ValidationError{Field: "user_email", Message: "invalid email"}
	case p.Match <= 0:
		return &ValidationError{Field: "match", Message: "required"}
	case p.Prediction != models.OutcomeHome && p.Prediction != models.OutcomeDraw && p.Prediction != models.OutcomeAway:
		return &ValidationError{Field: "prediction", Message: "must be home, draw or away"}
	case p.Confidence < 1 || p.Confidence > 5:
		return &ValidationError{Field: "confidence", Message: "must be between 1 and 5"}
	}
	return nil
}

// SubmitPrediction forwards a prediction once per (email, match) within
// the dedup window
func (s *Service) SubmitPrediction(ctx context.Context, input models.PredictionInput) (models.Prediction, error) {
	if err := ValidatePrediction(&input); err != nil {
		return models.Prediction{}, err
	}

	if s.dedup != nil {
		if err := s.dedup.Claim(ctx, input); err != nil {
			return models.Prediction{}, err
		}
	}

	p, err := s.backend.CreatePrediction(ctx, input)
	if err != nil {
		if s.dedup != nil {
			if relErr := s.dedup.Release(ctx, input); relErr != nil {
				s.logger.WithError(relErr).Warn("failed to release prediction claim")
			}
		}
		return models.Prediction{}, fmt.Errorf("creating prediction: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"match":      p.Match,
		"prediction": p.Prediction,
		"confidence": p.Confidence,
	}).Info("prediction submitted")
	return p, nil
}

// LikePost likes a post
func (s *Service) LikePost(ctx context.Context, slug string) (models.LikeResult, error) {
	if strings.TrimSpace(slug) == "" {
		return models.LikeResult{}, &ValidationError{Field: "slug", Message: "required"}
	}
	res, err := s.backend.LikePost(ctx, slug)
	if err != nil {
		return models.LikeResult{}, fmt.Errorf("liking post %s: %w", slug, err)
	}
	return res, nil
}

// AddComment submits a comment on a post
func (s *Service) AddComment(ctx context.Context, slug string, input models.CommentInput) (models.Comment, error) {
	input.AuthorName = strings.TrimSpace(input.AuthorName)
	input.AuthorEmail = strings.TrimSpace(input.AuthorEmail)
	input.Content = strings.TrimSpace(input.Content)

	switch {
	case input.AuthorName == "":
		return models.Comment{}, &ValidationError{Field: "author_name", Message: "required"}
	case !validEmail(input.AuthorEmail):
		return models.Comment{}, &ValidationError{Field: "author_email", Message: "invalid email"}
	case input.Content == "":
		return models.Comment{}, &ValidationError{Field: "content", Message: "required"}
	}

	c, err := s.backend.AddComment(ctx, slug, input)
	if err != nil {
		return models.Comment{}, fmt.Errorf("commenting on %s: %w", slug, err)
	}
	return c, nil
}

// SyncMatches triggers a fixture import on the backend, rate limited
func (s *Service) SyncMatches(ctx context.Context) (models.SyncResult, error) {
	if s.limiter != nil {
		if err := s.limiter.Allow(ctx); err != nil {
			return models.SyncResult{}, err
		}
	}

	res, err := s.backend.SyncMatches(ctx)
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("syncing matches: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"created": res.Created,
		"updated": res.Updated,
		"total":   res.Total,
	}).Info("✓ matches synced")
	return res, nil
}

// Post statuses accepted by the backend
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// ValidatePost normalizes and checks a post body
func ValidatePost(p *models.PostInput) error {
	p.Title = strings.TrimSpace(p.Title)
	p.Slug = strings.TrimSpace(p.Slug)
	p.Excerpt = strings.TrimSpace(p.Excerpt)
	p.Status = strings.ToLower(strings.TrimSpace(p.Status))

	switch {
	case p.Title == "":
		return &ValidationError{Field: "title", Message: "required"}
	case strings.TrimSpace(p.Content) == "":
		return &ValidationError{Field: "content", Message: "required"}
	case strings.ContainsAny(p.Slug, " /?#"):
		return &ValidationError{Field: "slug", Message: "must not contain spaces, slashes, ? or #"}
	case p.Status != "" && p.Status != PostStatusDraft && p.Status != PostStatusPublished:
		return &ValidationError{Field: "status", Message: "must be draft or published"}
	case p.ReadTime < 0:
		return &ValidationError{Field: "read_time", Message: "must not be negative"}
	}
	return nil
}

// CreatePost publishes a new post
func (s *Service) CreatePost(ctx context.Context, input models.PostInput) (models.PostDetail, error) {
	if err := ValidatePost(&input); err != nil {
		return models.PostDetail{}, err
	}

	post, err := s.backend.CreatePost(ctx, input)
	if err != nil {
		return models.PostDetail{}, fmt.Errorf("creating post: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"slug":   post.Slug,
		"status": post.Status,
	}).Info("post created")
	return post, nil
}

// UpdatePost replaces a post's editable fields
func (s *Service) UpdatePost(ctx context.Context, slug string, input models.PostInput) (models.PostDetail, error) {
	if strings.TrimSpace(slug) == "" {
		return models.PostDetail{}, &ValidationError{Field: "slug", Message: "required"}
	}
	if err := ValidatePost(&input); err != nil {
		return models.PostDetail{}, err
	}

	post, err := s.backend.UpdatePost(ctx, slug, input)
	if err != nil {
		if isNotFound(err) {
			return models.PostDetail{}, ErrPostNotFound
		}
		return models.PostDetail{}, fmt.Errorf("updating post %s: %w", slug, err)
	}

	s.logger.WithField("slug", post.Slug).Info("post updated")
	return post, nil
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
