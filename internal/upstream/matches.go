package upstream

import (
	"context"
	"net/url"
	"strconv"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// UpcomingMatches fetches scheduled matches of the next seven days
func (c *Client) UpcomingMatches(ctx context.Context) ([]models.Match, error) {
	return getList[models.Match](ctx, c, "/matches/upcoming/", nil)
}

// ListMatches fetches all matches
func (c *Client) ListMatches(ctx context.Context) ([]models.Match, error) {
	return getList[models.Match](ctx, c, "/matches/", nil)
}

// GetMatch fetches a single match
func (c *Client) GetMatch(ctx context.Context, id int) (models.Match, error) {
	var match models.Match
	err := c.get(ctx, "/matches/"+strconv.Itoa(id)+"/", nil, &match)
	return match, err
}

// SyncMatches asks the backend to import fixtures from its data provider
func (c *Client) SyncMatches(ctx context.Context) (models.SyncResult, error) {
	var res models.SyncResult
	err := c.send(ctx, "POST", "/matches/sync_from_api/", nil, &res, "/matches/")
	return res, err
}

// ListPredictions fetches all predictions
func (c *Client) ListPredictions(ctx context.Context) ([]models.Prediction, error) {
	return getList[models.Prediction](ctx, c, "/predictions/", nil)
}

// CreatePrediction submits a prediction
func (c *Client) CreatePrediction(ctx context.Context, input models.PredictionInput) (models.Prediction, error) {
	var p models.Prediction
	err := c.send(ctx, "POST", "/predictions/", input, &p, "/predictions/", "/stats/")
	return p, err
}

// MyPredictions fetches the predictions submitted with an email
func (c *Client) MyPredictions(ctx context.Context, email string) ([]models.Prediction, error) {
	return getList[models.Prediction](ctx, c, "/predictions/my_predictions/", url.Values{"email": {email}})
}

// Ranking fetches the top predictors ordered by points
func (c *Client) Ranking(ctx context.Context, limit int) ([]models.UserStats, error) {
	return getList[models.UserStats](ctx, c, "/stats/ranking/", url.Values{"limit": {strconv.Itoa(limit)}})
}

// UserStats fetches a single predictor's statistics
func (c *Client) UserStats(ctx context.Context, id int) (models.UserStats, error) {
	var stats models.UserStats
	err := c.get(ctx, "/stats/"+strconv.Itoa(id)+"/", nil, &stats)
	return stats, err
}
