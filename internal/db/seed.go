package db

import (
	"context"
	"fmt"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// SeedResult counts the rows written by Seed
type SeedResult struct {
	Teams   int `json:"teams"`
	Rosters int `json:"rosters"`
}

// Seed migrates the schema and upserts the given teams and rosters
func Seed(ctx context.Context, db RosterDB, teams []models.Team, rosters map[string]scout.Roster) (SeedResult, error) {
	var res SeedResult

	if err := db.Migrate(ctx); err != nil {
		return res, err
	}

	for _, t := range teams {
		if _, err := db.UpsertTeam(ctx, t); err != nil {
			return res, fmt.Errorf("seeding teams: %w", err)
		}
		res.Teams++
	}

	for team, r := range rosters {
		if err := db.UpsertRoster(ctx, team, r); err != nil {
			return res, fmt.Errorf("seeding rosters: %w", err)
		}
		res.Rosters++
	}

	return res, nil
}
