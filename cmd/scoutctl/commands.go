package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/config"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/db"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/fallback"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/feed"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/logging"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/upstream"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// lineupOutput is printed by the lineup command
type lineupOutput struct {
	Team      string                 `json:"team"`
	KnownTeam bool                   `json:"known_team"`
	Formation string                 `json:"formation"`
	Lineup    []models.LineupEntry   `json:"lineup"`
	Aggregate models.AggregateReport `json:"aggregate"`
}

// rankingOutput is printed by the ranking command
type rankingOutput struct {
	Ranking  []models.RankingEntry `json:"ranking"`
	Fallback bool                  `json:"fallback"`
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the roster schema and load the built-in teams and rosters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			log := logging.Component(logging.New(cfg.Log), "seed")

			client, err := db.NewClient(cfg.Postgres.DSN)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			res, err := db.Seed(ctx, client, fallback.Teams(), scout.Rosters())
			if err != nil {
				return err
			}

			log.WithField("teams", res.Teams).WithField("rosters", res.Rosters).Info("✓ Seed complete")
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
}

func newLineupCmd() *cobra.Command {
	var useDB bool

	cmd := &cobra.Command{
		Use:   "lineup <team>",
		Short: "Print a team's full lineup and its aggregate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rosters scout.RosterSource = scout.StaticRosters{}
			if useDB {
				cfg := config.LoadConfig()
				client, err := db.NewClient(cfg.Postgres.DSN)
				if err != nil {
					return err
				}
				defer client.Close()
				rosters = db.NewRosterSource(client, logging.Component(logging.New(cfg.Log), "rosters"))
			}

			return printJSON(cmd.OutOrStdout(), buildLineup(cmd.Context(), rosters, args[0]))
		},
	}

	cmd.Flags().BoolVar(&useDB, "db", false, "read rosters from the roster database")
	return cmd
}

func newRankingCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Print the prediction leaderboard from the football backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			logger := logging.New(cfg.Log)
			client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, nil, logging.Component(logger, "football_api"))

			res := upstream.Fetch(cmd.Context(), func(ctx context.Context) ([]models.UserStats, error) {
				return client.Ranking(ctx, limit)
			})
			if !res.OK() {
				logging.Component(logger, "ranking").WithError(res.Err).Warn("⚠️  Backend unavailable, showing fallback ranking")
			}
			stats, usedFallback := res.Or(fallback.Ranking())

			return printJSON(cmd.OutOrStdout(), rankingOutput{
				Ranking:  feed.RankingEntries(stats),
				Fallback: usedFallback,
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", feed.RankingLimit, "number of leaderboard rows")
	return cmd
}

func newAggregateCmd() *cobra.Command {
	var positions string

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Toggle the given positions into a fresh selection and print its aggregate",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := aggregatePositions(splitPositions(positions))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().StringVar(&positions, "positions", strings.Join(scout.PositionIDs(), ","), "comma-separated position ids")
	return cmd
}

// buildLineup loads a team's roster into a fresh selection
func buildLineup(ctx context.Context, rosters scout.RosterSource, team string) lineupOutput {
	roster, known := rosters.RosterFor(ctx, team)

	var sel scout.Selection
	sel.LoadTeam(roster)

	return lineupOutput{
		Team:      team,
		KnownTeam: known,
		Formation: scout.Formation,
		Lineup:    scout.Lineup(roster),
		Aggregate: scout.Aggregate(sel.Entries()),
	}
}

// aggregatePositions toggles each id in order, so a repeated id is
// removed again
func aggregatePositions(ids []string) (models.AggregateReport, error) {
	var sel scout.Selection
	for _, id := range ids {
		pos, ok := scout.PositionByID(id)
		if !ok {
			return models.AggregateReport{}, fmt.Errorf("%w: %s", scout.ErrUnknownPosition, id)
		}
		sel.Toggle(pos)
	}
	return scout.Aggregate(sel.Entries()), nil
}

func splitPositions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
