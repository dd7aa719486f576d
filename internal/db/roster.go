package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// RosterDB defines the interface for team and roster storage
type RosterDB interface {
	GetTeams(ctx context.Context) ([]models.Team, error)
	GetRoster(ctx context.Context, team string) (scout.Roster, error)
	UpsertTeam(ctx context.Context, team models.Team) (int, error)
	UpsertRoster(ctx context.Context, team string, roster scout.Roster) error
	Migrate(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error
}

const schema = `
CREATE TABLE IF NOT EXISTS teams (
	id              SERIAL PRIMARY KEY,
	name            TEXT NOT NULL UNIQUE,
	slug            TEXT NOT NULL UNIQUE,
	short_name      TEXT NOT NULL DEFAULT '',
	logo_url        TEXT NOT NULL DEFAULT '',
	primary_color   TEXT NOT NULL DEFAULT '#000000',
	secondary_color TEXT NOT NULL DEFAULT '#FFFFFF'
);

CREATE TABLE IF NOT EXISTS roster_players (
	team        TEXT NOT NULL,
	position_id TEXT NOT NULL,
	name        TEXT NOT NULL,
	number      TEXT NOT NULL DEFAULT '-',
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (team, position_id)
);

CREATE INDEX IF NOT EXISTS roster_players_team_lower_idx ON roster_players (LOWER(team));
`

// Client implements RosterDB on Postgres
type Client struct {
	db *sql.DB
}

// NewClient creates a new roster DB client
func NewClient(dsn string) (*Client, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// Migrate creates the tables if they don't exist
func (c *Client) Migrate(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// GetTeams retrieves all teams ordered by name
func (c *Client) GetTeams(ctx context.Context) ([]models.Team, error) {
	query := `
		SELECT id, name, slug, short_name, logo_url, primary_color, secondary_color
		FROM teams
		ORDER BY name ASC
	`

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Slug, &t.ShortName,
			&t.LogoURL, &t.PrimaryColor, &t.SecondaryColor,
		); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate teams: %w", err)
	}

	return teams, nil
}

// GetRoster retrieves a team's players keyed by position id. Team names
// match case-insensitively; an unknown team yields an empty roster.
func (c *Client) GetRoster(ctx context.Context, team string) (scout.Roster, error) {
	query := `
		SELECT position_id, name, number
		FROM roster_players
		WHERE LOWER(team) = LOWER($1)
	`

	rows, err := c.db.QueryContext(ctx, query, team)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	defer rows.Close()

	roster := scout.Roster{}
	for rows.Next() {
		var posID string
		var p scout.RosterPlayer
		if err := rows.Scan(&posID, &p.Name, &p.Number); err != nil {
			return nil, fmt.Errorf("scan roster player: %w", err)
		}
		roster[posID] = p
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roster: %w", err)
	}

	return roster, nil
}

// UpsertTeam inserts or updates a team by slug and returns its id
func (c *Client) UpsertTeam(ctx context.Context, team models.Team) (int, error) {
	query := `
		INSERT INTO teams (name, slug, short_name, logo_url, primary_color, secondary_color)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			short_name = EXCLUDED.short_name,
			logo_url = EXCLUDED.logo_url,
			primary_color = EXCLUDED.primary_color,
			secondary_color = EXCLUDED.secondary_color
		RETURNING id
	`

	var id int
	err := c.db.QueryRowContext(ctx, query,
		team.Name, team.Slug, team.ShortName, team.LogoURL, team.PrimaryColor, team.SecondaryColor,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert team %s: %w", team.Slug, err)
	}
	return id, nil
}

// UpsertRoster replaces a team's roster atomically
func (c *Client) UpsertRoster(ctx context.Context, team string, roster scout.Roster) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roster_players WHERE team = $1`, team); err != nil {
		return fmt.Errorf("clear roster %s: %w", team, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO roster_players (team, position_id, name, number)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return fmt.Errorf("prepare roster insert: %w", err)
	}
	defer stmt.Close()

	for posID, p := range roster {
		if _, err := stmt.ExecContext(ctx, team, posID, p.Name, p.Number); err != nil {
			return fmt.Errorf("insert %s %s: %w", team, posID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit roster %s: %w", team, err)
	}
	return nil
}

// Ping checks database connectivity
func (c *Client) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// Close closes the database connection
func (c *Client) Close() error {
	return c.db.Close()
}
