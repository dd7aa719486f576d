package db_test

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/db"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/fallback"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

// MockDB implements db.RosterDB for testing
type MockDB struct {
	teams       map[string]models.Team
	rosters     map[string]scout.Roster
	shouldError bool
	migrated    bool
}

func NewMockDB() *MockDB {
	return &MockDB{
		teams:   map[string]models.Team{},
		rosters: map[string]scout.Roster{},
	}
}

func (m *MockDB) GetTeams(ctx context.Context) ([]models.Team, error) {
	if m.shouldError {
		return nil, context.DeadlineExceeded
	}
	out := make([]models.Team, 0, len(m.teams))
	for _, t := range m.teams {
		out = append(out, t)
	}
	return out, nil
}

func (m *MockDB) GetRoster(ctx context.Context, team string) (scout.Roster, error) {
	if m.shouldError {
		return nil, context.DeadlineExceeded
	}
	for name, r := range m.rosters {
		if strings.EqualFold(name, team) {
			return r, nil
		}
	}
	return scout.Roster{}, nil
}

func (m *MockDB) UpsertTeam(ctx context.Context, team models.Team) (int, error) {
	if m.shouldError {
		return 0, context.DeadlineExceeded
	}
	m.teams[team.Slug] = team
	return len(m.teams), nil
}

func (m *MockDB) UpsertRoster(ctx context.Context, team string, roster scout.Roster) error {
	if m.shouldError {
		return context.DeadlineExceeded
	}
	m.rosters[team] = roster
	return nil
}

func (m *MockDB) Migrate(ctx context.Context) error {
	if m.shouldError {
		return context.DeadlineExceeded
	}
	m.migrated = true
	return nil
}

func (m *MockDB) Close() error                   { return nil }
func (m *MockDB) Ping(ctx context.Context) error { return nil }

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestRosterSource(t *testing.T) {
	mock := NewMockDB()
	mock.rosters["Ceará"] = scout.Roster{"GK": {Name: "Richard", Number: "1"}}
	src := db.NewRosterSource(mock, quietLogger())
	ctx := context.Background()

	r, ok := src.RosterFor(ctx, "ceará")
	if !ok || r["GK"].Name != "Richard" {
		t.Errorf("expected stored roster, got %v ok=%v", r, ok)
	}

	// Not stored but built in
	r, ok = src.RosterFor(ctx, "Flamengo")
	if !ok || r["GK"].Name != "Rossi" {
		t.Errorf("expected built-in Flamengo roster, got %v ok=%v", r, ok)
	}

	r, ok = src.RosterFor(ctx, "Nowhere FC")
	if ok || len(r) != scout.MaxSelection {
		t.Errorf("expected default roster, got %v ok=%v", r, ok)
	}
}

func TestRosterSource_DatabaseErrorFallsBack(t *testing.T) {
	mock := NewMockDB()
	mock.shouldError = true
	src := db.NewRosterSource(mock, quietLogger())

	r, ok := src.RosterFor(context.Background(), "Palmeiras")
	if !ok || r["GK"].Name != "Weverton" {
		t.Errorf("expected built-in roster on db error, got %v ok=%v", r, ok)
	}
}

func TestSeed(t *testing.T) {
	mock := NewMockDB()
	res, err := db.Seed(context.Background(), mock, fallback.Teams(), scout.Rosters())
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if !mock.migrated {
		t.Error("expected migration to run")
	}
	if res.Teams != len(fallback.Teams()) || res.Rosters != len(scout.TeamNames()) {
		t.Errorf("unexpected seed result %+v", res)
	}
	if len(mock.rosters["Flamengo"]) != scout.MaxSelection {
		t.Error("expected full Flamengo roster stored")
	}
}

func TestSeed_StopsOnError(t *testing.T) {
	mock := NewMockDB()
	mock.shouldError = true
	if _, err := db.Seed(context.Background(), mock, fallback.Teams(), nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestClient_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	dsn := os.Getenv("ROSTER_DSN")
	if dsn == "" {
		t.Skip("ROSTER_DSN not set")
	}

	client, err := db.NewClient(dsn)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	defer client.Close()
	ctx := context.Background()

	if _, err := db.Seed(ctx, client, fallback.Teams()[:2], map[string]scout.Roster{
		"Integration FC": {"ST": {Name: "Centroavante", Number: "9"}},
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	teams, err := client.GetTeams(ctx)
	if err != nil || len(teams) < 2 {
		t.Fatalf("expected seeded teams, got %d (%v)", len(teams), err)
	}

	r, err := client.GetRoster(ctx, "integration fc")
	if err != nil || r["ST"].Name != "Centroavante" {
		t.Errorf("expected stored striker, got %v (%v)", r, err)
	}
}
