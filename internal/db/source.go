package db

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/internal/scout"
)

// lookupTimeout bounds a single roster query
const lookupTimeout = 2 * time.Second

// RosterSource serves rosters from the database and falls back to the
// built-in tables when the database fails or has no roster for a team
type RosterSource struct {
	db     RosterDB
	logger *logrus.Entry
}

// NewRosterSource wraps a RosterDB as a scout.RosterSource
func NewRosterSource(db RosterDB, logger *logrus.Entry) *RosterSource {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &RosterSource{
		db:     db,
		logger: logger.WithField("component", "roster_source"),
	}
}

// RosterFor implements scout.RosterSource
func (s *RosterSource) RosterFor(ctx context.Context, team string) (scout.Roster, bool) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	roster, err := s.db.GetRoster(ctx, team)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"team":  team,
			"error": err,
		}).Warn("roster lookup failed, using built-in rosters")
		return scout.RosterFor(team)
	}
	if len(roster) == 0 {
		return scout.RosterFor(team)
	}
	return roster, true
}
