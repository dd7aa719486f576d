package scout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/XavierBriggs/fortuna/services/scout-gateway/pkg/models"
)

var (
	// ErrSessionNotFound is returned for unknown or evicted sessions
	ErrSessionNotFound = errors.New("scout session not found")
	// ErrUnknownPosition is returned for position ids outside the formation
	ErrUnknownPosition = errors.New("unknown position")
)

// Notifier receives every selection change
type Notifier interface {
	SelectionChanged(ctx context.Context, update models.SelectionUpdate) error
}

// RosterSource resolves a team name to its roster. It is total: unknown
// teams resolve to a default roster with ok=false.
type RosterSource interface {
	RosterFor(ctx context.Context, team string) (r Roster, ok bool)
}

// StaticRosters serves the built-in roster tables
type StaticRosters struct{}

// RosterFor implements RosterSource
func (StaticRosters) RosterFor(_ context.Context, team string) (Roster, bool) {
	return RosterFor(team)
}

type session struct {
	id        uuid.UUID
	team      string
	notes     string
	selection Selection
	version   uint64
	createdAt time.Time
	updatedAt time.Time
	lastSeen  time.Time
}

// Snapshot is an immutable view of a session taken after an operation.
// Version increases by one with every change to the session.
type Snapshot struct {
	ID        uuid.UUID
	Version   uint64
	Team      string
	Notes     string
	Selected  []models.SelectedPlayer
	Report    models.AggregateReport
	CreatedAt time.Time
	UpdatedAt time.Time
}

// View converts the snapshot to its wire form
func (s Snapshot) View() models.ScoutSession {
	selected := s.Selected
	if selected == nil {
		selected = []models.SelectedPlayer{}
	}
	return models.ScoutSession{
		ID:        s.ID.String(),
		Version:   s.Version,
		Team:      s.Team,
		Notes:     s.Notes,
		Selected:  selected,
		Report:    s.Report,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// Update converts the snapshot to a change notification of the given kind
func (s Snapshot) Update(kind string) models.SelectionUpdate {
	selected := s.Selected
	if selected == nil {
		selected = []models.SelectedPlayer{}
	}
	return models.SelectionUpdate{
		SessionID: s.ID.String(),
		Version:   s.Version,
		Kind:      kind,
		Team:      s.Team,
		Selected:  selected,
		Report:    s.Report,
		ChangedAt: s.UpdatedAt,
	}
}

// Store owns the scouting sessions. Each session holds its own Selection;
// nothing is persisted.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session

	rosters  RosterSource
	notifier Notifier
	idle     time.Duration
	logger   *logrus.Entry
	now      func() time.Time
}

// NewStore creates a session store. A nil notifier disables notifications
// and a zero idle timeout disables eviction.
func NewStore(rosters RosterSource, notifier Notifier, idle time.Duration, logger *logrus.Entry) *Store {
	if rosters == nil {
		rosters = StaticRosters{}
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{
		sessions: make(map[uuid.UUID]*session),
		rosters:  rosters,
		notifier: notifier,
		idle:     idle,
		logger:   logger.WithField("component", "scout_store"),
		now:      time.Now,
	}
}

// Create opens a new session. A non-empty team preloads its lineup.
func (s *Store) Create(ctx context.Context, team string) Snapshot {
	var r Roster
	if team != "" {
		r, _ = s.rosters.RosterFor(ctx, team)
	}

	now := s.now()
	sess := &session{
		id:        uuid.New(),
		team:      team,
		version:   1,
		createdAt: now,
		updatedAt: now,
		lastSeen:  now,
	}
	if r != nil {
		sess.selection.LoadTeam(r)
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	snap := sess.snapshot()
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"session_id": sess.id,
		"team":       team,
	}).Info("scout session created")
	return snap
}

// Get returns the current state of a session
func (s *Store) Get(id uuid.UUID) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	sess.lastSeen = s.now()
	return sess.snapshot(), nil
}

// Current returns the session state as a snapshot update
// (implements wsclient.SessionLookup)
func (s *Store) Current(id uuid.UUID) (models.SelectionUpdate, bool) {
	snap, err := s.Get(id)
	if err != nil {
		return models.SelectionUpdate{}, false
	}
	return snap.Update(models.UpdateKindSnapshot), true
}

// Delete removes a session
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	sess.selection.Clear()
	sess.version++
	sess.updatedAt = s.now()
	snap := sess.snapshot()
	s.mu.Unlock()

	s.notify(ctx, snap, models.UpdateKindDeleted)
	return nil
}

// Toggle flips a pitch slot in the session's selection. It reports whether
// the slot was added.
func (s *Store) Toggle(ctx context.Context, id uuid.UUID, positionID string) (Snapshot, bool, error) {
	pos, ok := PositionByID(positionID)
	if !ok {
		return Snapshot{}, false, ErrUnknownPosition
	}

	var added bool
	snap, err := s.mutate(id, func(sess *session) {
		added = sess.selection.Toggle(pos)
	})
	if err != nil {
		return Snapshot{}, false, err
	}

	s.notify(ctx, snap, models.UpdateKindToggle)
	return snap, added, nil
}

// Clear empties the session's selection
func (s *Store) Clear(ctx context.Context, id uuid.UUID) (Snapshot, error) {
	snap, err := s.mutate(id, func(sess *session) {
		sess.selection.Clear()
	})
	if err != nil {
		return Snapshot{}, err
	}

	s.notify(ctx, snap, models.UpdateKindClear)
	return snap, nil
}

// LoadTeam replaces the session's selection with a team's full lineup.
// It reports whether the team had its own roster.
func (s *Store) LoadTeam(ctx context.Context, id uuid.UUID, team string) (Snapshot, bool, error) {
	r, known := s.rosters.RosterFor(ctx, team)

	snap, err := s.mutate(id, func(sess *session) {
		sess.team = team
		sess.selection.LoadTeam(r)
	})
	if err != nil {
		return Snapshot{}, false, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": id,
		"team":       team,
		"known":      known,
	}).Debug("team lineup loaded")

	s.notify(ctx, snap, models.UpdateKindLoadTeam)
	return snap, known, nil
}

// SetNotes replaces the session's scouting notes
func (s *Store) SetNotes(ctx context.Context, id uuid.UUID, notes string) (Snapshot, error) {
	snap, err := s.mutate(id, func(sess *session) {
		sess.notes = notes
	})
	if err != nil {
		return Snapshot{}, err
	}

	s.notify(ctx, snap, models.UpdateKindNotes)
	return snap, nil
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// EvictIdle drops sessions not touched since now minus the idle timeout and
// returns how many were removed.
func (s *Store) EvictIdle(ctx context.Context, now time.Time) int {
	if s.idle <= 0 {
		return 0
	}
	cutoff := now.Add(-s.idle)

	var evicted []Snapshot
	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			sess.selection.Clear()
			sess.version++
			sess.updatedAt = now
			evicted = append(evicted, sess.snapshot())
		}
	}
	s.mu.Unlock()

	for _, snap := range evicted {
		s.notify(ctx, snap, models.UpdateKindDeleted)
	}
	if len(evicted) > 0 {
		s.logger.WithField("evicted", len(evicted)).Info("idle scout sessions evicted")
	}
	return len(evicted)
}

// Run evicts idle sessions every interval until ctx is cancelled
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.EvictIdle(ctx, s.now())
		}
	}
}

func (s *Store) mutate(id uuid.UUID, fn func(*session)) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Snapshot{}, ErrSessionNotFound
	}
	fn(sess)
	sess.version++
	now := s.now()
	sess.updatedAt = now
	sess.lastSeen = now
	return sess.snapshot(), nil
}

// notify runs outside the store lock, so concurrent changes to one session
// may reach the notifier out of order. Receivers use Version to discard
// stale updates.
func (s *Store) notify(ctx context.Context, snap Snapshot, kind string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SelectionChanged(ctx, snap.Update(kind)); err != nil {
		s.logger.WithFields(logrus.Fields{
			"session_id": snap.ID,
			"kind":       kind,
			"error":      err,
		}).Warn("failed to publish selection update")
	}
}

func (sess *session) snapshot() Snapshot {
	entries := sess.selection.Entries()
	return Snapshot{
		ID:        sess.id,
		Version:   sess.version,
		Team:      sess.team,
		Notes:     sess.notes,
		Selected:  entries,
		Report:    Aggregate(entries),
		CreatedAt: sess.createdAt,
		UpdatedAt: sess.updatedAt,
	}
}
