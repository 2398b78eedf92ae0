package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mlenoir/octogym-cli/internal/analytics"
	"github.com/mlenoir/octogym-cli/internal/domain"
	"github.com/mlenoir/octogym-cli/internal/ports"
)

// WorkoutStore owns the authoritative local collection of workout records and
// keeps it consistent with the remote record store. Every mutation is a
// remote round trip followed by reconciliation of exactly the affected
// record; the collection never holds a value the server did not return. The
// analytics snapshot is recomputed in full after every successful mutation.
type WorkoutStore struct {
	api     ports.RecordService
	session *SessionManager
	clock   ports.Clock

	mu      sync.RWMutex
	records []domain.Workout
	stats   analytics.Snapshot

	// Per-record request sequencing: a mutation notes its sequence before
	// the round trip and reconciles only if no newer mutation for the same
	// id was issued meanwhile. A stale response is dropped instead of
	// clobbering newer intent.
	seq    uint64
	latest map[domain.WorkoutID]uint64
}

func NewWorkoutStore(api ports.RecordService, session *SessionManager, clock ports.Clock) *WorkoutStore {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	store := &WorkoutStore{
		api:     api,
		session: session,
		clock:   clock,
		latest:  map[domain.WorkoutID]uint64{},
	}
	store.stats = analytics.Compute(nil, clock.Now())

	session.OnCleared(store.Reset)

	return store
}

// Load replaces the entire local collection with the server's. It is the
// hydration path, run once per session establishment.
func (s *WorkoutStore) Load(ctx context.Context) error {
	token, err := s.token()
	if err != nil {
		return err
	}

	records, err := s.api.ListWorkouts(ctx, token)
	if err != nil {
		return s.remoteFailure(ctx, "load workouts", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]domain.Workout, len(records))
	copy(s.records, records)
	s.recompute()

	return nil
}

// Create validates the draft locally, submits it, and appends the
// server-assigned record.
func (s *WorkoutStore) Create(ctx context.Context, draft domain.WorkoutDraft) (domain.Workout, error) {
	if err := draft.Validate(); err != nil {
		return domain.Workout{}, err
	}

	token, err := s.token()
	if err != nil {
		return domain.Workout{}, err
	}

	created, err := s.api.CreateWorkout(ctx, token, draft)
	if err != nil {
		return domain.Workout{}, s.remoteFailure(ctx, "create workout", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.upsert(created)
	s.recompute()

	return created, nil
}

// Update submits the draft for the given id. The remote call is attempted
// even when the id is not tracked locally; the local collection may be behind
// the server. On success the server's representation replaces the local
// entry in place, or is appended when absent.
func (s *WorkoutStore) Update(ctx context.Context, id domain.WorkoutID, draft domain.WorkoutDraft) (domain.Workout, error) {
	if err := draft.Validate(); err != nil {
		return domain.Workout{}, err
	}

	token, err := s.token()
	if err != nil {
		return domain.Workout{}, err
	}

	seq := s.beginMutation(id)

	updated, err := s.api.UpdateWorkout(ctx, token, id, draft)
	if err != nil {
		return domain.Workout{}, s.remoteFailure(ctx, "update workout", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest[id] == seq {
		s.upsert(updated)
		s.recompute()
	}

	return updated, nil
}

// Delete removes the record remotely and then locally by id.
func (s *WorkoutStore) Delete(ctx context.Context, id domain.WorkoutID) error {
	token, err := s.token()
	if err != nil {
		return err
	}

	seq := s.beginMutation(id)

	if err := s.api.DeleteWorkout(ctx, token, id); err != nil {
		return s.remoteFailure(ctx, "delete workout", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest[id] == seq {
		s.remove(id)
		s.recompute()
	}

	return nil
}

// Records returns a copy of the current collection in its tracked order.
func (s *WorkoutStore) Records() []domain.Workout {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Workout, len(s.records))
	copy(out, s.records)
	return out
}

// Stats returns the snapshot derived from the collection as of its last
// mutation.
func (s *WorkoutStore) Stats() analytics.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Reset discards the entire local collection. Registered as the session
// cleared-hook so no record outlives the identity it belongs to.
func (s *WorkoutStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.latest = map[domain.WorkoutID]uint64{}
	s.recompute()
}

func (s *WorkoutStore) token() (string, error) {
	session := s.session.Current()
	if !session.Established() {
		return "", domain.ErrUnauthenticated
	}
	return session.Token, nil
}

func (s *WorkoutStore) beginMutation(id domain.WorkoutID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.latest[id] = s.seq
	return s.seq
}

// remoteFailure maps a rejected credential onto forced session teardown and
// a session-expired error; everything else is wrapped and surfaced.
func (s *WorkoutStore) remoteFailure(ctx context.Context, op string, err error) error {
	if errors.Is(err, domain.ErrUnauthorized) {
		if teardownErr := s.session.HandleUnauthorized(ctx); teardownErr != nil {
			return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrSessionExpired, teardownErr))
		}
		return fmt.Errorf("%s: %w", op, domain.ErrSessionExpired)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// upsert replaces the entry matching the record's id in place, preserving
// order, and appends when no entry matches.
func (s *WorkoutStore) upsert(record domain.Workout) {
	for i := range s.records {
		if s.records[i].ID == record.ID {
			s.records[i] = record
			return
		}
	}
	s.records = append(s.records, record)
}

func (s *WorkoutStore) remove(id domain.WorkoutID) {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return
		}
	}
}

func (s *WorkoutStore) recompute() {
	s.stats = analytics.Compute(s.records, s.clock.Now())
}
