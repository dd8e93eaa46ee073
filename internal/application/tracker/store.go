// Package tracker implements the goal progress tracking engine: the state
// store owning the singleton goal, the command operations invoked by the chat
// surface, and the display-name resolution used for rendering.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/goal"
	"github.com/fitcrew-hub/fitcrew-bot/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GOAL STATE STORE
// Owns the zero-or-one goal in memory. Every mutation in the system routes
// through WithGoal so no two mutations interleave; each successful mutation is
// followed by exactly one persisted snapshot. Persistence is best-effort
// durability: if the write fails the in-memory state remains authoritative and
// the failure is surfaced as shared.ErrPersistenceFailure, which also matches
// the base shared.ErrPersistence sentinel.
// ══════════════════════════════════════════════════════════════════════════════

// Store owns the singleton goal record.
type Store struct {
	mu      sync.Mutex
	current *goal.Goal

	repo   goal.Repository
	logger *slog.Logger
}

// NewStore creates a store backed by the given repository.
func NewStore(repo goal.Repository, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		repo:   repo,
		logger: logger.With("component", "store"),
	}
}

// Load hydrates the singleton from the repository. An empty slot is not an
// error; a broken repository is.
func (s *Store) Load(ctx context.Context) error {
	g, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNoActiveGoal) {
			s.logger.Info("no persisted goal found")
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.current = g
	s.mu.Unlock()

	s.logger.Info("goal loaded",
		"goal", g.Name,
		"participants", len(g.Participants),
		"last_reset", g.LastResetDate,
	)
	return nil
}

// Exists reports whether a goal is active.
func (s *Store) Exists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Create creates the singleton goal. Fails if one already exists.
func (s *Store) Create(ctx context.Context, spec goal.Spec) (*goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return nil, shared.ErrGoalAlreadyExists
	}

	g, err := goal.New(spec)
	if err != nil {
		return nil, err
	}
	s.current = g

	if err := s.persist(ctx); err != nil {
		return g.Clone(), err
	}
	return g.Clone(), nil
}

// Delete clears the singleton.
func (s *Store) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return shared.ErrNoActiveGoal
	}
	s.current = nil

	if err := s.repo.Clear(ctx); err != nil {
		s.logger.Error("failed to clear persisted goal", "error", err)
		return shared.WrapError("goal", "Delete", shared.ErrPersistenceFailure, "failed to clear goal state", err)
	}
	return nil
}

// WithGoal acquires exclusive access to the goal, applies fn, and persists the
// result if fn succeeded. fn must not block on external calls; name lookups
// and message sends belong outside this section.
func (s *Store) WithGoal(ctx context.Context, fn func(g *goal.Goal) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return shared.ErrNoActiveGoal
	}
	if err := fn(s.current); err != nil {
		return err
	}
	return s.persist(ctx)
}

// View applies fn to the goal under the lock without persisting. fn must not
// retain references to the goal's internals; use Snapshot for that.
func (s *Store) View(fn func(g *goal.Goal)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return shared.ErrNoActiveGoal
	}
	fn(s.current)
	return nil
}

// Snapshot returns a deep copy of the goal for lock-free rendering.
func (s *Store) Snapshot() (*goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, shared.ErrNoActiveGoal
	}
	return s.current.Clone(), nil
}

// persist writes the current snapshot; the caller holds the lock. The
// in-memory mutation stands even when the write fails.
func (s *Store) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.current); err != nil {
		s.logger.Error("failed to persist goal state", "error", err)
		return shared.WrapError("goal", "Persist", shared.ErrPersistenceFailure, "failed to persist goal state", err)
	}
	return nil
}
