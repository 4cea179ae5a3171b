package task

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrTaskNotFound is returned when a mutation references an unknown task ID.
var ErrTaskNotFound = errors.New("task not found")

// Store owns the canonical task list. All mutations go through the exported
// methods; reads return deep copies so callers can never reach the underlying
// slices. One interactive user is assumed, but the store is still safe for
// concurrent HTTP handlers.
type Store struct {
	mu     sync.RWMutex
	tasks  []*Task // insertion order preserved for stable listings
	byID   map[string]*Task
	now    func() time.Time
	logger zerolog.Logger
}

// NewStore creates a store seeded with the given tasks.
func NewStore(seed []Task, logger zerolog.Logger) *Store {
	s := &Store{
		byID:   make(map[string]*Task, len(seed)),
		now:    time.Now,
		logger: logger.With().Str("component", "task_store").Logger(),
	}
	for i := range seed {
		t := seed[i].Clone()
		s.tasks = append(s.tasks, &t)
		s.byID[t.ID] = &t
	}
	return s
}

// List returns a snapshot of all tasks in insertion order.
func (s *Store) List() []Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Task, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = t.Clone()
	}
	return out
}

// Get returns a snapshot of a single task.
func (s *Store) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return Task{}, ErrTaskNotFound
	}
	return t.Clone(), nil
}

// AddComment appends a new comment authored by userID to the task. The
// comment gets a fresh ID and the current time. Callers are expected to
// reject submissions with empty text and no attachments before calling;
// the store itself only guards task existence.
//
// Adding a comment deliberately does not bump the task's LastUpdated, so a
// conversation on an approved design does not resurface it as "recently
// changed".
func (s *Store) AddComment(taskID, userID, text string, attachments []string) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[taskID]
	if !ok {
		return Comment{}, ErrTaskNotFound
	}

	c := Comment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      text,
		Timestamp: s.now(),
	}
	if len(attachments) > 0 {
		c.Attachments = append([]string(nil), attachments...)
	}
	t.Comments = append(t.Comments, c)

	s.logger.Info().
		Str("task_id", taskID).
		Str("user_id", userID).
		Str("comment_id", c.ID).
		Int("attachments", len(c.Attachments)).
		Msg("comment added")

	return c, nil
}

// Approve marks the task approved regardless of its current status.
// Approving an already-approved task is a no-op in effect.
func (s *Store) Approve(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	t.Status = StatusApproved
	t.LastUpdated = s.now()

	s.logger.Info().Str("task_id", taskID).Msg("task approved")
	return nil
}

// UndoApprove resets the task to pending regardless of its current status.
// The pre-approval status is not restored: a task that was in progress
// comes back as pending. That reset is the designed behavior of the portal,
// which treats undo as "send back for re-evaluation".
func (s *Store) UndoApprove(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[taskID]
	if !ok {
		return ErrTaskNotFound
	}
	t.Status = StatusPending
	t.LastUpdated = s.now()

	s.logger.Info().Str("task_id", taskID).Msg("task approval undone")
	return nil
}
