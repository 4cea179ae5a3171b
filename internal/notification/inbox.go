package notification

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/AsgerObel/Hoff/internal/task"
)

// initialUnread is how many notifications stay unread after first-load
// seeding.
const initialUnread = 2

// Inbox holds the session-local read overlay for one user's feed. The
// overlay only ever grows: there is no way to mark a notification unread
// again. When the underlying event changes, the new notification gets a new
// derived ID and the stale read mark simply stops matching anything.
type Inbox struct {
	mu     sync.Mutex
	userID string
	read   map[string]struct{}
	seeded bool
	logger zerolog.Logger
}

// NewInbox creates an empty inbox for the given user.
func NewInbox(userID string, logger zerolog.Logger) *Inbox {
	return &Inbox{
		userID: userID,
		read:   make(map[string]struct{}),
		logger: logger.With().Str("component", "inbox").Str("user_id", userID).Logger(),
	}
}

// SeedInitial applies the first-load heuristic: if more than initialUnread
// notifications would show up unread, everything but the most recent
// initialUnread is marked read so a returning client is not flooded.
// It runs at most once per inbox; later calls are no-ops. Call it once at
// startup, after the task store has been seeded.
//
// This is a demo-friendly heuristic carried over from the portal. A
// deployment with real notification history would likely drop it.
func (in *Inbox) SeedInitial(tasks []task.Task) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.seeded {
		return
	}
	in.seeded = true

	feed := Derive(tasks, in.userID, in.read)
	var unread []Notification
	for _, n := range feed {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	if len(unread) <= initialUnread {
		return
	}
	// Feed is newest first, so everything past the first initialUnread
	// entries gets marked read.
	for _, n := range unread[initialUnread:] {
		in.read[n.ID] = struct{}{}
	}
	in.logger.Info().
		Int("seeded_read", len(unread)-initialUnread).
		Msg("initial notifications marked read")
}

// MarkRead adds a notification ID to the read overlay. Idempotent; unknown
// IDs are accepted and simply never match a derived notification.
func (in *Inbox) MarkRead(id string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.read[id] = struct{}{}
}

// MarkAllRead adds every given ID to the read overlay in one batch. Callers
// pass the IDs of the currently visible feed.
func (in *Inbox) MarkAllRead(ids []string) {
	in.mu.Lock()
	defer in.mu.Unlock()
	for _, id := range ids {
		in.read[id] = struct{}{}
	}
}

// Feed derives the current bounded feed for the inbox owner.
func (in *Inbox) Feed(tasks []task.Task) []Notification {
	return Derive(tasks, in.userID, in.snapshotRead())
}

// UnreadCount returns how many entries of the current feed are unread.
func (in *Inbox) UnreadCount(tasks []task.Task) int {
	count := 0
	for _, n := range in.Feed(tasks) {
		if !n.Read {
			count++
		}
	}
	return count
}

func (in *Inbox) snapshotRead() map[string]struct{} {
	in.mu.Lock()
	defer in.mu.Unlock()
	snap := make(map[string]struct{}, len(in.read))
	for id := range in.read {
		snap[id] = struct{}{}
	}
	return snap
}
