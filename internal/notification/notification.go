// Package notification derives the portal's activity feed from task state.
//
// Notifications are never stored. Every read recomputes the feed from the
// current task list and resolves read state against a session-local overlay
// of read IDs, so the feed can never drift from the tasks it describes.
package notification

import (
	"sort"
	"time"

	"github.com/AsgerObel/Hoff/internal/task"
)

// Kind classifies what event a notification describes.
type Kind string

const (
	KindComment Kind = "comment"
	KindStatus  Kind = "status"
	// KindAsset is reserved for delivered-file notifications. No current
	// event emits it, but consumers should treat it as part of the taxonomy.
	KindAsset Kind = "asset"
)

// FeedLimit caps the derived feed at the most recent entries.
const FeedLimit = 5

// previewRunes is the comment preview truncation length.
const previewRunes = 40

// statusMessage is the fixed text for pending-approval notifications.
const statusMessage = "awaiting your approval"

// Notification is a derived view entity summarizing a recent task event.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	TaskID    string    `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// Derive computes the bounded feed for currentUserID. It is a pure function
// of its inputs.
//
// Per task it emits at most one comment notification, for the latest comment
// and only when that comment was written by someone else, plus one status
// notification for every task still awaiting approval. The combined set is
// sorted newest first (ties keep emission order), capped at FeedLimit, and
// read state is resolved against readIDs.
func Derive(tasks []task.Task, currentUserID string, readIDs map[string]struct{}) []Notification {
	var feed []Notification

	for _, t := range tasks {
		if len(t.Comments) == 0 {
			continue
		}
		latest := t.Comments[len(t.Comments)-1]
		if latest.UserID == currentUserID {
			continue
		}
		feed = append(feed, Notification{
			ID:        "comment:" + latest.ID,
			Kind:      KindComment,
			TaskID:    t.ID,
			TaskTitle: t.Title,
			Message:   truncate(latest.Text, previewRunes),
			Timestamp: latest.Timestamp,
		})
	}

	for _, t := range tasks {
		if t.Status != task.StatusPending {
			continue
		}
		feed = append(feed, Notification{
			ID:        "status:" + t.ID,
			Kind:      KindStatus,
			TaskID:    t.ID,
			TaskTitle: t.Title,
			Message:   statusMessage,
			Timestamp: t.LastUpdated,
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})

	if len(feed) > FeedLimit {
		feed = feed[:FeedLimit]
	}

	for i := range feed {
		_, read := readIDs[feed[i].ID]
		feed[i].Read = read
	}

	return feed
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
