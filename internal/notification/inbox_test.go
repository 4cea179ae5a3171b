package notification

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AsgerObel/Hoff/internal/task"
)

func newTestInbox(t *testing.T) *Inbox {
	t.Helper()
	return NewInbox("u1", zerolog.Nop())
}

// seedScenario builds three pending tasks plus one task whose latest comment
// is from the studio: four raw notifications in total.
func seedScenario() []task.Task {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC) }
	return []task.Task{
		{ID: "t1", Status: task.StatusPending, LastUpdated: day(1)},
		{ID: "t2", Status: task.StatusPending, LastUpdated: day(2)},
		{ID: "t3", Status: task.StatusPending, LastUpdated: day(3)},
		{ID: "t4", Status: task.StatusApproved, LastUpdated: day(4), Comments: []task.Comment{
			{ID: "c1", UserID: "admin", Text: "new upload", Timestamp: day(5)},
		}},
	}
}

func TestInbox_SeedInitial_LeavesTwoUnread(t *testing.T) {
	in := newTestInbox(t)
	tasks := seedScenario()

	in.SeedInitial(tasks)

	feed := in.Feed(tasks)
	require.Len(t, feed, 4)
	assert.Equal(t, 2, in.UnreadCount(tasks))

	// The two most recent entries stay unread.
	assert.False(t, feed[0].Read)
	assert.False(t, feed[1].Read)
	assert.True(t, feed[2].Read)
	assert.True(t, feed[3].Read)
}

func TestInbox_SeedInitial_RunsOnce(t *testing.T) {
	in := newTestInbox(t)
	tasks := seedScenario()

	in.SeedInitial(tasks)
	require.Equal(t, 2, in.UnreadCount(tasks))

	// New activity after seeding stays unread even if it pushes the unread
	// count past the seed threshold again.
	tasks = append(tasks, task.Task{
		ID:          "t5",
		Status:      task.StatusPending,
		LastUpdated: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	})
	in.SeedInitial(tasks)
	assert.Equal(t, 3, in.UnreadCount(tasks))
}

func TestInbox_SeedInitial_FewUnreadUntouched(t *testing.T) {
	in := newTestInbox(t)
	tasks := seedScenario()[:2] // two pending tasks, two raw notifications

	in.SeedInitial(tasks)
	assert.Equal(t, 2, in.UnreadCount(tasks))
}

func TestInbox_MarkRead_Idempotent(t *testing.T) {
	in := newTestInbox(t)
	tasks := seedScenario()[:2]

	feed := in.Feed(tasks)
	require.Len(t, feed, 2)

	in.MarkRead(feed[0].ID)
	in.MarkRead(feed[0].ID)
	assert.Equal(t, 1, in.UnreadCount(tasks))
}

func TestInbox_MarkAllRead(t *testing.T) {
	in := newTestInbox(t)
	tasks := seedScenario()

	feed := in.Feed(tasks)
	ids := make([]string, len(feed))
	for i, n := range feed {
		ids[i] = n.ID
	}

	in.MarkAllRead(ids)
	assert.Equal(t, 0, in.UnreadCount(tasks))
}

func TestInbox_StaleReadMarksAreOrphaned(t *testing.T) {
	// A new comment produces a new derived ID, so the read mark on the old
	// one simply stops matching anything and the task shows unread again.
	in := newTestInbox(t)
	day := func(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC) }
	tasks := []task.Task{
		{ID: "t1", Status: task.StatusApproved, Comments: []task.Comment{
			{ID: "c1", UserID: "admin", Text: "v1", Timestamp: day(1)},
		}},
	}

	in.MarkRead("comment:c1")
	assert.Equal(t, 0, in.UnreadCount(tasks))

	tasks[0].Comments = append(tasks[0].Comments, task.Comment{
		ID: "c2", UserID: "admin", Text: "v2", Timestamp: day(2),
	})
	assert.Equal(t, 1, in.UnreadCount(tasks))
}
