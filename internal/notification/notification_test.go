package notification

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AsgerObel/Hoff/internal/task"
)

func at(day int) time.Time {
	return time.Date(2025, 6, day, 12, 0, 0, 0, time.UTC)
}

func noReads() map[string]struct{} {
	return map[string]struct{}{}
}

func TestDerive_LatestCommentFromOtherUser(t *testing.T) {
	tasks := []task.Task{
		{
			ID:    "t1",
			Title: "Logo",
			Comments: []task.Comment{
				{ID: "c1", UserID: "u1", Text: "question", Timestamp: at(1)},
				{ID: "c2", UserID: "admin", Text: "answer", Timestamp: at(2)},
			},
		},
	}

	feed := Derive(tasks, "u1", noReads())
	require.Len(t, feed, 1)
	assert.Equal(t, "comment:c2", feed[0].ID)
	assert.Equal(t, KindComment, feed[0].Kind)
	assert.Equal(t, "t1", feed[0].TaskID)
	assert.Equal(t, "Logo", feed[0].TaskTitle)
	assert.Equal(t, "answer", feed[0].Message)
	assert.True(t, feed[0].Timestamp.Equal(at(2)))
}

func TestDerive_SkipsOwnLatestComment(t *testing.T) {
	// Only the latest comment counts: if the current user replied last,
	// there is no comment notification for the task at all.
	tasks := []task.Task{
		{
			ID: "t1",
			Comments: []task.Comment{
				{ID: "c1", UserID: "admin", Text: "from studio", Timestamp: at(1)},
				{ID: "c2", UserID: "u1", Text: "my reply", Timestamp: at(2)},
			},
		},
	}

	feed := Derive(tasks, "u1", noReads())
	assert.Empty(t, feed)
}

func TestDerive_PendingStatusNotification(t *testing.T) {
	tasks := []task.Task{
		{ID: "t1", Title: "Emballage", Status: task.StatusPending, LastUpdated: at(3)},
		{ID: "t2", Title: "Logo", Status: task.StatusApproved, LastUpdated: at(4)},
		{ID: "t3", Title: "Bannere", Status: task.StatusInProgress, LastUpdated: at(5)},
	}

	feed := Derive(tasks, "u1", noReads())
	require.Len(t, feed, 1)
	assert.Equal(t, "status:t1", feed[0].ID)
	assert.Equal(t, KindStatus, feed[0].Kind)
	assert.Equal(t, "awaiting your approval", feed[0].Message)
	assert.True(t, feed[0].Timestamp.Equal(at(3)))
}

func TestDerive_TruncatesLongCommentPreviews(t *testing.T) {
	long := strings.Repeat("æ", 60)
	tasks := []task.Task{
		{ID: "t1", Comments: []task.Comment{
			{ID: "c1", UserID: "admin", Text: long, Timestamp: at(1)},
		}},
	}

	feed := Derive(tasks, "u1", noReads())
	require.Len(t, feed, 1)
	assert.Equal(t, strings.Repeat("æ", 40)+"…", feed[0].Message)

	// Short messages come through untouched.
	tasks[0].Comments[0].Text = "kort besked"
	feed = Derive(tasks, "u1", noReads())
	assert.Equal(t, "kort besked", feed[0].Message)
}

func TestDerive_SortedDescendingAndCapped(t *testing.T) {
	var tasks []task.Task
	for i := 1; i <= 8; i++ {
		tasks = append(tasks, task.Task{
			ID:          "t" + string(rune('0'+i)),
			Status:      task.StatusPending,
			LastUpdated: at(i),
		})
	}

	feed := Derive(tasks, "u1", noReads())
	require.Len(t, feed, FeedLimit)
	for i := 0; i < len(feed)-1; i++ {
		assert.False(t, feed[i].Timestamp.Before(feed[i+1].Timestamp),
			"feed must be sorted newest first")
	}
	// The 5 most recent of the 8 events survive the cap.
	assert.True(t, feed[0].Timestamp.Equal(at(8)))
	assert.True(t, feed[len(feed)-1].Timestamp.Equal(at(4)))
}

func TestDerive_StableOnEqualTimestamps(t *testing.T) {
	ts := at(1)
	tasks := []task.Task{
		{ID: "a", Status: task.StatusPending, LastUpdated: ts},
		{ID: "b", Status: task.StatusPending, LastUpdated: ts},
	}

	feed := Derive(tasks, "u1", noReads())
	require.Len(t, feed, 2)
	assert.Equal(t, "status:a", feed[0].ID)
	assert.Equal(t, "status:b", feed[1].ID)
}

func TestDerive_ReadOverlayResolution(t *testing.T) {
	tasks := []task.Task{
		{ID: "t1", Status: task.StatusPending, LastUpdated: at(1)},
		{ID: "t2", Status: task.StatusPending, LastUpdated: at(2)},
	}

	feed := Derive(tasks, "u1", map[string]struct{}{"status:t1": {}})
	require.Len(t, feed, 2)
	assert.False(t, feed[0].Read) // status:t2, newest
	assert.True(t, feed[1].Read)  // status:t1
}

func TestDerive_DeterministicIDs(t *testing.T) {
	tasks := []task.Task{
		{ID: "t1", Status: task.StatusPending, LastUpdated: at(1), Comments: []task.Comment{
			{ID: "c9", UserID: "admin", Text: "hi", Timestamp: at(2)},
		}},
	}

	first := Derive(tasks, "u1", noReads())
	second := Derive(tasks, "u1", noReads())
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestDerive_EmptyInput(t *testing.T) {
	assert.Empty(t, Derive(nil, "u1", noReads()))
	assert.Empty(t, Derive([]task.Task{{ID: "t1", Status: task.StatusApproved}}, "u1", noReads()))
}
