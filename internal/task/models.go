// Package task implements the portal's task store and its list projections.
package task

import "time"

// Status represents the review state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusApproved   Status = "approved"
)

// IsValidStatus reports whether s is a recognized task status.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusApproved:
		return true
	}
	return false
}

// Asset is a delivered file attached to a task. Assets are reference data;
// the store never mutates them.
type Asset struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
	Kind string `json:"kind" yaml:"kind"`
	Size string `json:"size" yaml:"size"`
}

// Comment is a feedback entry on a task. Comments are append-only; insertion
// order is chronological order and is never changed.
type Comment struct {
	ID          string    `json:"id" yaml:"id"`
	UserID      string    `json:"user_id" yaml:"user_id"`
	Text        string    `json:"text" yaml:"text"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	Attachments []string  `json:"attachments,omitempty" yaml:"attachments,omitempty"`
}

// Task is a unit of client work tracked through the review flow.
type Task struct {
	ID          string    `json:"id" yaml:"id"`
	Category    string    `json:"category" yaml:"category"`
	Title       string    `json:"title" yaml:"title"`
	Status      Status    `json:"status" yaml:"status"`
	ImageURL    string    `json:"image_url" yaml:"image_url"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	LastUpdated time.Time `json:"last_updated" yaml:"last_updated"`
	Comments    []Comment `json:"comments" yaml:"comments"`
	Assets      []Asset   `json:"assets" yaml:"assets"`
}

// Clone returns a deep copy of the task that is safe to hand to callers.
func (t Task) Clone() Task {
	c := t
	if t.Comments != nil {
		c.Comments = make([]Comment, len(t.Comments))
		for i, cm := range t.Comments {
			c.Comments[i] = cm
			if cm.Attachments != nil {
				c.Comments[i].Attachments = append([]string(nil), cm.Attachments...)
			}
		}
	}
	if t.Assets != nil {
		c.Assets = append([]Asset(nil), t.Assets...)
	}
	return c
}
