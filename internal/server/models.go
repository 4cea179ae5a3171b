// Package server exposes the portal engine over an HTTP API.
package server

import (
	"github.com/AsgerObel/Hoff/internal/contact"
	"github.com/AsgerObel/Hoff/internal/health"
	"github.com/AsgerObel/Hoff/internal/notification"
	"github.com/AsgerObel/Hoff/internal/task"
	"github.com/AsgerObel/Hoff/internal/user"
)

// --- Request DTOs ---

// CommentRequest is the payload for POST /api/v1/tasks/:id/comments.
type CommentRequest struct {
	Text        string   `json:"text"`
	Attachments []string `json:"attachments,omitempty"`
}

// ProfileRequest is the payload for PUT /api/v1/profile.
type ProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

// ContactRequest is the payload for POST /api/v1/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

// --- Response DTOs ---

// TaskListResponse wraps a filtered task listing.
type TaskListResponse struct {
	Tasks []task.Task `json:"tasks"`
	Total int         `json:"total"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Task task.Task `json:"task"`
}

// CommentResponse wraps a newly created comment.
type CommentResponse struct {
	Comment task.Comment `json:"comment"`
}

// NotificationsResponse wraps the derived feed.
type NotificationsResponse struct {
	Notifications []notification.Notification `json:"notifications"`
	UnreadCount   int                         `json:"unread_count"`
}

// ProfileResponse wraps the acting user.
type ProfileResponse struct {
	User user.User `json:"user"`
}

// PreferencesResponse wraps the notification preference flags.
type PreferencesResponse struct {
	Preferences map[string]bool `json:"preferences"`
}

// PreferenceToggleResponse reports the new state of a flipped preference.
type PreferenceToggleResponse struct {
	Key     string `json:"key"`
	Enabled bool   `json:"enabled"`
}

// HealthDetailResponse is the per-check health breakdown.
type HealthDetailResponse struct {
	Status health.Status            `json:"status"`
	Checks map[string]health.Status `json:"checks"`
	Uptime string                   `json:"uptime"`
}

// ContactResponse acknowledges an accepted contact message.
type ContactResponse struct {
	ID         string `json:"id"`
	ReceivedAt string `json:"received_at"`
}

// ContactListResponse wraps recently filed contact messages.
type ContactListResponse struct {
	Messages []contact.Message `json:"messages"`
}

// BrandColor is one swatch of the client's brand guide.
type BrandColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// BrandFont is one typeface of the client's brand guide.
type BrandFont struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// BrandResponse is the static brand guide shown in portal settings.
type BrandResponse struct {
	Colors []BrandColor `json:"colors"`
	Fonts  []BrandFont  `json:"fonts"`
}

// ProblemDetail is an RFC 7807 style error body.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}
