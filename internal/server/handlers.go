package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/AsgerObel/Hoff/internal/contact"
	"github.com/AsgerObel/Hoff/internal/health"
	"github.com/AsgerObel/Hoff/internal/metrics"
	"github.com/AsgerObel/Hoff/internal/notification"
	"github.com/AsgerObel/Hoff/internal/task"
	"github.com/AsgerObel/Hoff/internal/user"
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	store     *task.Store
	inbox     *notification.Inbox
	directory *user.Directory
	prefs     *user.Preferences
	mailbox   *contact.Mailbox
	checker   *health.Checker
	collector *metrics.Metrics
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(
	store *task.Store,
	inbox *notification.Inbox,
	directory *user.Directory,
	prefs *user.Preferences,
	mailbox *contact.Mailbox,
	checker *health.Checker,
	collector *metrics.Metrics,
	logger zerolog.Logger,
) *Handlers {
	return &Handlers{
		store:     store,
		inbox:     inbox,
		directory: directory,
		prefs:     prefs,
		mailbox:   mailbox,
		checker:   checker,
		collector: collector,
		logger:    logger.With().Str("component", "handlers").Logger(),
		startTime: time.Now(),
	}
}

func problemResponse(c *fiber.Ctx, status int, errType, title, detail string) error {
	return c.Status(status).JSON(ProblemDetail{
		Type:     errType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Path(),
	})
}

// --- Probes ---

// Liveness handles GET /healthz.
func (h *Handlers) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Readiness handles GET /readyz.
func (h *Handlers) Readiness(c *fiber.Ctx) error {
	if !h.checker.IsReady(c.Context()) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not_ready"})
	}
	return c.JSON(fiber.Map{"status": "ready", "uptime": time.Since(h.startTime).String()})
}

// HealthDetail handles GET /api/v1/health with the per-check breakdown.
func (h *Handlers) HealthDetail(c *fiber.Ctx) error {
	report := h.checker.Run(c.Context())

	status := fiber.StatusOK
	if report.Overall == health.StatusDown {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(HealthDetailResponse{
		Status: report.Overall,
		Checks: report.Checks,
		Uptime: time.Since(h.startTime).String(),
	})
}

// --- Tasks ---

// ListTasks handles GET /api/v1/tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	f := task.Filter{
		Search:   c.Query("q"),
		Category: c.Query("category"),
	}

	if status := c.Query("status"); status != "" && status != "all" {
		s := task.Status(status)
		if !task.IsValidStatus(s) {
			return problemResponse(c, fiber.StatusBadRequest,
				"invalid_status", "Bad Request",
				"Unknown status filter: "+status)
		}
		f.Status = s
	}

	if sort := c.Query("sort"); sort != "" {
		o := task.SortOrder(sort)
		if !task.IsValidSortOrder(o) {
			return problemResponse(c, fiber.StatusBadRequest,
				"invalid_sort", "Bad Request",
				"Unknown sort order: "+sort)
		}
		f.Sort = o
	}

	// Portal tabs narrow the listing to one category unless an explicit
	// category filter is already present.
	if tab := c.Query("tab"); tab != "" && f.Category == "" {
		if cat, ok := task.CategoryForTab(tab); ok {
			f.Category = cat
		}
	}

	tasks := task.Query(h.store.List(), f)
	return c.JSON(TaskListResponse{Tasks: tasks, Total: len(tasks)})
}

// GetTask handles GET /api/v1/tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	t, err := h.store.Get(c.Params("id"))
	if err != nil {
		return problemResponse(c, fiber.StatusNotFound,
			"task_not_found", "Not Found",
			"No task with id "+c.Params("id"))
	}
	return c.JSON(TaskResponse{Task: t})
}

// AddComment handles POST /api/v1/tasks/:id/comments.
func (h *Handlers) AddComment(c *fiber.Ctx) error {
	var req CommentRequest
	if err := c.BodyParser(&req); err != nil {
		return problemResponse(c, fiber.StatusBadRequest,
			"invalid_body", "Bad Request",
			"Invalid request body: "+err.Error())
	}

	// The engine trusts its callers on this; the HTTP boundary is where
	// empty submissions get rejected.
	if req.Text == "" && len(req.Attachments) == 0 {
		return problemResponse(c, fiber.StatusBadRequest,
			"invalid_comment", "Bad Request",
			"A comment needs text or at least one attachment")
	}

	taskID := c.Params("id")
	comment, err := h.store.AddComment(taskID, h.directory.Current().ID, req.Text, req.Attachments)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			h.collector.RecordMutation("comment", "not_found")
			return problemResponse(c, fiber.StatusNotFound,
				"task_not_found", "Not Found",
				"No task with id "+taskID)
		}
		return err
	}

	h.collector.RecordMutation("comment", "ok")
	return c.Status(fiber.StatusCreated).JSON(CommentResponse{Comment: comment})
}

// Approve handles POST /api/v1/tasks/:id/approve.
func (h *Handlers) Approve(c *fiber.Ctx) error {
	return h.setApproval(c, "approve", h.store.Approve)
}

// UndoApprove handles DELETE /api/v1/tasks/:id/approve.
func (h *Handlers) UndoApprove(c *fiber.Ctx) error {
	return h.setApproval(c, "undo_approve", h.store.UndoApprove)
}

func (h *Handlers) setApproval(c *fiber.Ctx, op string, mutate func(string) error) error {
	taskID := c.Params("id")
	if err := mutate(taskID); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			h.collector.RecordMutation(op, "not_found")
			return problemResponse(c, fiber.StatusNotFound,
				"task_not_found", "Not Found",
				"No task with id "+taskID)
		}
		return err
	}

	h.collector.RecordMutation(op, "ok")
	t, err := h.store.Get(taskID)
	if err != nil {
		return err
	}
	return c.JSON(TaskResponse{Task: t})
}

// --- Notifications ---

// ListNotifications handles GET /api/v1/notifications.
func (h *Handlers) ListNotifications(c *fiber.Ctx) error {
	tasks := h.store.List()
	feed := h.inbox.Feed(tasks)

	unread := 0
	for _, n := range feed {
		if !n.Read {
			unread++
		}
	}
	h.collector.NotificationsUnread.Set(float64(unread))

	if feed == nil {
		feed = []notification.Notification{}
	}
	return c.JSON(NotificationsResponse{Notifications: feed, UnreadCount: unread})
}

// MarkNotificationRead handles POST /api/v1/notifications/:id/read.
func (h *Handlers) MarkNotificationRead(c *fiber.Ctx) error {
	h.inbox.MarkRead(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllNotificationsRead handles POST /api/v1/notifications/read.
func (h *Handlers) MarkAllNotificationsRead(c *fiber.Ctx) error {
	feed := h.inbox.Feed(h.store.List())
	ids := make([]string, len(feed))
	for i, n := range feed {
		ids[i] = n.ID
	}
	h.inbox.MarkAllRead(ids)
	return c.SendStatus(fiber.StatusNoContent)
}

// --- Profile & preferences ---

// GetProfile handles GET /api/v1/profile.
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	return c.JSON(ProfileResponse{User: h.directory.Current()})
}

// UpdateProfile handles PUT /api/v1/profile.
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	var req ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return problemResponse(c, fiber.StatusBadRequest,
			"invalid_body", "Bad Request",
			"Invalid request body: "+err.Error())
	}

	u, err := h.directory.UpdateProfile(req.FirstName, req.LastName, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrFirstNameRequired) {
			return problemResponse(c, fiber.StatusBadRequest,
				"invalid_profile", "Bad Request",
				"First name is required")
		}
		return err
	}

	h.logger.Info().Str("user_id", u.ID).Str("name", u.Name).Msg("profile updated")
	return c.JSON(ProfileResponse{User: u})
}

// GetPreferences handles GET /api/v1/preferences.
func (h *Handlers) GetPreferences(c *fiber.Ctx) error {
	return c.JSON(PreferencesResponse{Preferences: h.prefs.Snapshot()})
}

// PatchPreferences handles PATCH /api/v1/preferences. The body is a partial
// map of preference keys to booleans; unknown keys reject the whole patch.
func (h *Handlers) PatchPreferences(c *fiber.Ctx) error {
	var req map[string]bool
	if err := c.BodyParser(&req); err != nil {
		return problemResponse(c, fiber.StatusBadRequest,
			"invalid_body", "Bad Request",
			"Invalid request body: "+err.Error())
	}

	if err := h.prefs.SetAll(req); err != nil {
		return problemResponse(c, fiber.StatusBadRequest,
			"unknown_preference", "Bad Request",
			"Rejected patch: "+err.Error())
	}
	return c.JSON(PreferencesResponse{Preferences: h.prefs.Snapshot()})
}

// TogglePreference handles POST /api/v1/preferences/:key/toggle.
func (h *Handlers) TogglePreference(c *fiber.Ctx) error {
	key := c.Params("key")
	on, err := h.prefs.Toggle(key)
	if err != nil {
		return problemResponse(c, fiber.StatusBadRequest,
			"unknown_preference", "Bad Request",
			"Unknown preference key: "+key)
	}
	return c.JSON(PreferenceToggleResponse{Key: key, Enabled: on})
}

// --- Contact ---

// SubmitContact handles POST /api/v1/contact.
func (h *Handlers) SubmitContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return problemResponse(c, fiber.StatusBadRequest,
			"invalid_body", "Bad Request",
			"Invalid request body: "+err.Error())
	}

	msg, err := h.mailbox.Submit(contact.Message{
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Body:    req.Message,
	})
	if err != nil {
		if errors.Is(err, contact.ErrInvalidMessage) {
			return problemResponse(c, fiber.StatusBadRequest,
				"invalid_contact", "Bad Request",
				"Name, email and message are required")
		}
		return problemResponse(c, fiber.StatusServiceUnavailable,
			"mailbox_full", "Service Unavailable",
			"Contact intake is busy, try again shortly")
	}

	h.collector.ContactMessagesTotal.Inc()
	return c.Status(fiber.StatusAccepted).JSON(ContactResponse{
		ID:         msg.ID,
		ReceivedAt: msg.ReceivedAt.Format(time.RFC3339),
	})
}

// ListContactMessages handles GET /api/v1/contact/messages. The studio side
// reads filed messages here; limit=0 returns everything.
func (h *Handlers) ListContactMessages(c *fiber.Ctx) error {
	msgs := h.mailbox.Recent(c.QueryInt("limit"))
	return c.JSON(ContactListResponse{Messages: msgs})
}

// --- Brand guide ---

// brandGuide is the studio's fixed brand reference shown in settings.
var brandGuide = BrandResponse{
	Colors: []BrandColor{
		{Name: "Primary Black", Value: "#000000"},
		{Name: "Off White", Value: "#F9F9F9"},
		{Name: "Accent Red", Value: "#FF3B30"},
		{Name: "Hoffmeister Grey", Value: "#EBE9E9"},
	},
	Fonts: []BrandFont{
		{Name: "Primary", Value: "Inter Bold"},
		{Name: "Body", Value: "Inter Regular"},
	},
}

// GetBrand handles GET /api/v1/brand.
func (h *Handlers) GetBrand(c *fiber.Ctx) error {
	return c.JSON(brandGuide)
}
