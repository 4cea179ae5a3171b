// Package contact implements the public site's contact-form intake.
package contact

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Validation and capacity errors.
var (
	ErrInvalidMessage = errors.New("name, email and message are required")
	ErrMailboxFull    = errors.New("mailbox queue is full")
)

// Message is a submitted contact-form entry.
type Message struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Company    string    `json:"company,omitempty"`
	Body       string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

// Mailbox accepts contact messages and processes them on a background
// worker. There is no real mail backend; processing just holds the message
// for the configured latency before filing it, matching the site's
// simulated send. Filed messages stay in memory for inspection.
type Mailbox struct {
	queue   chan Message
	latency time.Duration

	mu    sync.Mutex
	filed []Message

	logger  zerolog.Logger
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewMailbox creates a mailbox with the given queue capacity and simulated
// processing latency.
func NewMailbox(queueSize int, latency time.Duration, logger zerolog.Logger) *Mailbox {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Mailbox{
		queue:   make(chan Message, queueSize),
		latency: latency,
		logger:  logger.With().Str("component", "mailbox").Logger(),
	}
}

// Start launches the worker goroutine.
func (m *Mailbox) Start(ctx context.Context) {
	if m.running.Swap(true) {
		return // already running
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.wg.Add(1)
	go m.worker(ctx)
	m.logger.Info().Dur("latency", m.latency).Msg("mailbox started")
}

// Stop shuts the worker down and waits for it.
func (m *Mailbox) Stop() {
	if !m.running.Swap(false) {
		return
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
	m.logger.Info().Msg("mailbox stopped")
}

// Submit validates and enqueues a message. Name, email and message body are
// all required; the submit button on the site is disabled until they are
// filled in, so a rejection here means the form was bypassed.
func (m *Mailbox) Submit(msg Message) (Message, error) {
	if strings.TrimSpace(msg.Name) == "" ||
		strings.TrimSpace(msg.Email) == "" ||
		strings.TrimSpace(msg.Body) == "" {
		return Message{}, ErrInvalidMessage
	}

	msg.ID = uuid.New().String()
	msg.ReceivedAt = time.Now()

	select {
	case m.queue <- msg:
	default:
		return Message{}, ErrMailboxFull
	}

	m.logger.Info().
		Str("message_id", msg.ID).
		Str("email", msg.Email).
		Msg("contact message queued")
	return msg, nil
}

// Recent returns up to n filed messages, newest first.
func (m *Mailbox) Recent(n int) []Message {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n <= 0 || n > len(m.filed) {
		n = len(m.filed)
	}
	out := make([]Message, n)
	for i := 0; i < n; i++ {
		out[i] = m.filed[len(m.filed)-1-i]
	}
	return out
}

func (m *Mailbox) worker(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-m.queue:
			m.file(ctx, msg)
		}
	}
}

func (m *Mailbox) file(ctx context.Context, msg Message) {
	if m.latency > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.latency):
		}
	}

	m.mu.Lock()
	m.filed = append(m.filed, msg)
	m.mu.Unlock()

	m.logger.Info().Str("message_id", msg.ID).Msg("contact message filed")
}
