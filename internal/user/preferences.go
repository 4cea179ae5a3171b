package user

import (
	"errors"
	"fmt"
	"sync"
)

// Notification preference keys.
const (
	PrefNewUploads           = "new_uploads"
	PrefReplies              = "replies"
	PrefDailySummary         = "daily_summary"
	PrefApprovalConfirmation = "approval_confirmation"
	PrefStatusUpdates        = "status_updates"
	PrefDeadlines            = "deadlines"
	PrefNewProjects          = "new_projects"
)

// ErrUnknownPreference is returned for keys outside the fixed preference set.
var ErrUnknownPreference = errors.New("unknown preference")

// Preferences holds a user's notification toggles. The key set is fixed;
// only the boolean values change.
type Preferences struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// DefaultPreferences returns the portal's stock notification settings.
func DefaultPreferences() *Preferences {
	return &Preferences{flags: map[string]bool{
		PrefNewUploads:           true,
		PrefReplies:              false,
		PrefDailySummary:         true,
		PrefApprovalConfirmation: true,
		PrefStatusUpdates:        true,
		PrefDeadlines:            false,
		PrefNewProjects:          true,
	}}
}

// Snapshot returns a copy of all preference flags.
func (p *Preferences) Snapshot() map[string]bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]bool, len(p.flags))
	for k, v := range p.flags {
		out[k] = v
	}
	return out
}

// SetAll applies a batch of preference changes. The whole batch is validated
// before anything is written, so one unknown key rejects the patch without
// touching any flag.
func (p *Preferences) SetAll(changes map[string]bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key := range changes {
		if _, ok := p.flags[key]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPreference, key)
		}
	}
	for key, on := range changes {
		p.flags[key] = on
	}
	return nil
}

// Toggle flips a preference flag and returns the new value.
func (p *Preferences) Toggle(key string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.flags[key]
	if !ok {
		return false, ErrUnknownPreference
	}
	p.flags[key] = !v
	return !v, nil
}
