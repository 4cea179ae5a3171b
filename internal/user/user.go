// Package user holds the portal's user directory and per-user settings.
package user

import (
	"errors"
	"strings"
	"sync"
	"unicode"
)

// Role distinguishes studio staff from clients.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// User is an actor reference. Tasks and comments hold only the user ID; the
// directory owns the rest.
type User struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Initials string `json:"initials" yaml:"initials"`
	Email    string `json:"email" yaml:"email"`
	Role     Role   `json:"role" yaml:"role"`
}

// ErrFirstNameRequired is returned when a profile update omits the first name.
var ErrFirstNameRequired = errors.New("first name is required")

// Directory owns the known users and tracks which one the session acts as.
type Directory struct {
	mu        sync.RWMutex
	users     map[string]User
	currentID string
}

// NewDirectory creates a directory from the seed users. currentID selects
// the acting user for this session.
func NewDirectory(users []User, currentID string) *Directory {
	d := &Directory{
		users:     make(map[string]User, len(users)),
		currentID: currentID,
	}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

// Get looks up a user by ID.
func (d *Directory) Get(id string) (User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	return u, ok
}

// Current returns the acting user for this session.
func (d *Directory) Current() User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.users[d.currentID]
}

// UpdateProfile renames the acting user. The display name is the trimmed
// first and last name joined; initials are the first letter of each,
// uppercased. Email is stored as given. The first name is required, the
// last name may be empty.
func (d *Directory) UpdateProfile(firstName, lastName, email string) (User, error) {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" {
		return User{}, ErrFirstNameRequired
	}

	name := first
	if last != "" {
		name = first + " " + last
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	u := d.users[d.currentID]
	u.Name = name
	u.Initials = initialOf(first) + initialOf(last)
	if email != "" {
		u.Email = email
	}
	d.users[d.currentID] = u
	return u, nil
}

func initialOf(s string) string {
	for _, r := range s {
		return string(unicode.ToUpper(r))
	}
	return ""
}
