// Package seed carries the embedded demo data the portal starts with.
// Nothing is persisted at runtime; every restart reloads this data.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/AsgerObel/Hoff/internal/task"
	"github.com/AsgerObel/Hoff/internal/user"
)

//go:embed tasks.yaml
var tasksYAML []byte

//go:embed users.yaml
var usersYAML []byte

// Tasks decodes the embedded demo tasks.
func Tasks() ([]task.Task, error) {
	var tasks []task.Task
	if err := yaml.Unmarshal(tasksYAML, &tasks); err != nil {
		return nil, fmt.Errorf("decode seed tasks: %w", err)
	}
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("seed task %d has no id", i)
		}
		if !task.IsValidStatus(t.Status) {
			return nil, fmt.Errorf("seed task %s has invalid status %q", t.ID, t.Status)
		}
		if t.LastUpdated.IsZero() {
			tasks[i].LastUpdated = t.CreatedAt
		}
	}
	return tasks, nil
}

type userFile struct {
	Current string      `yaml:"current"`
	Users   []user.User `yaml:"users"`
}

// Users decodes the embedded demo users and returns them together with the
// ID of the session's acting user.
func Users() ([]user.User, string, error) {
	var f userFile
	if err := yaml.Unmarshal(usersYAML, &f); err != nil {
		return nil, "", fmt.Errorf("decode seed users: %w", err)
	}
	if f.Current == "" {
		return nil, "", fmt.Errorf("seed users missing current user id")
	}
	found := false
	for _, u := range f.Users {
		if u.ID == f.Current {
			found = true
			break
		}
	}
	if !found {
		return nil, "", fmt.Errorf("current user %q not in seed users", f.Current)
	}
	return f.Users, f.Current, nil
}
