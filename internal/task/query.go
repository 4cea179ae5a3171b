package task

import (
	"sort"
	"strings"
)

// SortOrder selects how a task listing is ordered by creation time.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// IsValidSortOrder reports whether o is a recognized sort order.
func IsValidSortOrder(o SortOrder) bool {
	return o == SortNewest || o == SortOldest
}

// Filter describes a task listing query. Zero values mean "no constraint":
// an empty Status matches every status, an empty Search matches every title
// and an empty Category matches every category. Sort defaults to newest first.
type Filter struct {
	Status   Status
	Search   string
	Sort     SortOrder
	Category string
}

// Query filters and sorts tasks for display. It is a pure function: the
// input slice is never modified and the result is freshly allocated.
// Search is a case-insensitive substring match on the title only.
func Query(tasks []Task, f Filter) []Task {
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		out = append(out, t)
	}

	newest := f.Sort != SortOldest
	sort.SliceStable(out, func(i, j int) bool {
		if newest {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out
}

// Portal navigation tabs.
const (
	TabDashboard = "dashboard"
	TabSoMe      = "some"
	TabWeb       = "web"
	TabIdentity  = "identity"
	TabBranding  = "branding"
)

// CategoryForTab maps a portal tab to the category label it narrows the
// listing to. The dashboard tab shows everything, so it maps to no category.
// Unknown tabs also map to no category, matching the portal's fallback of
// showing the full overview.
func CategoryForTab(tab string) (string, bool) {
	switch tab {
	case TabSoMe:
		return "SoMe", true
	case TabWeb:
		return "Web Design", true
	case TabIdentity:
		return "Visuel Identitet", true
	case TabBranding:
		return "Branding", true
	case TabDashboard:
		return "", false
	default:
		return "", false
	}
}
