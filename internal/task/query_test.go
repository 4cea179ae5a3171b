package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture() []Task {
	return []Task{
		{ID: "t1", Category: "Branding", Title: "Emballage Design", Status: StatusPending, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "t2", Category: "Web Design", Title: "Forside Layout", Status: StatusApproved, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "t3", Category: "SoMe", Title: "Instagram Kampagne", Status: StatusInProgress, CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func ids(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestQuery_NoFilters_ReordersOnly(t *testing.T) {
	tasks := queryFixture()

	got := Query(tasks, Filter{})
	assert.Equal(t, []string{"t3", "t2", "t1"}, ids(got))

	got = Query(tasks, Filter{Sort: SortOldest})
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(got))

	// The input slice is untouched.
	assert.Equal(t, []string{"t1", "t2", "t3"}, ids(tasks))
}

func TestQuery_StatusFilter(t *testing.T) {
	got := Query(queryFixture(), Filter{Status: StatusPending})
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
}

func TestQuery_Search_CaseInsensitiveTitleOnly(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"lowercase", "forside", []string{"t2"}},
		{"uppercase", "FORSIDE", []string{"t2"}},
		{"substring", "kampagne", []string{"t3"}},
		{"category text does not match", "branding", []string{}},
		{"no match", "xyz", []string{}},
		{"empty matches all", "", []string{"t3", "t2", "t1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(queryFixture(), Filter{Search: tt.search})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestQuery_CategoryFilter(t *testing.T) {
	got := Query(queryFixture(), Filter{Category: "Web Design"})
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)
}

func TestQuery_CombinedFilters(t *testing.T) {
	got := Query(queryFixture(), Filter{Status: StatusApproved, Search: "forside", Category: "Web Design"})
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)

	got = Query(queryFixture(), Filter{Status: StatusPending, Search: "forside"})
	assert.Empty(t, got)
}

func TestQuery_PendingNewestScenario(t *testing.T) {
	tasks := []Task{
		{ID: "t1", Status: StatusPending, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "t2", Status: StatusApproved, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	got := Query(tasks, Filter{Status: StatusPending, Sort: SortNewest})
	assert.Equal(t, []string{"t1"}, ids(got))
}

func TestQuery_StableOnEqualTimestamps(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: "a", CreatedAt: ts},
		{ID: "b", CreatedAt: ts},
		{ID: "c", CreatedAt: ts},
	}

	got := Query(tasks, Filter{Sort: SortNewest})
	assert.Equal(t, []string{"a", "b", "c"}, ids(got))
}

func TestCategoryForTab(t *testing.T) {
	tests := []struct {
		tab  string
		want string
		ok   bool
	}{
		{TabSoMe, "SoMe", true},
		{TabWeb, "Web Design", true},
		{TabIdentity, "Visuel Identitet", true},
		{TabBranding, "Branding", true},
		{TabDashboard, "", false},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.tab, func(t *testing.T) {
			got, ok := CategoryForTab(tt.tab)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(StatusPending))
	assert.True(t, IsValidStatus(StatusInProgress))
	assert.True(t, IsValidStatus(StatusApproved))
	assert.False(t, IsValidStatus("done"))
	assert.False(t, IsValidStatus(""))
}
