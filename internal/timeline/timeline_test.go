package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobdash/internal/types"
)

var now = time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)

func ids(items []types.TimelineItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		name string
		date string
		want time.Time
	}{
		{"present lower", "2021 - present", now},
		{"present mixed case", "Jan 2019 – Present", now},
		{"bare year", "2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"month and year", "Jan 2020", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"first year wins", "2017 - 2019", time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"no year", "Summer", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"empty", "", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"digits inside longer run", "12345", time.Date(1234, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSortKey(tt.date, now))
		})
	}
}

func TestDerive_StableSortAmongEqualYears(t *testing.T) {
	experiences := []types.Experience{
		{Company: "A", Role: "first", Date: "2020"},
		{Company: "B", Role: "second", Date: "2019"},
		{Company: "C", Role: "third", Date: "Jan 2020"},
	}

	items := Derive(experiences, nil, now)
	assert.Equal(t, []string{"exp-1", "exp-0", "exp-2"}, ids(items))
}

func TestDerive_LanesFollowSourceType(t *testing.T) {
	experiences := []types.Experience{{Company: "Acme", Role: "Engineer", Date: "2021", Location: "Remote"}}
	projects := []types.Project{
		{Title: "dashctl", Description: "CLI"},
		{Title: "timeline", Description: "viz"},
	}

	items := Derive(experiences, projects, now)
	require.Len(t, items, 3)

	for _, item := range items {
		switch item.Kind {
		case types.KindExperience:
			assert.Equal(t, types.LaneMain, item.Lane)
			assert.Equal(t, "Engineer", item.Title)
			assert.Equal(t, "Acme", item.Subtitle)
			assert.Equal(t, "Remote", item.Location)
		case types.KindProject:
			assert.Equal(t, types.LaneFeature, item.Lane)
			assert.Equal(t, "Personal Project", item.Subtitle)
			assert.Equal(t, "Recent", item.Date)
		}
	}
	// 2021 first, then proj-1 (now - 1 day), then proj-0 (now).
	assert.Equal(t, []string{"exp-0", "proj-1", "proj-0"}, ids(items))
}

func TestDerive_PresentTiesWithFirstProject(t *testing.T) {
	experiences := []types.Experience{{Role: "Current", Date: "2023 - Present"}}
	projects := []types.Project{{Title: "latest"}}

	items := Derive(experiences, projects, now)
	assert.Equal(t, []string{"exp-0", "proj-0"}, ids(items))
}

func TestDerive_IsPure(t *testing.T) {
	experiences := []types.Experience{{Role: "x", Date: "2018"}, {Role: "y", Date: "present"}}
	projects := []types.Project{{Title: "p"}}

	first := Derive(experiences, projects, now)
	second := Derive(experiences, projects, now)
	assert.Equal(t, first, second)
	assert.Equal(t, "x", experiences[0].Role)
}

func TestDerive_Empty(t *testing.T) {
	assert.Empty(t, Derive(nil, nil, now))
}

func TestFilterAndCounts(t *testing.T) {
	items := Derive(
		[]types.Experience{{Role: "a", Date: "2019"}, {Role: "b", Date: "2020"}},
		[]types.Project{{Title: "p"}},
		now,
	)

	assert.Len(t, Filter(items, ""), 3)
	assert.Equal(t, []string{"exp-0", "exp-1"}, ids(Filter(items, types.KindExperience)))
	assert.Equal(t, []string{"proj-0"}, ids(Filter(items, types.KindProject)))

	counts := Counts(items)
	assert.Equal(t, 2, counts[types.KindExperience])
	assert.Equal(t, 1, counts[types.KindProject])
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("all")
	require.NoError(t, err)
	assert.Empty(t, kind)

	kind, err = ParseKind("Project")
	require.NoError(t, err)
	assert.Equal(t, types.KindProject, kind)

	_, err = ParseKind("education")
	assert.Error(t, err)
}
