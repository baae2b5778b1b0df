// Package timeline merges experiences and projects into one chronological,
// two-lane sequence.
package timeline

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/jobdash/internal/types"
)

const (
	projectSubtitle = "Personal Project"
	projectDate     = "Recent"
	day             = 24 * time.Hour
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// ParseSortKey turns a free-form experience date into a sort key:
// "present" anywhere (any case) sorts as now, otherwise the first run of
// four digits is taken as a year starting January 1, otherwise January 1
// of now's year. Entries sharing a year share a key.
func ParseSortKey(date string, now time.Time) time.Time {
	if strings.Contains(strings.ToLower(date), "present") {
		return now
	}
	if match := yearPattern.FindString(date); match != "" {
		year, err := strconv.Atoi(match)
		if err == nil {
			return time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
		}
	}
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

// projectSortKey gives project i the key now minus i days, so lower indexes
// sort as more recent. Projects carry no dates; this ordering is kept as
// the dashboard has always shown it.
func projectSortKey(index int, now time.Time) time.Time {
	return now.Add(-time.Duration(index) * day)
}

// Derive builds the timeline, oldest first. Ties keep input order with
// experiences ahead of projects. The result depends only on the arguments.
func Derive(experiences []types.Experience, projects []types.Project, now time.Time) []types.TimelineItem {
	items := make([]types.TimelineItem, 0, len(experiences)+len(projects))

	for i, exp := range experiences {
		items = append(items, types.TimelineItem{
			ID:          fmt.Sprintf("exp-%d", i),
			Kind:        types.KindExperience,
			Title:       exp.Role,
			Subtitle:    exp.Company,
			Date:        exp.Date,
			Description: exp.Description,
			Location:    exp.Location,
			SortKey:     ParseSortKey(exp.Date, now),
			Lane:        types.LaneMain,
		})
	}

	for i, proj := range projects {
		items = append(items, types.TimelineItem{
			ID:          fmt.Sprintf("proj-%d", i),
			Kind:        types.KindProject,
			Title:       proj.Title,
			Subtitle:    projectSubtitle,
			Date:        projectDate,
			Description: proj.Description,
			SortKey:     projectSortKey(i, now),
			Lane:        types.LaneFeature,
		})
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].SortKey.Before(items[b].SortKey)
	})
	return items
}

// Filter keeps the items of kind. An empty kind keeps everything.
func Filter(items []types.TimelineItem, kind types.TimelineKind) []types.TimelineItem {
	if kind == "" {
		return items
	}
	out := make([]types.TimelineItem, 0, len(items))
	for _, item := range items {
		if item.Kind == kind {
			out = append(out, item)
		}
	}
	return out
}

// Counts returns the number of items per kind.
func Counts(items []types.TimelineItem) map[types.TimelineKind]int {
	counts := map[types.TimelineKind]int{
		types.KindExperience: 0,
		types.KindProject:    0,
	}
	for _, item := range items {
		counts[item.Kind]++
	}
	return counts
}

// ParseKind maps the CLI filter value to a kind. "all" and "" mean no filter.
func ParseKind(s string) (types.TimelineKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	case string(types.KindExperience):
		return types.KindExperience, nil
	case string(types.KindProject):
		return types.KindProject, nil
	default:
		return "", fmt.Errorf("unknown timeline filter %q (want all, experience or project)", s)
	}
}
