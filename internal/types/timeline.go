package types

import "time"

// TimelineKind is the source collection of a timeline item.
type TimelineKind string

const (
	KindExperience TimelineKind = "experience"
	KindProject    TimelineKind = "project"
)

// Lanes of the two-track timeline.
const (
	LaneMain    = 0
	LaneFeature = 1
)

// TimelineItem is a derived, never persisted, entry of the merged timeline.
type TimelineItem struct {
	ID          string       `json:"id"`
	Kind        TimelineKind `json:"kind"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Date        string       `json:"date"`
	Description string       `json:"description"`
	Location    string       `json:"location,omitempty"`
	SortKey     time.Time    `json:"sort_key"`
	Lane        int          `json:"lane"`
}
