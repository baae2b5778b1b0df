// Package types provides the wire records exchanged with the dashboard API.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strconv"
	"strings"
	"time"
)

// TimeFrame scopes the aggregate queries. It is built fresh per request.
type TimeFrame struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// LastDays returns the window ending at now and starting days earlier.
func LastDays(now time.Time, days int) TimeFrame {
	return TimeFrame{
		StartTime: now.AddDate(0, 0, -days),
		EndTime:   now,
	}
}

// TopNRequest is a TimeFrame plus the number of reasons to return.
type TopNRequest struct {
	TimeFrame
	N int `json:"n"`
}

// TotalsSnapshot holds the headline application counters.
// The server is trusted for approved <= relevant_matches <= total_applications.
type TotalsSnapshot struct {
	TotalApplications int `json:"total_applications"`
	RelevantMatches   int `json:"relevant_matches"`
	Approved          int `json:"approved"`
}

// MatchRate returns relevant matches as a percentage of all applications.
func (t TotalsSnapshot) MatchRate() float64 {
	return percent(t.RelevantMatches, t.TotalApplications)
}

// ApprovalRate returns approvals as a percentage of relevant matches.
func (t TotalsSnapshot) ApprovalRate() float64 {
	return percent(t.Approved, t.RelevantMatches)
}

func percent(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}

// ReasonPercent is one ranked reason with its share formatted as "NN%".
type ReasonPercent struct {
	Reason  string `json:"reason"`
	Percent string `json:"percent"`
}

// Value parses Percent into a number. Malformed values yield 0.
func (r ReasonPercent) Value() float64 {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(r.Percent), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// RouterName identifies one router. The API returns bare strings.
type RouterName = string

// MessageResponse is the acknowledgement body of resume mutations.
type MessageResponse struct {
	Message string `json:"message"`
}
