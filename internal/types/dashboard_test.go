//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastDays(t *testing.T) {
	now := time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC)
	frame := LastDays(now, 30)

	assert.Equal(t, now, frame.EndTime)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), frame.StartTime)
}

func TestTopNRequest_FlattensTimeFrame(t *testing.T) {
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	data, err := json.Marshal(TopNRequest{TimeFrame: LastDays(now, 1), N: 5})
	require.NoError(t, err)

	assert.JSONEq(t, `{"start_time":"2024-06-29T00:00:00Z","end_time":"2024-06-30T00:00:00Z","n":5}`, string(data))
}

func TestTotalsSnapshot_Rates(t *testing.T) {
	tests := []struct {
		name         string
		totals       TotalsSnapshot
		wantMatch    float64
		wantApproval float64
	}{
		{"typical", TotalsSnapshot{TotalApplications: 200, RelevantMatches: 50, Approved: 10}, 25, 20},
		{"no applications", TotalsSnapshot{}, 0, 0},
		{"no matches", TotalsSnapshot{TotalApplications: 10}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantMatch, tt.totals.MatchRate(), 0.001)
			assert.InDelta(t, tt.wantApproval, tt.totals.ApprovalRate(), 0.001)
		})
	}
}

func TestReasonPercent_Value(t *testing.T) {
	assert.InDelta(t, 42.0, ReasonPercent{Percent: "42%"}.Value(), 0.001)
	assert.InDelta(t, 12.5, ReasonPercent{Percent: " 12.5 % "}.Value(), 0.001)
	assert.InDelta(t, 7.0, ReasonPercent{Percent: "7"}.Value(), 0.001)
	assert.Zero(t, ReasonPercent{Percent: "n/a"}.Value())
	assert.Zero(t, ReasonPercent{}.Value())
}
