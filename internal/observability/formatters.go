// Package observability renders view state as boxed terminal output.
package observability

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/jobdash/internal/api"
	"github.com/jonathan/jobdash/internal/mutation"
	"github.com/jonathan/jobdash/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in short lists
	maxItemsToShow = 5
	// barWidth is the width of a full (100%) reason bar
	barWidth = 20
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// printEmpty prints a single-line box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printEmpty(message string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, message)
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// PrintDashboard outputs the totals card with its rates and the top reasons.
func (p *Printer) PrintDashboard(window types.TimeFrame, totals types.TotalsSnapshot, pros, cons []types.ReasonPercent) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Window:   %s to %s\n",
		window.StartTime.Format("2006-01-02"), window.EndTime.Format("2006-01-02")))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Applications:      %d\n", totals.TotalApplications))
	sb.WriteString(fmt.Sprintf("Relevant matches:  %d (%.1f%%)\n", totals.RelevantMatches, totals.MatchRate()))
	sb.WriteString(fmt.Sprintf("Approved:          %d (%.1f%%)\n", totals.Approved, totals.ApprovalRate()))

	p.printBox("APPLICATION TOTALS", strings.TrimSuffix(sb.String(), "\n"))
	p.printReasons("TOP PROS", pros)
	p.printReasons("TOP CONS", cons)
}

func (p *Printer) printReasons(title string, reasons []types.ReasonPercent) {
	if len(reasons) == 0 {
		p.printEmpty(title + ": none")
		return
	}

	var sb strings.Builder
	for i, r := range reasons {
		filled := int(r.Value()/100*barWidth + 0.5)
		filled = max(0, min(filled, barWidth))
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, truncate(r.Reason, boxWidth-10)))
		sb.WriteString(fmt.Sprintf("   %s%s %s\n",
			strings.Repeat("█", filled), strings.Repeat("░", barWidth-filled), r.Percent))
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRouters outputs the router names, one per line.
func (p *Printer) PrintRouters(routers []types.RouterName) {
	if len(routers) == 0 {
		p.printEmpty("No routers available")
		return
	}
	p.printBox(fmt.Sprintf("ROUTERS (%d)", len(routers)), strings.Join(routers, "\n"))
}

// PrintExperiences outputs every experience with the index used to edit it.
func (p *Printer) PrintExperiences(experiences []types.Experience) {
	if len(experiences) == 0 {
		p.printEmpty("No experiences yet")
		return
	}

	var sb strings.Builder
	for i, exp := range experiences {
		sb.WriteString(fmt.Sprintf("[%d] %s @ %s\n", i, exp.Role, exp.Company))
		line := "    " + exp.Date
		if exp.Location != "" {
			line += " · " + exp.Location
		}
		sb.WriteString(line + "\n")
		if exp.Description != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", truncate(exp.Description, 50)))
		}
		if i < len(experiences)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox("EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProjects outputs every project with the index used to edit it.
func (p *Printer) PrintProjects(projects []types.Project) {
	if len(projects) == 0 {
		p.printEmpty("No projects yet")
		return
	}

	var sb strings.Builder
	for i, proj := range projects {
		sb.WriteString(fmt.Sprintf("[%d] %s\n", i, proj.Title))
		if proj.Description != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", truncate(proj.Description, 50)))
		}
	}
	p.printBox("PROJECTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTimeline outputs the merged timeline with one column per lane.
func (p *Printer) PrintTimeline(items []types.TimelineItem, counts map[types.TimelineKind]int) {
	if len(items) == 0 {
		p.printEmpty("Timeline is empty")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experiences: %d   Projects: %d\n\n",
		counts[types.KindExperience], counts[types.KindProject]))
	for _, item := range items {
		marker := "●"
		indent := ""
		if item.Lane == types.LaneFeature {
			marker = "◆"
			indent = "    "
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", indent, marker, item.Title))
		sb.WriteString(fmt.Sprintf("%s  %s · %s\n", indent, item.Subtitle, item.Date))
	}
	p.printBox("TIMELINE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobs outputs the job postings with their question counts.
func (p *Printer) PrintJobs(jobs []types.JobPosting) {
	if len(jobs) == 0 {
		p.printEmpty("No job postings")
		return
	}

	var sb strings.Builder
	for i, job := range jobs {
		sb.WriteString(fmt.Sprintf("%s  %s\n", job.ID, job.Title(i)))
		sb.WriteString(fmt.Sprintf("    %d questions", len(job.Questions.Questions)))
		if job.CreatedAt != nil {
			sb.WriteString(fmt.Sprintf(" · created %s", job.CreatedAt.Format("2006-01-02")))
		}
		sb.WriteString("\n")
	}
	p.printBox(fmt.Sprintf("JOB POSTINGS (%d)", len(jobs)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalytics outputs the rating distribution of the selected job and
// the top skills.
func (p *Printer) PrintAnalytics(jobIDs []string, ratings *types.RatingDistribution, skills []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs: %d\n", len(jobIDs)))

	if ratings != nil {
		sb.WriteString(fmt.Sprintf("\nRatings for %s (%d candidates):\n", ratings.JobID, ratings.Total()))
		keys := make([]string, 0, len(ratings.Distribution))
		for k := range ratings.Distribution {
			keys = append(keys, k)
		}
		sortRatingKeys(keys)
		total := ratings.Total()
		for _, k := range keys {
			n := ratings.Distribution[k]
			filled := 0
			if total > 0 {
				filled = n * barWidth / total
			}
			sb.WriteString(fmt.Sprintf("  %-3s %s %d\n", k, strings.Repeat("█", filled), n))
		}
	}

	if len(skills) > 0 {
		sb.WriteString("\nTop skills:\n")
		count := min(len(skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
		}
		if len(skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-maxItemsToShow))
		}
	}

	p.printBox("CANDIDATE ANALYTICS", strings.TrimSuffix(sb.String(), "\n"))
}

// sortRatingKeys orders numeric ratings numerically and the rest lexically.
func sortRatingKeys(keys []string) {
	sort.Slice(keys, func(a, b int) bool {
		na, errA := strconv.Atoi(keys[a])
		nb, errB := strconv.Atoi(keys[b])
		if errA == nil && errB == nil {
			return na < nb
		}
		return keys[a] < keys[b]
	})
}

// PrintOutcome reports a mutation result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintOutcome(outcome mutation.Outcome) {
	switch {
	case outcome.Confirmed():
		fmt.Fprintf(p.out, "✓ %s: saved\n", outcome.Name)
	case outcome.Saved:
		fmt.Fprintf(p.out, "⚠ %s: %s\n", outcome.Name, outcome.Message())
	default:
		fmt.Fprintf(p.out, "✗ %s: not saved\n", outcome.Name)
	}
}

// PrintError reports a failed load the way the dashboard cards do:
// unreachable servers get a connection banner, HTTP failures their status.
func (p *Printer) PrintError(title string, err error) {
	if err == nil {
		return
	}

	var reqErr *api.RequestFailedError
	switch {
	case api.IsTransport(err):
		p.printBox("CONNECTION ERROR", fmt.Sprintf("%s\nCould not reach the API server.\n%v", title, err))
	case errors.As(err, &reqErr):
		p.printBox("REQUEST FAILED", fmt.Sprintf("%s\n%s", title, reqErr.Error()))
	default:
		p.printBox("ERROR", fmt.Sprintf("%s\n%v", title, err))
	}
}

// truncate shortens s to maxLen runes, appending "..." when cut.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
