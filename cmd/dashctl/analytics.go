package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/views"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show candidate ratings and top skills",
	Long:  "Shows the rating distribution of one job posting (the first one unless --job is given) and the most common candidate skills.",
	Args:  cobra.NoArgs,
	RunE:  runAnalytics,
}

var analyticsJobID string

func init() {
	analyticsCmd.Flags().StringVar(&analyticsJobID, "job", "", "Job ID to show ratings for")

	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	analytics := views.NewJobAnalytics(rt.jobs, rt.viewOptions())
	defer analytics.Close()

	state, err := analytics.Select(cmd.Context(), analyticsJobID)
	if err != nil {
		return rt.report("Analytics", err)
	}
	data := state.Data
	rt.printer.PrintAnalytics(data.JobIDs, data.Ratings, data.TopSkills)
	return nil
}
