package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/timeline"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show experiences and projects on one timeline",
	Args:  cobra.NoArgs,
	RunE:  runTimeline,
}

var timelineFilter string

func init() {
	timelineCmd.Flags().StringVarP(&timelineFilter, "filter", "f", "all", "Which items to show: all, experience or project")

	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(cmd *cobra.Command, _ []string) error {
	kind, err := timeline.ParseKind(timelineFilter)
	if err != nil {
		return err
	}

	resume := newResume()
	defer resume.Close()

	if _, err := resume.Refetch(cmd.Context()); err != nil {
		return rt.report("Timeline", err)
	}
	items := resume.Timeline()
	rt.printer.PrintTimeline(timeline.Filter(items, kind), timeline.Counts(items))
	return nil
}
