package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/resource"
	"github.com/jonathan/jobdash/internal/views"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show application totals and the top pros and cons",
	Long: `Loads the totals, top pros and top cons for the last N days in one batch.
With --watch the dashboard stays mounted and reloads on the refresh interval
until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

var (
	dashboardWatch      bool
	dashboardWindowDays int
	dashboardTopN       int
	dashboardRefresh    time.Duration
)

func init() {
	dashboardCmd.Flags().BoolVarP(&dashboardWatch, "watch", "w", false, "Keep refreshing until interrupted")
	dashboardCmd.Flags().IntVar(&dashboardWindowDays, "days", 0, "Aggregation window in days (defaults to config)")
	dashboardCmd.Flags().IntVar(&dashboardTopN, "top", 0, "Number of pros and cons (defaults to config)")
	dashboardCmd.Flags().DurationVar(&dashboardRefresh, "refresh", 0, "Refresh interval in watch mode (defaults to config)")

	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	opts := views.DashboardOptions{
		Options:         rt.viewOptions(),
		WindowDays:      rt.cfg.WindowDays,
		TopN:            rt.cfg.TopN,
		RefreshInterval: time.Duration(rt.cfg.RefreshInterval),
	}
	if cmd.Flags().Changed("days") {
		opts.WindowDays = dashboardWindowDays
	}
	if cmd.Flags().Changed("top") {
		opts.TopN = dashboardTopN
	}
	if cmd.Flags().Changed("refresh") {
		opts.RefreshInterval = dashboardRefresh
	}
	if !dashboardWatch {
		opts.RefreshInterval = 0
	}

	dash := views.NewDashboard(rt.api, opts)
	defer dash.Close()

	if !dashboardWatch {
		state, err := dash.Refetch(cmd.Context())
		if err != nil {
			return rt.report("Dashboard", err)
		}
		printDashboard(state)
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchDashboard(ctx, cmd, dash)
}

// watchDashboard prints every settled state until ctx ends.
func watchDashboard(ctx context.Context, cmd *cobra.Command, dash *views.Dashboard) error {
	unsubscribe := dash.Subscribe(func(state resource.State[views.DashboardData]) {
		switch state.Status {
		case resource.Ready:
			printDashboard(state)
		case resource.Failed:
			rt.printer.PrintError("Dashboard", state.Err)
		}
	})
	defer unsubscribe()

	if err := dash.Mount(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Watching dashboard, press Ctrl+C to stop")
	<-ctx.Done()
	return nil
}

func printDashboard(state resource.State[views.DashboardData]) {
	data := state.Data
	rt.printer.PrintDashboard(data.Window, data.Totals, data.Pros, data.Cons)
}
