package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/views"
)

var routersCmd = &cobra.Command{
	Use:   "routers",
	Short: "List the available routers",
	Args:  cobra.NoArgs,
	RunE:  runRouters,
}

var routersSorted bool

func init() {
	routersCmd.Flags().BoolVar(&routersSorted, "sorted", false, "Sort router names alphabetically")

	rootCmd.AddCommand(routersCmd)
}

func runRouters(cmd *cobra.Command, _ []string) error {
	routers := views.NewRouters(rt.api, rt.viewOptions())
	defer routers.Close()

	state, err := routers.Refetch(cmd.Context())
	if err != nil {
		return rt.report("Routers", err)
	}

	names := state.Data
	if routersSorted {
		names = views.Sorted(names)
	}
	rt.printer.PrintRouters(names)
	return nil
}
