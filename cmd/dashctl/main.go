// Package main provides the dashctl CLI for the job-application dashboards.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Job application dashboard client",
	Long: `dashctl reads and edits the job-application dashboards: aggregate totals,
reasons, routers, the resume (experiences, projects and their timeline) and
the hiring side (job postings and candidate analytics).

Configuration comes from --config, the environment (.env is loaded) and flags,
with flags taking precedence.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err unless a command already rendered it.
func printError(w io.Writer, err error) {
	var reported *reportedError
	if errors.As(err, &reported) {
		return
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
}
