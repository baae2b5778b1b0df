package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/schemas"
	"github.com/jonathan/jobdash/internal/types"
	"github.com/jonathan/jobdash/internal/views"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List and edit job postings",
}

var (
	jobTitle         string
	jobDescription   string
	jobQuestionsPath string
)

func init() {
	jobsList := &cobra.Command{Use: "list", Short: "List job postings", Args: cobra.NoArgs, RunE: runJobsList}
	jobsCreate := &cobra.Command{
		Use:   "create",
		Short: "Create a job posting",
		Long: `Creates a job posting. Questions are read from a JSON array in --questions;
without it the posting asks for name and email.`,
		Args: cobra.NoArgs,
		RunE: runJobsCreate,
	}
	jobsUpdate := &cobra.Command{Use: "update <id>", Short: "Update a job posting", Args: cobra.ExactArgs(1), RunE: runJobsUpdate}
	jobsDelete := &cobra.Command{Use: "delete <id>", Short: "Delete a job posting", Args: cobra.ExactArgs(1), RunE: runJobsDelete}

	for _, c := range []*cobra.Command{jobsCreate, jobsUpdate} {
		c.Flags().StringVar(&jobTitle, "title", "", "Job title")
		c.Flags().StringVar(&jobDescription, "description", "", "Job description")
		c.Flags().StringVar(&jobQuestionsPath, "questions", "", "Path to a JSON array of questions")
	}
	jobsCmd.AddCommand(jobsList, jobsCreate, jobsUpdate, jobsDelete)

	rootCmd.AddCommand(jobsCmd)
}

func loadQuestions(path string) ([]types.JobQuestion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read questions file %s: %w", path, err)
	}
	var questions []types.JobQuestion
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions JSON: %w", err)
	}
	if err := schemas.Validate(schemas.Questions, data); err != nil {
		return nil, fmt.Errorf("invalid questions file %s: %w", path, err)
	}
	return questions, nil
}

func newJobs() *views.Jobs {
	return views.NewJobs(rt.jobs, rt.viewOptions())
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	jobs := newJobs()
	defer jobs.Close()

	state, err := jobs.Refetch(cmd.Context())
	if err != nil {
		return rt.report("Job postings", err)
	}
	rt.printer.PrintJobs(state.Data)
	return nil
}

func runJobsCreate(cmd *cobra.Command, _ []string) error {
	draft := types.JobDraft{
		Title:       jobTitle,
		Description: jobDescription,
		Questions:   types.DefaultJobQuestions(),
	}
	if jobQuestionsPath != "" {
		questions, err := loadQuestions(jobQuestionsPath)
		if err != nil {
			return err
		}
		draft.Questions = questions
	}

	jobs := newJobs()
	defer jobs.Close()

	outcome, id, err := jobs.Create(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	rt.printer.PrintOutcome(outcome)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Job ID: %s\n", id)
	rt.printer.PrintJobs(jobs.State().Data)
	return nil
}

func runJobsUpdate(cmd *cobra.Command, args []string) error {
	id := args[0]
	jobs := newJobs()
	defer jobs.Close()

	if _, err := jobs.Refetch(cmd.Context()); err != nil {
		return fmt.Errorf("failed to load job postings: %w", err)
	}
	posting, position, ok := jobs.Find(id)
	if !ok {
		return fmt.Errorf("job %s not found", id)
	}

	// Start from the stored posting so only the given flags change.
	draft := posting.Draft(position)
	if cmd.Flags().Changed("title") {
		draft.Title = jobTitle
	}
	if cmd.Flags().Changed("description") {
		draft.Description = jobDescription
	}
	if jobQuestionsPath != "" {
		questions, err := loadQuestions(jobQuestionsPath)
		if err != nil {
			return err
		}
		draft.Questions = questions
	}

	outcome, err := jobs.Update(cmd.Context(), id, draft)
	if err != nil {
		return fmt.Errorf("failed to update job %s: %w", id, err)
	}
	rt.printer.PrintOutcome(outcome)
	rt.printer.PrintJobs(jobs.State().Data)
	return nil
}

func runJobsDelete(cmd *cobra.Command, args []string) error {
	jobs := newJobs()
	defer jobs.Close()

	outcome, err := jobs.Delete(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to delete job %s: %w", args[0], err)
	}
	rt.printer.PrintOutcome(outcome)
	rt.printer.PrintJobs(jobs.State().Data)
	return nil
}
