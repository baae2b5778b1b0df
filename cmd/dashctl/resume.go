package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/types"
	"github.com/jonathan/jobdash/internal/views"
)

var experienceCmd = &cobra.Command{
	Use:   "experience",
	Short: "List and edit resume experiences",
	Long: `Experiences are addressed by their index in the list the server returns.
Run "experience list" first; every change reloads the list from the server.`,
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "List and edit resume projects",
	Long: `Projects are addressed by their index in the list the server returns.
Run "project list" first; every change reloads the list from the server.`,
}

var (
	expCompany     string
	expRole        string
	expDate        string
	expLocation    string
	expDescription string

	projTitle       string
	projDescription string
)

func init() {
	experienceList := &cobra.Command{Use: "list", Short: "List experiences", Args: cobra.NoArgs, RunE: runExperienceList}
	experienceAdd := &cobra.Command{Use: "add", Short: "Add an experience", Args: cobra.NoArgs, RunE: runExperienceAdd}
	experienceUpdate := &cobra.Command{Use: "update <index>", Short: "Update the experience at index", Args: cobra.ExactArgs(1), RunE: runExperienceUpdate}
	experienceDelete := &cobra.Command{Use: "delete <index>", Short: "Delete the experience at index", Args: cobra.ExactArgs(1), RunE: runExperienceDelete}

	for _, c := range []*cobra.Command{experienceAdd, experienceUpdate} {
		c.Flags().StringVar(&expCompany, "company", "", "Company name")
		c.Flags().StringVar(&expRole, "role", "", "Role or title")
		c.Flags().StringVar(&expDate, "date", "", `Date range, e.g. "2021 - Present"`)
		c.Flags().StringVar(&expLocation, "location", "", "Location")
		c.Flags().StringVar(&expDescription, "description", "", "Description")
	}
	experienceCmd.AddCommand(experienceList, experienceAdd, experienceUpdate, experienceDelete)

	projectList := &cobra.Command{Use: "list", Short: "List projects", Args: cobra.NoArgs, RunE: runProjectList}
	projectAdd := &cobra.Command{Use: "add", Short: "Add a project", Args: cobra.NoArgs, RunE: runProjectAdd}
	projectUpdate := &cobra.Command{Use: "update <index>", Short: "Update the project at index", Args: cobra.ExactArgs(1), RunE: runProjectUpdate}
	projectDelete := &cobra.Command{Use: "delete <index>", Short: "Delete the project at index", Args: cobra.ExactArgs(1), RunE: runProjectDelete}

	for _, c := range []*cobra.Command{projectAdd, projectUpdate} {
		c.Flags().StringVar(&projTitle, "title", "", "Project title")
		c.Flags().StringVar(&projDescription, "description", "", "Description")
	}
	projectCmd.AddCommand(projectList, projectAdd, projectUpdate, projectDelete)

	rootCmd.AddCommand(experienceCmd, projectCmd)
}

func newResume() *views.Resume {
	return views.NewResume(rt.api, rt.viewOptions())
}

func runExperienceList(cmd *cobra.Command, _ []string) error {
	resume := newResume()
	defer resume.Close()

	state, err := resume.Refetch(cmd.Context())
	if err != nil {
		return rt.report("Experience", err)
	}
	rt.printer.PrintExperiences(state.Data.Experiences)
	return nil
}

func runExperienceAdd(cmd *cobra.Command, _ []string) error {
	resume := newResume()
	defer resume.Close()

	outcome, err := resume.AddExperience(cmd.Context(), types.Experience{
		Company:     expCompany,
		Role:        expRole,
		Date:        expDate,
		Location:    expLocation,
		Description: expDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to add experience: %w", err)
	}
	rt.printer.PrintOutcome(outcome)
	rt.printer.PrintExperiences(resume.State().Data.Experiences)
	return nil
}

func runExperienceUpdate(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	resume := newResume()
	defer resume.Close()

	// Start from the stored record so only the given flags change.
	exp, err := resume.Experience(cmd.Context(), index)
	if err != nil {
		return fmt.Errorf("failed to load experience %d: %w", index, err)
	}
	flags := cmd.Flags()
	if flags.Changed("company") {
		exp.Company = expCompany
	}
	if flags.Changed("role") {
		exp.Role = expRole
	}
	if flags.Changed("date") {
		exp.Date = expDate
	}
	if flags.Changed("location") {
		exp.Location = expLocation
	}
	if flags.Changed("description") {
		exp.Description = expDescription
	}

	outcome, err := resume.UpdateExperience(cmd.Context(), index, exp)
	if err != nil {
		return fmt.Errorf("failed to update experience %d: %w", index, err)
	}
	rt.printer.PrintOutcome(outcome)
	rt.printer.PrintExperiences(resume.State().Data.Experiences)
	return nil
}

func runExperienceDelete(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	resume := newResume()
	defer resume.Close()

	outcome, err := resume.DeleteExperience(cmd.Context(), index)
	if err != nil {
		return fmt.Errorf("failed to delete experience %d: %w", index, err)
	}
	rt.printer.PrintOutcome(outcome)
	rt.printer.PrintExperiences(resume.State().Data.Experiences)
	return nil
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	resume := newResume()
	defer resume.Close()

	state, err := resume.Refetch(cmd.Context())
	if err != nil {
		return rt.report("Projects", err)
	}
	rt.printer.PrintProjects(state.Data.Projects)
	return nil
}

func runProjectAdd(cmd *cobra.Command, _ []string) error {
	resume := newResume()
	defer resume.Close()

	outcome, err := resume.AddProject(cmd.Context(), types.Project{Title: projTitle, Description: projDescription})
	if err != nil {
		return fmt.Errorf("failed to add project: %w", err)
	}
	rt.printer.PrintOutcome(outcome)
	rt.printer.PrintProjects(resume.State().Data.Projects)
	return nil
}

func runProjectUpdate(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	resume := newResume()
	defer resume.Close()

	proj, err := resume.Project(cmd.Context(), index)
	if err != nil {
		return fmt.Errorf("failed to load project %d: %w", index, err)
	}
	if cmd.Flags().Changed("title") {
		proj.Title = projTitle
	}
	if cmd.Flags().Changed("description") {
		proj.Description = projDescription
	}

	outcome, err := resume.UpdateProject(cmd.Context(), index, proj)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", index, err)
	}
	rt.printer.PrintOutcome(outcome)
	rt.printer.PrintProjects(resume.State().Data.Projects)
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	resume := newResume()
	defer resume.Close()

	outcome, err := resume.DeleteProject(cmd.Context(), index)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", index, err)
	}
	rt.printer.PrintOutcome(outcome)
	rt.printer.PrintProjects(resume.State().Data.Projects)
	return nil
}
