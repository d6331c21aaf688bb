package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"zenfolio/internal/models"
	"zenfolio/internal/portfolio"
	"zenfolio/internal/util"
)

var (
	// Variables to hold flag values
	queryFlag     string
	frameworkFlag string
	curatedFlag   bool
	allPagesFlag  bool
	jsonFlag      bool
)

var projectCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project"},
	Short:   "List and inspect projects",
	Long:    "List the deployed projects with their best public URL, or show one of them",
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List projects, optionally narrowed by a search query (matched against the name and
framework, case-insensitively) and an exact framework.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := loadProjects(cmd.Context(), curatedFlag, allPagesFlag)
		if err != nil {
			return err
		}

		visible := portfolio.FilterProjects(projects, queryFlag, frameworkFlag)
		if jsonFlag {
			return writeJSON(cmd.OutOrStdout(), visible)
		}
		if len(visible) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No projects found in this realm.")
			return nil
		}
		printProjects(cmd.OutOrStdout(), visible, time.Now())
		return nil
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project_id|name]",
	Short: "Show project details",
	Long:  "Show detailed information about a project, looked up by ID or by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := loadProjects(cmd.Context(), curatedFlag, true)
		if err != nil {
			return err
		}

		project, ok := findProject(projects, args[0])
		if !ok {
			return fmt.Errorf("project %q not found", args[0])
		}
		if jsonFlag {
			return writeJSON(cmd.OutOrStdout(), project)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Project Details:\n\n")
		fmt.Fprintf(out, "ID: %s\n", project.ID)
		fmt.Fprintf(out, "Name: %s\n", project.Name)
		fmt.Fprintf(out, "URL: %s\n", project.URL)
		fmt.Fprintf(out, "Framework: %s\n", project.Framework)
		fmt.Fprintf(out, "Status: %s\n", statusColor(project.Status).Sprint(project.Status))
		fmt.Fprintf(out, "Updated: %s (%s)\n", project.UpdatedAt, util.FormatAge(project.UpdatedAt, time.Now()))
		return nil
	},
}

var frameworksCmd = &cobra.Command{
	Use:   "frameworks",
	Short: "List the frameworks in use",
	Long:  `Print the framework selector options: "All" followed by every framework in use, sorted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := loadProjects(cmd.Context(), curatedFlag, allPagesFlag)
		if err != nil {
			return err
		}
		for _, fw := range portfolio.Frameworks(projects) {
			fmt.Fprintln(cmd.OutOrStdout(), fw)
		}
		return nil
	},
}

// findProject looks a project up by ID when ref looks like one, by name otherwise
func findProject(projects []models.ProjectData, ref string) (models.ProjectData, bool) {
	byID := util.IsProjectID(ref)
	for _, p := range projects {
		if byID && p.ID == ref || !byID && p.Name == ref {
			return p, true
		}
	}
	return models.ProjectData{}, false
}

func printProjects(w io.Writer, projects []models.ProjectData, now time.Time) {
	fmt.Fprintf(w, "Projects (%s):\n\n", humanize.Comma(int64(len(projects))))
	for i, p := range projects {
		fmt.Fprintf(w, "%d. %s %s\n", i+1, p.Name, statusColor(p.Status).Sprintf("[%s]", p.Status))
		fmt.Fprintf(w, "   URL: %s\n", p.URL)
		fmt.Fprintf(w, "   Framework: %s\n", p.Framework)
		fmt.Fprintf(w, "   Updated: %s\n", util.FormatAge(p.UpdatedAt, now))
		fmt.Fprintln(w)
	}
}

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.StatusReady:
		return color.New(color.FgGreen)
	case models.StatusBuilding:
		return color.New(color.FgYellow)
	case models.StatusError:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgHiBlack)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(frameworksCmd)

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)

	projectCmd.PersistentFlags().BoolVar(&curatedFlag, "curated", false, "Use the curated demo portfolio instead of the API")
	projectCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print JSON")

	projectListCmd.Flags().StringVarP(&queryFlag, "query", "q", "", "Search by name or framework")
	projectListCmd.Flags().StringVarP(&frameworkFlag, "framework", "f", portfolio.AllFrameworks, "Only show this framework")
	projectListCmd.Flags().BoolVar(&allPagesFlag, "all", false, "Follow pagination to list every project")

	frameworksCmd.Flags().BoolVar(&curatedFlag, "curated", false, "Use the curated demo portfolio instead of the API")
	frameworksCmd.Flags().BoolVar(&allPagesFlag, "all", false, "Follow pagination to list every project")
}
