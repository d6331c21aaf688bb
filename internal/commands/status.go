package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zenfolio/internal/models"
)

// statusOrder is the order groups are printed in
var statusOrder = []models.Status{
	models.StatusError,
	models.StatusBuilding,
	models.StatusReady,
	models.StatusUnknown,
}

var statusHeadings = map[models.Status]string{
	models.StatusError:    "Failed deployments",
	models.StatusBuilding: "Building",
	models.StatusReady:    "Ready",
	models.StatusUnknown:  "Unknown state",
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show deployment readiness",
	Long:  `Group projects by the readiness state of their production (or latest) deployment.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		curated, _ := cmd.Flags().GetBool("curated")
		all, _ := cmd.Flags().GetBool("all")

		projects, err := loadProjects(cmd.Context(), curated, all)
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), groupByStatus(projects))
		return nil
	},
}

// groupByStatus buckets projects by readiness, keeping their order within each bucket
func groupByStatus(projects []models.ProjectData) map[models.Status][]models.ProjectData {
	groups := make(map[models.Status][]models.ProjectData)
	for _, p := range projects {
		groups[p.Status] = append(groups[p.Status], p)
	}
	return groups
}

func printStatus(w io.Writer, groups map[models.Status][]models.ProjectData) {
	total := 0
	for _, s := range statusOrder {
		total += len(groups[s])
	}
	if total == 0 {
		fmt.Fprintln(w, "No projects found in this realm.")
		return
	}

	for _, s := range statusOrder {
		projects := groups[s]
		if len(projects) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d):\n", statusHeadings[s], len(projects))
		c := statusColor(s)
		for _, p := range projects {
			c.Fprintf(w, "\t%-10s %s\n", s, p.Name)
			fmt.Fprintf(w, "\t           %s\n", p.URL)
		}
		fmt.Fprintln(w)
	}

	ready := len(groups[models.StatusReady])
	fmt.Fprintf(w, "%d of %d projects ready\n", ready, total)
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().Bool("curated", false, "Use the curated demo portfolio instead of the API")
	statusCmd.Flags().Bool("all", false, "Follow pagination to include every project")
}
