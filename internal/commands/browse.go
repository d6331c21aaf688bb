package commands

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zenfolio/internal/models"
	"zenfolio/internal/ui"
)

var (
	browseDemoFlag bool
	browseAllFlag  bool
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse projects interactively",
	Long: `Open an interactive browser with a search box and a framework selector.
Without a token, or with --demo, the curated demo portfolio is shown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, loader, err := browseSource()
		if err != nil {
			return err
		}

		p := tea.NewProgram(ui.NewModel(cmd.Context(), source, loader), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("error running browser: %w", err)
		}
		return nil
	},
}

// browseSource picks the live listing when a token is available, the demo portfolio otherwise
func browseSource() (string, ui.Loader, error) {
	demo := func(context.Context) ([]models.ProjectData, error) {
		return curatedProjects()
	}
	if browseDemoFlag {
		return "Curated demo", demo, nil
	}

	store, err := newTokenStore()
	if err != nil {
		return "", nil, err
	}
	if _, err := resolveToken(tokenFlag, store); err != nil {
		logger.Debug("no token, showing the demo portfolio", zap.Error(err))
		return "Curated demo", demo, nil
	}

	client, err := newClient()
	if err != nil {
		return "", nil, err
	}
	live := func(ctx context.Context) ([]models.ProjectData, error) {
		return fetchProjects(ctx, client, browseAllFlag)
	}
	return "Vercel", live, nil
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().BoolVar(&browseDemoFlag, "demo", false, "Show the curated demo portfolio")
	browseCmd.Flags().BoolVar(&browseAllFlag, "all", false, "Follow pagination to include every project")
}
