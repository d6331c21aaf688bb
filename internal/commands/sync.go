package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zenfolio/internal/catalog"
	"zenfolio/internal/models"
)

var (
	syncOutFlag   string
	syncQuietFlag bool
	syncAllFlag   bool
)

// errMissingToken is returned by sync when no token can be found
var errMissingToken = errors.New("missing " + TokenEnv)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Write a snapshot of the live projects",
	Long: `Fetch and normalize the projects, write them to the snapshot file as JSON
(every entry with featured: false) and print a catalog block that can be
pasted into the curated portfolio. Set featured: true only for public projects.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newTokenStore()
		if err != nil {
			return err
		}
		if _, err := resolveToken(tokenFlag, store); err != nil {
			if errors.Is(err, models.ErrNotLoggedIn) {
				return fmt.Errorf("%w (example: %s=xxxx zenfolio sync)", errMissingToken, TokenEnv)
			}
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		projects, err := fetchProjects(cmd.Context(), client, syncAllFlag)
		if err != nil {
			return fmt.Errorf("failed to fetch projects: %w", friendlyError(err))
		}

		out := syncOutFlag
		if out == "" {
			out = globalConfig.SnapshotPath
		}
		entries := snapshotEntries(projects)
		if err := writeSnapshot(out, entries); err != nil {
			return err
		}
		logger.Debug("snapshot written", zap.String("path", out), zap.Int("projects", len(entries)))

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Wrote %d projects to %s\n", len(entries), out)
		if syncQuietFlag {
			return nil
		}

		block, err := catalog.Marshal(entries)
		if err != nil {
			return fmt.Errorf("error rendering catalog block: %w", err)
		}
		fmt.Fprintln(w, "\nCopy this into the curated catalog (then set featured: true only for public projects):")
		fmt.Fprintln(w)
		fmt.Fprint(w, string(block))
		return nil
	},
}

// snapshotEntries marks every project as not featured
func snapshotEntries(projects []models.ProjectData) []models.CuratedProject {
	entries := make([]models.CuratedProject, len(projects))
	for i, p := range projects {
		entries[i] = models.CuratedProject{ProjectData: p, Featured: false}
	}
	return entries
}

// renderSnapshot encodes entries with two-space indentation and a trailing newline
func renderSnapshot(entries []models.CuratedProject) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSnapshot(path string, entries []models.CuratedProject) error {
	data, err := renderSnapshot(entries)
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && strings.TrimSpace(dir) != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating snapshot directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing snapshot: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVarP(&syncOutFlag, "out", "o", "", "Snapshot file (default from snapshot_path)")
	syncCmd.Flags().BoolVar(&syncQuietFlag, "quiet", false, "Do not print the catalog block")
	syncCmd.Flags().BoolVar(&syncAllFlag, "all", false, "Follow pagination to include every project")
}
