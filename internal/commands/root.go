package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"zenfolio/internal/config"
	"zenfolio/internal/logging"
)

var (
	globalConfig *config.Config
	logger       = zap.NewNop()

	// Persistent flag values
	tokenFlag  string
	debugFlag  bool
	configFlag string
)

var rootCmd = &cobra.Command{
	Use:   "zenfolio",
	Short: "ZenFolio - A portfolio browser for your Vercel deployments",
	Long: `ZenFolio (zenfolio) lists the projects deployed to a Vercel account, picks the
best public URL for each one and lets you search and filter them from the terminal.
A curated demo portfolio is available without a token.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Cancelling ctx aborts in-flight requests.
func Execute(ctx context.Context, cfg *config.Config) error {
	globalConfig = cfg
	defer func() { _ = logger.Sync() }()
	return rootCmd.ExecuteContext(ctx)
}

// setup applies the persistent flags and builds the logger
func setup(cmd *cobra.Command, args []string) error {
	if configFlag != "" {
		cfg, err := config.Load(configFlag)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		globalConfig = cfg
	}
	if globalConfig == nil {
		globalConfig = config.Default()
	}
	if debugFlag {
		globalConfig.Debug = true
	}

	l, err := logging.New(globalConfig.Debug)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("configuration loaded",
		zap.String("api_url", globalConfig.APIURL),
		zap.Int("limit", globalConfig.Limit),
		zap.String("team_id", globalConfig.TeamID),
	)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Vercel API token (overrides VERCEL_TOKEN and the saved token)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a config file (default ~/.zenfolio/config.json)")
}
