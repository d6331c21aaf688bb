package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"zenfolio/internal/config"
	"zenfolio/internal/models"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage ZenFolio configuration",
	Long:  "View and update ZenFolio configuration settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long:  "Display a specific configuration value or the whole configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		// If no argument is provided, show all config
		if len(args) == 0 {
			fmt.Fprintln(out, "Current configuration:")
			for _, key := range configKeys {
				value, _ := configValue(globalConfig, key)
				fmt.Fprintf(out, "%s: %s\n", key, value)
			}
			return nil
		}

		value, err := configValue(globalConfig, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  "Update a configuration setting and save it to the global config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		// ZENFOLIO_* overrides stay out of the file
		cfg, err := config.LoadFile(path)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		old, err := configValue(cfg, args[0])
		if err != nil {
			return err
		}
		if err := setConfigValue(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := saveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s updated: %s -> %s\n", args[0], old, args[1])
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if _, err := os.Stat(path); err == nil {
			fmt.Fprintln(out, "Configuration file already exists.")
			fmt.Fprintln(out, "Use 'zenfolio config set' to modify existing configuration.")
			return nil
		}

		if err := saveConfig(config.Default()); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Fprintln(out, "Configuration initialized successfully.")
		fmt.Fprintf(out, "Configuration file created at: %s\n", path)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	Long:  "Display paths to the configuration and token files",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.GetGlobalConfigDir()
		if err != nil {
			return err
		}
		path, err := configPath()
		if err != nil {
			return err
		}
		tokenFile := models.NewTokenStore(dir).TokenFile

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Config paths:")
		fmt.Fprintf(out, "- Config directory: %s\n", dir)
		fmt.Fprintf(out, "- Config file: %s (%s)\n", path, existence(path))
		fmt.Fprintf(out, "- Auth token file: %s (%s)\n", tokenFile, existence(tokenFile))
		fmt.Fprintf(out, "- Snapshot file: %s (%s)\n", globalConfig.SnapshotPath, existence(globalConfig.SnapshotPath))
		return nil
	},
}

var configKeys = []string{"api_url", "limit", "team_id", "timeout_seconds", "snapshot_path", "debug"}

func configValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "api_url":
		return cfg.APIURL, nil
	case "limit":
		return strconv.Itoa(cfg.Limit), nil
	case "team_id":
		return cfg.TeamID, nil
	case "timeout_seconds":
		return strconv.Itoa(cfg.TimeoutSeconds), nil
	case "snapshot_path":
		return cfg.SnapshotPath, nil
	case "debug":
		return strconv.FormatBool(cfg.Debug), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

func setConfigValue(cfg *config.Config, key, value string) error {
	var err error
	switch key {
	case "api_url":
		cfg.APIURL = value
	case "limit":
		cfg.Limit, err = strconv.Atoi(value)
	case "team_id":
		cfg.TeamID = value
	case "timeout_seconds":
		cfg.TimeoutSeconds, err = strconv.Atoi(value)
	case "snapshot_path":
		cfg.SnapshotPath = value
	case "debug":
		cfg.Debug, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return cfg.Validate()
}

// configPath is the file set/init write to: --config when given, the global file otherwise
func configPath() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.GetGlobalConfigPath()
}

// saveConfig writes cfg where configPath points
func saveConfig(cfg *config.Config) error {
	if configFlag != "" {
		return cfg.Save(configFlag)
	}
	return config.SaveGlobalConfig(cfg)
}

func existence(path string) string {
	if _, err := os.Stat(path); err != nil {
		return "does not exist"
	}
	return "exists"
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)
}
