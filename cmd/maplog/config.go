// ABOUTME: CLI commands for viewing and changing maplog configuration.
// ABOUTME: Shows the effective settings and writes backend, data_dir, and home.
package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/maplog/internal/config"
	"github.com/harperreed/maplog/internal/models"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long: `Show the effective configuration, including environment overrides.

ENVIRONMENT:

  MAPLOG_BACKEND    overrides backend
  MAPLOG_DATA_DIR   overrides data_dir
  MAPLOG_HOME       overrides home (LAT,LNG)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)

		home := "(not set)"
		if coords, ok, err := cfg.GetHome(); err != nil {
			home = color.RedString("invalid: %v", err)
		} else if ok {
			home = coords.String()
		}

		fmt.Fprintf(out, "%s %s\n", faint.Sprint("Config:  "), config.GetConfigPath())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("Backend: "), cfg.GetBackend())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("Data dir:"), cfg.GetDataDir())
		fmt.Fprintf(out, "%s %s\n", faint.Sprint("Home:    "), home)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value",
	Long: `Change a configuration value and save the config file.

KEYS:

  backend    sqlite, badger, file, or memory
  data_dir   data directory (supports ~)
  home       home position as LAT,LNG

EXAMPLES:

  maplog config set home 45.07,7.68
  maplog config set backend badger`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"backend", "data_dir", "home"},
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		switch key {
		case "backend":
			if !slices.Contains(config.Backends, value) {
				return fmt.Errorf("unknown backend: %q (use %s)", value, strings.Join(config.Backends, ", "))
			}
			cfg.Backend = value
		case "data_dir":
			cfg.DataDir = value
		case "home":
			coords, err := models.ParseCoords(value)
			if err != nil {
				return err
			}
			cfg.Home = coords.String()
		default:
			return fmt.Errorf("unknown config key: %s (use backend, data_dir, or home)", key)
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✓ Set %s", key))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
