// ABOUTME: CLI command for moving the workout snapshot between storage backends.
// ABOUTME: Copies from one backend to another under the same data directory.
package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/maplog/internal/config"
	"github.com/harperreed/maplog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy workouts to another storage backend",
	Long: `Copy the workout snapshot from one storage backend to another.

BACKENDS:

  sqlite   maplog.db in the data directory (default)
  badger   badger/ in the data directory
  file     snapshots/workouts.json in the data directory

The destination snapshot is replaced. Switch to the new backend afterwards
with 'maplog config set backend <name>'.

USAGE:

  maplog migrate --to badger --dry-run   # Preview
  maplog migrate --to badger             # Copy sqlite -> badger
  maplog migrate --from badger --to file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateTo == "" {
			return errors.New("--to is required")
		}
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %q", migrateFrom)
		}
		if migrateFrom == "memory" || migrateTo == "memory" {
			return errors.New("the memory backend does not persist and cannot be migrated")
		}

		out := cmd.OutOrStdout()
		dataDir := cfg.GetDataDir()

		if migrateTo == "badger" && !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(filepath.Join(dataDir, "badger"))
			if err != nil {
				return err
			}
			if nonEmpty {
				return errors.New("destination badger directory is not empty (use --force to replace its snapshot)")
			}
		}

		src, err := config.OpenBackend(migrateFrom, dataDir)
		if err != nil {
			return fmt.Errorf("open source: %w", err)
		}
		defer src.Close()

		if migrateDryRun {
			preview := storage.NewSnapshotStore(src, storage.WithLogger(logger)).Load()
			fmt.Fprintln(out, color.YellowString("Dry run mode - no changes will be made"))
			fmt.Fprintf(out, "Would copy %d workouts from %s to %s\n", len(preview), migrateFrom, migrateTo)
			return nil
		}

		dst, err := config.OpenBackend(migrateTo, dataDir)
		if err != nil {
			return fmt.Errorf("open destination: %w", err)
		}
		defer dst.Close()

		summary, err := storage.MigrateData(src, dst, storage.SnapshotKey)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		fmt.Fprintln(out, color.GreenString("✓ Copied %d workouts from %s to %s", summary.Workouts, migrateFrom, migrateTo))
		fmt.Fprintf(out, "  Run 'maplog config set backend %s' to switch.\n", migrateTo)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "sqlite", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "replace an existing destination snapshot")
	rootCmd.AddCommand(migrateCmd)
}
