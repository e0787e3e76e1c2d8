// ABOUTME: CLI commands for exporting and importing workouts.
// ABOUTME: Supports JSON, YAML, Markdown, and GPX export formats and JSON import.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportKind   string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export workouts",
	Long: `Export workouts in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by kind (human-readable)
  markdown   Markdown tables per kind (for documentation/sharing)
  gpx        GPX waypoints, one per workout (for map tools)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --type, -t     Filter by kind (markdown only)
  --since        Only include workouts since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  maplog export json -o backup.json
  maplog export yaml
  maplog export markdown --type running --since 2025-01-01
  maplog export gpx -o workouts.gpx`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown", "gpx"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]
		workouts := store.Load()

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(workouts)
		case "yaml":
			data, err = storage.ExportYAML(workouts)
		case "markdown":
			var kind *models.Kind
			if exportKind != "" {
				k, err := models.ParseKind(exportKind)
				if err != nil {
					return err
				}
				kind = &k
			}
			var since *time.Time
			if exportSince != "" {
				t, err := time.ParseInLocation("2006-01-02", exportSince, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			data = []byte(storage.ExportMarkdown(workouts, kind, since))
		case "gpx":
			data, err = storage.ExportGPX(workouts)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, markdown, or gpx)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintln(out, color.GreenString("✓ Exported %d workouts to %s", len(workouts), exportOutput))
		} else {
			fmt.Fprintln(out, string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import workouts from JSON",
	Long: `Import workouts from a JSON export or a raw snapshot file.

Workouts whose ID is already stored are skipped; the rest are appended
in file order and saved once. Records that cannot be read, or that lack
positive distance, duration and cadence or elevation, are skipped and
counted.

EXAMPLES:

  maplog import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		workouts, skipped, err := storage.ParseExport(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		session, err := openSession(models.Coords{})
		if err != nil {
			return err
		}
		added, err := session.Controller.Import(workouts)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Imported %d of %d workouts from %s", added, len(workouts)+skipped, filename))
		if skipped > 0 {
			fmt.Fprintln(out, color.YellowString("⚠ Skipped %d invalid records", skipped))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportKind, "type", "t", "", "filter by kind (markdown only)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include workouts since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
