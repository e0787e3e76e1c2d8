// ABOUTME: CLI commands for one workout: show its details or center the map on it.
// ABOUTME: goto uses the same pan a click on the list entry performs.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/storage"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Long: `Show every detail of one workout, including the derived pace or speed.

EXAMPLES:

  maplog show 8000000123`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := findWorkout(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		fmt.Fprintf(out, "%s %s\n", w.Kind.Icon(), color.New(color.Bold).Sprint(w.Describe()))
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint("ID:      "), w.ID)
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint("Date:    "), w.Date.Format("2006-01-02 15:04"))
		fmt.Fprintf(out, "  %s %s\n", faint.Sprint("Location:"), w.Coords)
		fmt.Fprintf(out, "  %s %g km\n", faint.Sprint("Distance:"), w.Distance)
		fmt.Fprintf(out, "  %s %g min\n", faint.Sprint("Duration:"), w.Duration)
		fmt.Fprintf(out, "  %s %.2f %s\n", faint.Sprint(padRight(metricName(w.Kind)+":", 9)), w.DerivedMetric(), w.Kind.MetricUnit())
		fmt.Fprintf(out, "  %s %g %s\n", faint.Sprint(padRight(extraName(w.Kind)+":", 9)), w.Extra(), w.Kind.ExtraUnit())
		return nil
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <id>",
	Short: "Center the map on a workout",
	Long: `Center the map on a workout's location at the default zoom, with the
same animated pan a click on its list entry performs.

EXAMPLES:

  maplog goto 8000000123
  maplog -v goto 8000000123     # Also print map events`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := findWorkout(args[0])
		if err != nil {
			return err
		}

		session, err := openSession(w.Coords)
		if err != nil {
			return err
		}
		if !session.Controller.HandleListClick(w.ID) {
			return fmt.Errorf("map is not loaded")
		}

		center, zoom := session.Map.Center()
		fmt.Fprintf(cmd.OutOrStdout(), "↦ %s at %s (zoom %d)\n", w.Describe(), center, zoom)
		return nil
	},
}

func findWorkout(id string) (*models.Workout, error) {
	for _, w := range store.Load() {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, fmt.Errorf("workout %s: %w", id, storage.ErrNotFound)
}

func metricName(k models.Kind) string {
	if k == models.KindRunning {
		return "Pace"
	}
	return "Speed"
}

func extraName(k models.Kind) string {
	if k == models.KindRunning {
		return "Cadence"
	}
	return "Climb"
}

func init() {
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(gotoCmd)
}
