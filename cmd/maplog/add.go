// ABOUTME: CLI command for recording a workout at a map location.
// ABOUTME: Drives the controller through a map click, the form, and a submit.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/maplog/internal/app"
	"github.com/harperreed/maplog/internal/models"
	"github.com/spf13/cobra"
)

var (
	addAt        string
	addDistance  float64
	addDuration  float64
	addCadence   float64
	addElevation float64
)

var addCmd = &cobra.Command{
	Use:     "add <running|cycling>",
	Aliases: []string{"a"},
	Short:   "Record a workout",
	Long: `Record a running or cycling workout at a map location.

REQUIRED:

  --at LAT,LNG     Where the workout happened
  --distance KM    Distance in kilometers
  --duration MIN   Duration in minutes

  running also needs --cadence (steps per minute)
  cycling also needs --elevation (elevation gain in meters)

All values must be positive numbers.

EXAMPLES:

  maplog add running --at 45.07,7.68 --distance 5.2 --duration 24 --cadence 178
  maplog add cycling --at 45.10,7.60 --distance 27 --duration 95 --elevation 523`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"running", "cycling"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(args[0])
		if err != nil {
			return err
		}
		if addAt == "" {
			return errors.New("--at is required")
		}
		at, err := models.ParseCoords(addAt)
		if err != nil {
			return err
		}

		extra := addCadence
		if kind == models.KindCycling {
			extra = addElevation
		}

		session, err := openSession(at)
		if err != nil {
			return err
		}

		w, err := session.Submit(kind, at, addDistance, addDuration, extra)
		if errors.Is(err, app.ErrInvalidInput) {
			return fmt.Errorf("%s: distance, duration and %s must be positive numbers", app.MsgInvalidInput, kind.ExtraName())
		}
		if w == nil {
			return fmt.Errorf("failed to add workout: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.GreenString("✓ Added %s", w.Describe()))
		fmt.Fprintf(out, "  %s %s\n", color.New(color.Faint).Sprint(w.ID), w.Coords)
		if err != nil {
			return fmt.Errorf("failed to save workout: %w", err)
		}
		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "location as LAT,LNG")
	addCmd.Flags().Float64VarP(&addDistance, "distance", "d", 0, "distance in km")
	addCmd.Flags().Float64VarP(&addDuration, "duration", "t", 0, "duration in minutes")
	addCmd.Flags().Float64Var(&addCadence, "cadence", 0, "cadence in steps per minute (running)")
	addCmd.Flags().Float64Var(&addElevation, "elevation", 0, "elevation gain in meters (cycling)")
	rootCmd.AddCommand(addCmd)
}
