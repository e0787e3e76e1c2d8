// ABOUTME: CLI command for listing workouts.
// ABOUTME: Prints the visible workout list newest first, with optional kind filter and limit.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/maplog/internal/models"
	"github.com/spf13/cobra"
)

var (
	listKind  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List workouts",
	Long: `List recorded workouts, newest first.

OUTPUT FORMAT:

  Each line shows: ID  ICON TITLE  DISTANCE  DURATION  PACE|SPEED  CADENCE|ELEVATION

  Use the ID with 'maplog show' or 'maplog goto'.

EXAMPLES:

  maplog list                    # Last 20 workouts
  maplog list --type cycling     # Only cycling
  maplog list -n 50              # Last 50 workouts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind *models.Kind
		if listKind != "" {
			k, err := models.ParseKind(listKind)
			if err != nil {
				return err
			}
			kind = &k
		}

		session, err := openSession(models.Coords{})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		shown := 0
		for _, e := range session.List.Entries() {
			if kind != nil && e.Kind != *kind {
				continue
			}
			if listLimit > 0 && shown >= listLimit {
				break
			}
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprint(e.ID),
				e.Icon,
				padRight(truncate(e.Title, 24), 24),
				formatDetails(e.Details))
			shown++
		}

		if shown == 0 {
			fmt.Fprintln(out, "No workouts found.")
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listKind, "type", "t", "", "filter by kind (running, cycling)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
