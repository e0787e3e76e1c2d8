// ABOUTME: CLI command for deleting every stored workout.
// ABOUTME: Asks for confirmation unless --force is given.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/maplog/internal/models"
	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every workout",
	Long: `Delete every stored workout and start over with an empty log.

CAUTION:

  This permanently deletes all workouts. There is no undo.
  Run 'maplog export json -o backup.json' first if you want a copy.

EXAMPLES:

  maplog reset            # Asks for confirmation
  maplog reset --force    # No prompt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := openSession(models.Coords{})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		n := len(session.Controller.Workouts())

		// An unreadable snapshot loads as empty but is still cleared.
		if !resetForce {
			if n == 0 {
				fmt.Fprint(out, "No workouts loaded. Clear stored data anyway? [y/N] ")
			} else {
				fmt.Fprintf(out, "Delete all %d workouts? [y/N] ", n)
			}
			response, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && response == "" {
				return fmt.Errorf("failed to read response: %w", err)
			}
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Fprintln(out, "Reset canceled.")
				return nil
			}
		}

		if err := session.Controller.Reset(); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		if n == 0 {
			fmt.Fprintln(out, "No workouts to delete.")
			return nil
		}
		fmt.Fprintln(out, color.YellowString("✗ Deleted %d workouts", n))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
