// ABOUTME: Root Cobra command for maplog CLI.
// ABOUTME: Loads config, sets up logging, and opens the snapshot store via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/harperreed/maplog/internal/config"
	"github.com/harperreed/maplog/internal/storage"
	"github.com/spf13/cobra"
)

var (
	cfg     *config.Config
	store   *storage.SnapshotStore
	logger  *slog.Logger
	verbose bool
)

// Commands that manage their own storage or need none.
var skipStore = map[string]bool{
	"help":    true,
	"config":  true,
	"set":     true,
	"migrate": true,
}

var rootCmd = &cobra.Command{
	Use:   "maplog",
	Short: "Workout log pinned to map locations",
	Long: `Maplog records running and cycling workouts at the place they happened.

Each workout stores where it took place, how far and how long you went,
and either your cadence (running) or elevation gain (cycling). Pace and
speed are computed for you.

QUICK START:

  $ maplog add running --at 45.07,7.68 --distance 5 --duration 26 --cadence 172
  $ maplog add cycling --at 45.10,7.60 --distance 27 --duration 95 --elevation 523
  $ maplog list                      # Newest first
  $ maplog show 8000000123           # Full details
  $ maplog goto 8000000123           # Center the map on a workout

HOME POSITION:

  The map opens at your home position. Set it once:

  $ maplog config set home 45.07,7.68

  or per invocation with MAPLOG_HOME=45.07,7.68. Without one, the map
  opens at the workout you are adding.

MCP INTEGRATION:

  Run 'maplog mcp' to start the Model Context Protocol server for use with
  Claude Desktop or other MCP-compatible AI assistants:

  {
    "mcpServers": {
      "maplog": { "command": "maplog", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Workouts are stored as a single snapshot. The default backend is SQLite
  at ~/.local/share/maplog/maplog.db. Choose another backend with
  'maplog config set backend badger|file|memory' or MAPLOG_BACKEND.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(os.Stderr, verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if skipStore[cmd.Name()] {
			return nil
		}

		// PersistentPostRunE is skipped when RunE fails.
		if store != nil {
			_ = store.Close()
		}
		store, err = cfg.OpenStore(logger)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Debug("storage opened", "backend", cfg.GetBackend(), "data_dir", cfg.GetDataDir())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			err := store.Close()
			store = nil
			return err
		}
		return nil
	},
}

// newLogger returns a text logger on w. Only warnings are shown unless verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "show debug logs and map events on stderr")
}
