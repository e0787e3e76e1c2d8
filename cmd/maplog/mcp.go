// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs the stdio MCP server with every handler serialized on one event loop.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/maplog/internal/app"
	"github.com/harperreed/maplog/internal/mcp"
	"github.com/harperreed/maplog/internal/models"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "maplog": {
        "command": "maplog",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_workout      Record a workout at a map location
  list_workouts    List workouts newest first
  get_workout      Get one workout
  locate_workout   Center the map on a workout
  reset_workouts   Delete every workout (confirm=true)

AVAILABLE RESOURCES:

  maplog://workouts   Every workout in export format
  maplog://summary    Totals per kind and recent workouts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		loop := app.NewLoop(32)
		loopDone := make(chan struct{})
		go func() {
			_ = loop.Run(ctx)
			close(loopDone)
		}()
		defer func() {
			cancel()
			<-loopDone
		}()

		var serr error
		var server *mcp.Server
		if err := loop.Do(ctx, func() {
			session, err := openSession(models.Coords{})
			if err != nil {
				serr = err
				return
			}
			server, serr = mcp.NewServer(session, loop)
		}); err != nil {
			return err
		}
		if serr != nil {
			return serr
		}

		logger.Info("mcp server starting")
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
