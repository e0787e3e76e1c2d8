// ABOUTME: MCP server setup for the maplog workout store.
// ABOUTME: Wraps the MCP server around a headless session whose handlers run on one event loop.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/maplog/internal/app"
	"github.com/harperreed/maplog/internal/headless"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with controller access.
type Server struct {
	mcpServer *mcp.Server
	session   *headless.Session
	loop      *app.Loop
}

// NewServer creates a new MCP server over session. Every tool and resource
// handler runs on loop, which the caller must be running.
func NewServer(session *headless.Session, loop *app.Loop) (*Server, error) {
	if session == nil || loop == nil {
		return nil, errors.New("mcp server needs a session and a loop")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "maplog",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		session:   session,
		loop:      loop,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// do runs fn on the controller loop.
func (s *Server) do(ctx context.Context, fn func()) error {
	return s.loop.Do(ctx, fn)
}
