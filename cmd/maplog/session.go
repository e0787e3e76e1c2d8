// ABOUTME: Builds the headless session each command drives.
// ABOUTME: Also holds the small formatting helpers shared by list and show.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harperreed/maplog/internal/headless"
	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/render"
)

// openSession starts a session over the open store. The map opens at the
// configured home position, or at fallback when none is set.
func openSession(fallback models.Coords) (*headless.Session, error) {
	home, ok, err := cfg.GetHome()
	if err != nil {
		return nil, err
	}
	if !ok {
		home = fallback
	}

	var events io.Writer
	if verbose {
		events = os.Stderr
	}

	s := headless.NewSession(store, headless.FixedLocation(home), events, logger)
	s.Controller.Start()
	return s, nil
}

func formatDetails(details []render.Detail) string {
	parts := make([]string, 0, len(details))
	for _, d := range details {
		parts = append(parts, fmt.Sprintf("%s %s %s", d.Icon, d.Value, d.Unit))
	}
	return strings.Join(parts, "  ")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}
