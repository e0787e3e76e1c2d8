// ABOUTME: MCP resource implementations for map-pinned workouts.
// ABOUTME: Provides the maplog://workouts export and the maplog://summary dashboard.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	workoutsURI = "maplog://workouts"
	summaryURI  = "maplog://summary"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         workoutsURI,
		Name:        "Workouts",
		Description: "Every stored workout in export format",
		MIMEType:    "application/json",
	}, s.handleWorkoutsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Workout Summary",
		Description: "Totals per workout kind plus the most recent workouts",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

type kindSummary struct {
	Count         int     `json:"count"`
	TotalDistance float64 `json:"total_distance_km"`
	TotalDuration float64 `json:"total_duration_min"`
	AverageMetric float64 `json:"average_metric"`
	MetricUnit    string  `json:"metric_unit"`
}

// Resource handlers

func (s *Server) handleWorkoutsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var workouts []*models.Workout
	if err := s.do(ctx, func() { workouts = s.session.Controller.Workouts() }); err != nil {
		return nil, err
	}

	data, err := storage.ExportJSON(workouts)
	if err != nil {
		return nil, fmt.Errorf("failed to export workouts: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      workoutsURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var workouts []*models.Workout
	var state string
	if err := s.do(ctx, func() {
		workouts = s.session.Controller.Workouts()
		state = s.session.Controller.State().String()
	}); err != nil {
		return nil, err
	}

	kinds := make(map[string]kindSummary)
	for _, k := range models.AllKinds {
		kinds[string(k)] = kindSummary{MetricUnit: k.MetricUnit()}
	}
	metricSums := make(map[string]float64)
	for _, w := range workouts {
		ks := kinds[string(w.Kind)]
		ks.Count++
		ks.TotalDistance += w.Distance
		ks.TotalDuration += w.Duration
		metricSums[string(w.Kind)] += w.DerivedMetric()
		kinds[string(w.Kind)] = ks
	}
	for k, ks := range kinds {
		if ks.Count > 0 {
			ks.AverageMetric = metricSums[k] / float64(ks.Count)
			kinds[k] = ks
		}
	}

	recent := []workoutOutput{}
	for i := len(workouts) - 1; i >= 0 && len(recent) < 5; i-- {
		recent = append(recent, toOutput(workouts[i]))
	}

	result := map[string]interface{}{
		"generated_at":    time.Now().Format(time.RFC3339),
		"map_state":       state,
		"total_workouts":  len(workouts),
		"kinds":           kinds,
		"recent_workouts": recent,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      summaryURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
