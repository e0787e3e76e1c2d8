// ABOUTME: MCP tool implementations for map-pinned workouts.
// ABOUTME: Provides add, list, get, locate, and reset operations through the controller.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/maplog/internal/app"
	"github.com/harperreed/maplog/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Record a running or cycling workout at a map location",
	}, s.handleAddWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workouts newest first, optionally filtered by kind",
	}, s.handleListWorkouts)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get a workout by ID",
	}, s.handleGetWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "locate_workout",
		Description: "Pan the map to a workout's location",
	}, s.handleLocateWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "reset_workouts",
		Description: "Delete every stored workout",
	}, s.handleResetWorkouts)
}

// Tool input/output types

type addWorkoutInput struct {
	Kind          string  `json:"kind" jsonschema:"workout kind: running or cycling"`
	Lat           float64 `json:"lat" jsonschema:"latitude of the workout location"`
	Lng           float64 `json:"lng" jsonschema:"longitude of the workout location"`
	Distance      float64 `json:"distance" jsonschema:"distance in km"`
	Duration      float64 `json:"duration" jsonschema:"duration in minutes"`
	Cadence       float64 `json:"cadence,omitempty" jsonschema:"steps per minute, required for running"`
	ElevationGain float64 `json:"elevation_gain,omitempty" jsonschema:"elevation gain in meters, required for cycling"`
}

type workoutOutput struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Metric      float64 `json:"metric"`
	MetricUnit  string  `json:"metric_unit"`
	Extra       float64 `json:"extra"`
	ExtraUnit   string  `json:"extra_unit"`
	Message     string  `json:"message,omitempty"`
}

type listWorkoutsInput struct {
	Kind  string `json:"kind,omitempty" jsonschema:"filter by kind: running or cycling"`
	Limit int    `json:"limit,omitempty" jsonschema:"max results (default 20)"`
}

type listWorkoutsOutput struct {
	Workouts []workoutOutput `json:"workouts"`
	Count    int             `json:"count"`
}

type idInput struct {
	ID string `json:"id" jsonschema:"workout ID"`
}

type locateOutput struct {
	ID      string  `json:"id"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Zoom    int     `json:"zoom"`
	Message string  `json:"message"`
}

type resetInput struct {
	Confirm bool `json:"confirm" jsonschema:"must be true to delete every workout"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

func toOutput(w *models.Workout) workoutOutput {
	return workoutOutput{
		ID:          w.ID,
		Kind:        string(w.Kind),
		Description: w.Describe(),
		Date:        w.Date.Format(time.RFC3339),
		Lat:         w.Coords.Lat,
		Lng:         w.Coords.Lng,
		Distance:    w.Distance,
		Duration:    w.Duration,
		Metric:      w.DerivedMetric(),
		MetricUnit:  w.Kind.MetricUnit(),
		Extra:       w.Extra(),
		ExtraUnit:   w.Kind.ExtraUnit(),
	}
}

// Tool handlers

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	kind, err := models.ParseKind(input.Kind)
	if err != nil {
		return nil, workoutOutput{}, err
	}
	extra := input.Cadence
	if kind == models.KindCycling {
		extra = input.ElevationGain
	}
	at := models.Coords{Lat: input.Lat, Lng: input.Lng}

	var w *models.Workout
	var submitErr error
	if err := s.do(ctx, func() {
		w, submitErr = s.session.Submit(kind, at, input.Distance, input.Duration, extra)
	}); err != nil {
		return nil, workoutOutput{}, err
	}
	if submitErr != nil && w == nil {
		if errors.Is(submitErr, app.ErrInvalidInput) {
			return nil, workoutOutput{}, fmt.Errorf("%w: distance, duration and %s must be positive numbers", submitErr, kind.ExtraName())
		}
		return nil, workoutOutput{}, submitErr
	}

	out := toOutput(w)
	out.Message = fmt.Sprintf("Recorded %s", w.Describe())
	if submitErr != nil {
		out.Message = fmt.Sprintf("Recorded %s but saving failed: %v", w.Describe(), submitErr)
	}
	return nil, out, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, listWorkoutsOutput, error) {
	var filter *models.Kind
	if input.Kind != "" {
		k, err := models.ParseKind(input.Kind)
		if err != nil {
			return nil, listWorkoutsOutput{}, err
		}
		filter = &k
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	var all []*models.Workout
	if err := s.do(ctx, func() { all = s.session.Controller.Workouts() }); err != nil {
		return nil, listWorkoutsOutput{}, err
	}

	out := listWorkoutsOutput{Workouts: []workoutOutput{}}
	for i := len(all) - 1; i >= 0 && len(out.Workouts) < limit; i-- {
		if filter != nil && all[i].Kind != *filter {
			continue
		}
		out.Workouts = append(out.Workouts, toOutput(all[i]))
	}
	out.Count = len(out.Workouts)
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, workoutOutput, error) {
	var w *models.Workout
	if err := s.do(ctx, func() { w = s.session.Controller.Find(input.ID) }); err != nil {
		return nil, workoutOutput{}, err
	}
	if w == nil {
		return nil, workoutOutput{}, fmt.Errorf("workout not found: %s", input.ID)
	}
	return nil, toOutput(w), nil
}

func (s *Server) handleLocateWorkout(ctx context.Context, req *mcp.CallToolRequest, input idInput) (*mcp.CallToolResult, locateOutput, error) {
	var w *models.Workout
	var panned bool
	if err := s.do(ctx, func() {
		w = s.session.Controller.Find(input.ID)
		panned = s.session.Controller.HandleListClick(input.ID)
	}); err != nil {
		return nil, locateOutput{}, err
	}
	if w == nil {
		return nil, locateOutput{}, fmt.Errorf("workout not found: %s", input.ID)
	}
	if !panned {
		return nil, locateOutput{}, errors.New("map is not loaded")
	}

	return nil, locateOutput{
		ID:      w.ID,
		Lat:     w.Coords.Lat,
		Lng:     w.Coords.Lng,
		Zoom:    app.DefaultZoom,
		Message: fmt.Sprintf("Map centered on %s", w.Describe()),
	}, nil
}

func (s *Server) handleResetWorkouts(ctx context.Context, req *mcp.CallToolRequest, input resetInput) (*mcp.CallToolResult, simpleOutput, error) {
	if !input.Confirm {
		return nil, simpleOutput{}, errors.New("reset requires confirm=true")
	}

	var n int
	var resetErr error
	if err := s.do(ctx, func() {
		n = len(s.session.Controller.Workouts())
		resetErr = s.session.Controller.Reset()
	}); err != nil {
		return nil, simpleOutput{}, err
	}
	if resetErr != nil {
		return nil, simpleOutput{}, resetErr
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted %d workouts", n)}, nil
}
