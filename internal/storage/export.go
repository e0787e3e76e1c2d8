// ABOUTME: Export and import functionality for the workout log.
// ABOUTME: Supports JSON, YAML, Markdown, and GPX export formats.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/harperreed/maplog/internal/models"
	"github.com/tkrajina/gpxgo/gpx"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for the workout log.
type ExportData struct {
	Version    string    `json:"version" yaml:"version"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
	Tool       string    `json:"tool" yaml:"tool"`
	Workouts   []Record  `json:"workouts" yaml:"workouts"`
}

// NewExportData wraps the collection in an export envelope.
func NewExportData(workouts []*models.Workout) *ExportData {
	records := make([]Record, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, NewRecord(w))
	}
	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "maplog",
		Workouts:   records,
	}
}

// ExportJSON exports all workouts as indented JSON.
func ExportJSON(workouts []*models.Workout) ([]byte, error) {
	return json.MarshalIndent(NewExportData(workouts), "", "  ")
}

// ExportYAML exports all workouts as YAML, grouped by kind.
func ExportYAML(workouts []*models.Workout) ([]byte, error) {
	yamlData := struct {
		Version    string                   `yaml:"version"`
		ExportedAt string                   `yaml:"exported_at"`
		Tool       string                   `yaml:"tool"`
		Workouts   map[string][]yamlWorkout `yaml:"workouts"`
	}{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "maplog",
		Workouts:   make(map[string][]yamlWorkout),
	}

	for _, w := range workouts {
		yw := yamlWorkout{
			ID:          w.ID,
			Title:       w.Describe(),
			Date:        w.Date.Format(time.RFC3339),
			Coords:      w.Coords.String(),
			DistanceKM:  w.Distance,
			DurationMin: w.Duration,
		}
		switch w.Kind {
		case models.KindRunning:
			yw.PaceMinKM = round2(w.DerivedMetric())
			yw.CadenceSPM = w.Extra()
		case models.KindCycling:
			yw.SpeedKMH = round2(w.DerivedMetric())
			yw.ElevationGainM = w.Extra()
		}
		yamlData.Workouts[string(w.Kind)] = append(yamlData.Workouts[string(w.Kind)], yw)
	}

	return yaml.Marshal(yamlData)
}

type yamlWorkout struct {
	ID             string  `yaml:"id"`
	Title          string  `yaml:"title"`
	Date           string  `yaml:"date"`
	Coords         string  `yaml:"coords"`
	DistanceKM     float64 `yaml:"distance_km"`
	DurationMin    float64 `yaml:"duration_min"`
	PaceMinKM      float64 `yaml:"pace_min_km,omitempty"`
	CadenceSPM     float64 `yaml:"cadence_spm,omitempty"`
	SpeedKMH       float64 `yaml:"speed_kmh,omitempty"`
	ElevationGainM float64 `yaml:"elevation_gain_m,omitempty"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ExportMarkdown exports workouts as Markdown tables, one per kind.
// A nil kind includes every kind; a nil since includes every date.
func ExportMarkdown(workouts []*models.Workout, kind *models.Kind, since *time.Time) string {
	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Workout Log Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, k := range models.AllKinds {
		if kind != nil && *kind != k {
			continue
		}

		var rows []*models.Workout
		for _, w := range workouts {
			if w.Kind != k {
				continue
			}
			if since != nil && w.Date.Before(*since) {
				continue
			}
			rows = append(rows, w)
		}
		if len(rows) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("## %s\n\n", k.Title()))
		sb.WriteString(fmt.Sprintf("| Date | Location | Distance | Duration | %s | %s |\n",
			metricLabel(k), extraLabel(k)))
		sb.WriteString("|------|----------|----------|----------|------|------|\n")
		for _, w := range rows {
			sb.WriteString(fmt.Sprintf("| %s | %s | %g km | %g min | %.2f %s | %g %s |\n",
				w.Date.Format("2006-01-02 15:04"),
				w.Coords.String(),
				w.Distance, w.Duration,
				w.DerivedMetric(), k.MetricUnit(),
				w.Extra(), k.ExtraUnit()))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func metricLabel(k models.Kind) string {
	if k == models.KindRunning {
		return "Pace"
	}
	return "Speed"
}

func extraLabel(k models.Kind) string {
	if k == models.KindRunning {
		return "Cadence"
	}
	return "Elevation"
}

// ExportGPX exports each workout as a GPX waypoint at its location.
func ExportGPX(workouts []*models.Workout) ([]byte, error) {
	g := &gpx.GPX{
		Version: "1.1",
		Creator: "maplog",
	}
	for _, w := range workouts {
		g.Waypoints = append(g.Waypoints, gpx.GPXPoint{
			Point: gpx.Point{
				Latitude:  w.Coords.Lat,
				Longitude: w.Coords.Lng,
			},
			Timestamp: w.Date.UTC(),
			Name:      w.Describe(),
			Description: fmt.Sprintf("%g km in %g min, %.2f %s",
				w.Distance, w.Duration, w.DerivedMetric(), w.Kind.MetricUnit()),
			Comment: w.ID,
			Type:    string(w.Kind),
		})
	}

	data, err := g.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("render gpx: %w", err)
	}
	return data, nil
}

// ParseExport reads workouts from a JSON export or from a raw snapshot.
// Records that are unreadable, or that break the rules a submitted workout
// follows, are skipped and counted. It fails only when the file as a whole
// is unreadable.
func ParseExport(data []byte) ([]*models.Workout, int, error) {
	trimmed := bytes.TrimSpace(data)

	var raw []json.RawMessage
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, 0, fmt.Errorf("unmarshal snapshot: %w", err)
		}
	} else {
		var envelope struct {
			Workouts []json.RawMessage `json:"workouts"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, 0, fmt.Errorf("unmarshal JSON: %w", err)
		}
		raw = envelope.Workouts
	}

	workouts, skipped := decodeRecords(raw, Record.ImportedWorkout)
	return workouts, skipped, nil
}
