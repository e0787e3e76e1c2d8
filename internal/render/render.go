// ABOUTME: Pure rendering of workouts into list-entry and map-marker descriptors.
// ABOUTME: No I/O; callers decide how descriptors are drawn.
package render

import (
	"strconv"

	"github.com/harperreed/maplog/internal/models"
)

// Detail is one icon/value/unit cell of a list entry.
type Detail struct {
	Icon  string
	Value string
	Unit  string
}

// ListEntry describes one workout in the sidebar list.
type ListEntry struct {
	ID      string
	Kind    models.Kind
	Title   string
	Icon    string
	Details []Detail
}

// Popup options for a marker.
type Popup struct {
	Content      string
	MinWidth     int
	MaxWidth     int
	AutoClose    bool
	CloseOnClick bool
	ClassName    string
}

// Marker describes a map marker and its popup.
type Marker struct {
	WorkoutID string
	Coords    models.Coords
	Kind      models.Kind
	Popup     Popup
}

// RenderListEntry maps a workout to its list entry. The derived metric is
// rounded to two decimals.
func RenderListEntry(w *models.Workout) ListEntry {
	return ListEntry{
		ID:    w.ID,
		Kind:  w.Kind,
		Title: w.Describe(),
		Icon:  w.Kind.Icon(),
		Details: []Detail{
			{Icon: w.Kind.Icon(), Value: formatNumber(w.Distance), Unit: "km"},
			{Icon: "⏱", Value: formatNumber(w.Duration), Unit: "min"},
			{Icon: "⚡️", Value: strconv.FormatFloat(w.DerivedMetric(), 'f', 2, 64), Unit: w.Kind.MetricUnit()},
			{Icon: w.Kind.ExtraIcon(), Value: formatNumber(w.Extra()), Unit: w.Kind.ExtraUnit()},
		},
	}
}

// RenderMarker maps a workout to a marker whose popup stays open.
func RenderMarker(w *models.Workout) Marker {
	return Marker{
		WorkoutID: w.ID,
		Coords:    w.Coords,
		Kind:      w.Kind,
		Popup: Popup{
			Content:      w.Describe(),
			MinWidth:     100,
			MaxWidth:     250,
			AutoClose:    false,
			CloseOnClick: false,
			ClassName:    string(w.Kind) + "-popup",
		},
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
