// ABOUTME: Collaborator interfaces the controller drives: map, location, form, list, alerts, store.
// ABOUTME: None of them has access to the controller's workout collection.
package app

import (
	"time"

	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/render"
)

// MarkerHandle identifies a marker placed by a MapAdapter.
type MarkerHandle int

// PanOptions controls the pan/zoom animation.
type PanOptions struct {
	Animate  bool
	Duration time.Duration
}

// MapAdapter renders the map, markers, and popups.
type MapAdapter interface {
	Initialize(center models.Coords, zoom int) error
	OnClick(handler func(models.Coords))
	AddMarker(m render.Marker) MarkerHandle
	SetPopupContent(h MarkerHandle, text string)
	PanTo(coords models.Coords, zoom int, opts PanOptions)
}

// LocationProvider reports the user's position through exactly one of
// the two callbacks.
type LocationProvider interface {
	CurrentPosition(onSuccess func(models.Coords), onError func(error))
}

// Field names a form input.
type Field string

const (
	FieldDistance  Field = "distance"
	FieldDuration  Field = "duration"
	FieldCadence   Field = "cadence"
	FieldElevation Field = "elevation"
)

// FormUI manages input visibility and values.
type FormUI interface {
	Kind() models.Kind
	SetKind(k models.Kind)
	Value(f Field) string
	SetValue(f Field, v string)
	Show()
	Hide()
	FocusDistance()
	// ShowGroup shows the cadence or elevation input for kind and hides the other.
	ShowGroup(k models.Kind)
}

// ListView is the visible workout list.
type ListView interface {
	InsertAfterForm(e render.ListEntry)
	Clear()
}

// Alerter shows a message to the user.
type Alerter interface {
	Alert(msg string)
}

// Store persists the whole workout collection.
type Store interface {
	Save(workouts []*models.Workout) error
	Load() []*models.Workout
	Clear() error
}
