// ABOUTME: Headless map that records markers, popups, and pans.
// ABOUTME: Clicks are simulated with Click; events can be echoed to a writer.
package headless

import (
	"errors"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/maplog/internal/app"
	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/render"
)

// Pan is one recorded PanTo call.
type Pan struct {
	Coords  models.Coords
	Zoom    int
	Options app.PanOptions
}

// Map is an app.MapAdapter.
type Map struct {
	out     io.Writer
	InitErr error

	initialized bool
	center      models.Coords
	zoom        int
	onClick     func(models.Coords)
	markers     []render.Marker
	popups      map[app.MarkerHandle]string
	pans        []Pan
}

// NewMap creates an uninitialized map. A nil out keeps it silent.
func NewMap(out io.Writer) *Map {
	return &Map{out: out, popups: make(map[app.MarkerHandle]string)}
}

// Initialize centers the map and drops any previous markers.
func (m *Map) Initialize(center models.Coords, zoom int) error {
	if m.InitErr != nil {
		return m.InitErr
	}
	m.initialized = true
	m.center = center
	m.zoom = zoom
	m.markers = nil
	m.popups = make(map[app.MarkerHandle]string)
	return nil
}

// OnClick sets the handler Click calls.
func (m *Map) OnClick(handler func(models.Coords)) {
	m.onClick = handler
}

// AddMarker places a marker and returns its index as the handle.
func (m *Map) AddMarker(mk render.Marker) app.MarkerHandle {
	m.markers = append(m.markers, mk)
	h := app.MarkerHandle(len(m.markers) - 1)
	m.printf(color.FgGreen, "📍 %s %s\n", mk.Coords, mk.Popup.Content)
	return h
}

// SetPopupContent sets the popup text of marker h.
func (m *Map) SetPopupContent(h app.MarkerHandle, text string) {
	m.popups[h] = text
}

// PanTo records the pan and moves the center.
func (m *Map) PanTo(coords models.Coords, zoom int, opts app.PanOptions) {
	m.pans = append(m.pans, Pan{Coords: coords, Zoom: zoom, Options: opts})
	m.center = coords
	m.zoom = zoom
	m.printf(color.FgCyan, "↦ %s (zoom %d)\n", coords, zoom)
}

var errNotReady = errors.New("map not initialized")

// Click simulates a user click at coords.
func (m *Map) Click(coords models.Coords) error {
	if !m.initialized || m.onClick == nil {
		return errNotReady
	}
	m.onClick(coords)
	return nil
}

// Initialized reports whether Initialize has succeeded.
func (m *Map) Initialized() bool { return m.initialized }

// Center returns the current view center and zoom.
func (m *Map) Center() (models.Coords, int) { return m.center, m.zoom }

// Markers returns every marker placed since the last Initialize.
func (m *Map) Markers() []render.Marker {
	out := make([]render.Marker, len(m.markers))
	copy(out, m.markers)
	return out
}

// Popup returns the popup text bound to h.
func (m *Map) Popup(h app.MarkerHandle) string { return m.popups[h] }

// Pans returns every recorded pan.
func (m *Map) Pans() []Pan {
	out := make([]Pan, len(m.pans))
	copy(out, m.pans)
	return out
}

func (m *Map) printf(attr color.Attribute, format string, args ...interface{}) {
	if m.out == nil {
		return
	}
	color.New(attr).Fprintf(m.out, format, args...)
}
