// ABOUTME: Controller owns the workout collection and drives map, form, list, and store.
// ABOUTME: Implements the AwaitingMap -> MapReady -> FormHidden <-> FormVisible state machine.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/render"
)

// State is the controller's interaction state.
type State int

const (
	AwaitingMap State = iota
	MapReady
	FormHidden
	FormVisible
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case AwaitingMap:
		return "awaiting_map"
	case MapReady:
		return "map_ready"
	case FormHidden:
		return "form_hidden"
	case FormVisible:
		return "form_visible"
	}
	return "unknown"
}

const (
	// DefaultZoom is the map zoom used on load and when panning to a workout.
	DefaultZoom = 15
	// DefaultPanDuration is the pan animation length.
	DefaultPanDuration = 800 * time.Millisecond
	// CancelKey closes the form.
	CancelKey = "Escape"
)

// Alert messages shown to the user.
const (
	MsgLocationFailed = "Could not get your position"
	MsgInvalidInput   = "Inputs have to be positive numbers!"
	MsgNoLocation     = "Click on the map to choose where the workout happened"
	MsgSaveFailed     = "Could not save your workouts"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoPendingLocation = errors.New("no map location selected")
	ErrFormHidden        = errors.New("workout form is not open")
)

// Deps are the collaborators a Controller drives.
type Deps struct {
	Map      MapAdapter
	Location LocationProvider
	Form     FormUI
	List     ListView
	Alerts   Alerter
	Store    Store
	Keys     *KeyHub
	Logger   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithZoom sets the map zoom level.
func WithZoom(zoom int) Option {
	return func(c *Controller) { c.zoom = zoom }
}

// WithPanDuration sets the pan animation length.
func WithPanDuration(d time.Duration) Option {
	return func(c *Controller) { c.panDuration = d }
}

// Controller is the event-driven orchestrator. Its methods are not safe for
// concurrent use; run them on a Loop when events can arrive concurrently.
type Controller struct {
	mapAdapter MapAdapter
	location   LocationProvider
	form       FormUI
	list       ListView
	alerts     Alerter
	store      Store
	keys       *KeyHub
	logger     *slog.Logger

	zoom        int
	panDuration time.Duration

	state    State
	workouts []*models.Workout
	markers  map[string]MarkerHandle
	pending  *models.Coords

	cancelToken  uuid.UUID
	cancelArmed  bool
	clickHandled bool
	generation   int
}

// New creates a controller in the AwaitingMap state.
func New(deps Deps, opts ...Option) *Controller {
	c := &Controller{
		mapAdapter:  deps.Map,
		location:    deps.Location,
		form:        deps.Form,
		list:        deps.List,
		alerts:      deps.Alerts,
		store:       deps.Store,
		keys:        deps.Keys,
		logger:      deps.Logger,
		zoom:        DefaultZoom,
		panDuration: DefaultPanDuration,
		state:       AwaitingMap,
		markers:     make(map[string]MarkerHandle),
	}
	if c.keys == nil {
		c.keys = NewKeyHub()
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start loads stored workouts into the list and asks for the user's
// position. The list renders whether or not the map becomes available.
func (c *Controller) Start() {
	c.workouts = c.store.Load()
	for _, w := range c.workouts {
		c.list.InsertAfterForm(render.RenderListEntry(w))
	}
	c.logger.Info("workouts loaded", "count", len(c.workouts))

	gen := c.generation
	c.location.CurrentPosition(
		func(coords models.Coords) {
			if gen != c.generation {
				return
			}
			c.loadMap(coords)
		},
		func(err error) {
			if gen != c.generation {
				return
			}
			c.logger.Warn("location unavailable", "error", err)
			c.alerts.Alert(MsgLocationFailed)
		},
	)
}

func (c *Controller) loadMap(center models.Coords) {
	if err := c.mapAdapter.Initialize(center, c.zoom); err != nil {
		c.logger.Error("map initialization failed", "error", err)
		c.alerts.Alert(MsgLocationFailed)
		return
	}
	c.state = MapReady
	c.logger.Debug("map ready", "center", center.String(), "zoom", c.zoom)

	for _, w := range c.workouts {
		c.addMarker(w)
	}

	// Adapters keep their handler across re-initialization.
	if !c.clickHandled {
		c.mapAdapter.OnClick(c.HandleMapClick)
		c.clickHandled = true
	}
	c.state = FormHidden
}

func (c *Controller) addMarker(w *models.Workout) {
	m := render.RenderMarker(w)
	h := c.mapAdapter.AddMarker(m)
	c.mapAdapter.SetPopupContent(h, m.Popup.Content)
	c.markers[w.ID] = h
}

// HandleMapClick opens the form for a workout at coords.
func (c *Controller) HandleMapClick(coords models.Coords) {
	if c.state == AwaitingMap {
		c.logger.Debug("map click ignored", "state", c.state.String())
		return
	}

	c.pending = &coords
	c.form.Show()
	c.form.FocusDistance()
	c.armCancel()
	c.state = FormVisible
	c.logger.Debug("form opened", "coords", coords.String())
}

// armCancel replaces any live cancel listener with a fresh one-shot listener.
func (c *Controller) armCancel() {
	c.disarmCancel()
	c.cancelToken = c.keys.Once(CancelKey, func() {
		c.cancelArmed = false
		c.hideForm()
		c.logger.Debug("form canceled")
	})
	c.cancelArmed = true
}

func (c *Controller) disarmCancel() {
	if c.cancelArmed {
		c.keys.Unsubscribe(c.cancelToken)
		c.cancelArmed = false
	}
}

func (c *Controller) hideForm() {
	for _, f := range []Field{FieldDistance, FieldDuration, FieldCadence, FieldElevation} {
		c.form.SetValue(f, "")
	}
	c.form.Hide()
	c.disarmCancel()
	c.pending = nil
	if c.state == FormVisible {
		c.state = FormHidden
	}
}

// HandleTypeToggle switches the visible type-specific input group.
func (c *Controller) HandleTypeToggle(kind models.Kind) {
	c.form.SetKind(kind)
	c.form.ShowGroup(kind)
}

// HandleKey forwards a key press to the key listeners.
func (c *Controller) HandleKey(key string) {
	c.keys.Dispatch(key)
}

// HandleSubmit validates the form and records a new workout at the pending
// location. On failure the form stays open and nothing changes.
func (c *Controller) HandleSubmit() (*models.Workout, error) {
	if c.state != FormVisible {
		return nil, ErrFormHidden
	}
	if c.pending == nil {
		c.alerts.Alert(MsgNoLocation)
		return nil, ErrNoPendingLocation
	}

	kind := c.form.Kind()
	distance := parseField(c.form.Value(FieldDistance))
	duration := parseField(c.form.Value(FieldDuration))

	var w *models.Workout
	switch kind {
	case models.KindRunning:
		cadence := parseField(c.form.Value(FieldCadence))
		if !models.ValidInputs(distance, duration, cadence) {
			return nil, c.rejectInput(kind)
		}
		w = models.NewRunning(*c.pending, distance, duration, cadence)
	case models.KindCycling:
		elevation := parseField(c.form.Value(FieldElevation))
		if !models.ValidInputs(distance, duration, elevation) {
			return nil, c.rejectInput(kind)
		}
		w = models.NewCycling(*c.pending, distance, duration, elevation)
	default:
		return nil, c.rejectInput(kind)
	}

	c.workouts = append(c.workouts, w)
	c.addMarker(w)
	c.list.InsertAfterForm(render.RenderListEntry(w))
	c.hideForm()
	c.logger.Info("workout added", "id", w.ID, "kind", string(w.Kind))

	if err := c.store.Save(c.workouts); err != nil {
		c.logger.Error("save failed", "error", err)
		c.alerts.Alert(MsgSaveFailed)
		return w, fmt.Errorf("save workouts: %w", err)
	}
	return w, nil
}

func (c *Controller) rejectInput(kind models.Kind) error {
	c.alerts.Alert(MsgInvalidInput)
	c.logger.Debug("submission rejected", "kind", string(kind))
	return fmt.Errorf("%w for %s workout", ErrInvalidInput, kind)
}

func parseField(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// HandleListClick pans the map to the workout with the given ID. It reports
// whether a pan happened; unknown IDs and a missing map are ignored.
func (c *Controller) HandleListClick(id string) bool {
	if id == "" {
		return false
	}
	w := c.Find(id)
	if w == nil {
		c.logger.Debug("list click without match", "id", id)
		return false
	}
	if c.state == AwaitingMap {
		c.logger.Debug("list click without map", "id", id)
		return false
	}
	c.mapAdapter.PanTo(w.Coords, c.zoom, PanOptions{Animate: true, Duration: c.panDuration})
	return true
}

// Import appends workouts whose IDs are not in the collection yet and
// persists the result once. Workouts with values a submission would reject
// are left out. It returns how many were added.
func (c *Controller) Import(workouts []*models.Workout) (int, error) {
	seen := make(map[string]bool, len(c.workouts))
	for _, w := range c.workouts {
		seen[w.ID] = true
	}

	added := 0
	for _, w := range workouts {
		if seen[w.ID] {
			continue
		}
		if !models.ValidInputs(w.Distance, w.Duration, w.Extra()) {
			c.logger.Debug("import rejected", "id", w.ID, "kind", string(w.Kind))
			continue
		}
		seen[w.ID] = true
		c.workouts = append(c.workouts, w)
		c.list.InsertAfterForm(render.RenderListEntry(w))
		if c.state != AwaitingMap {
			c.addMarker(w)
		}
		added++
	}
	if added == 0 {
		return 0, nil
	}

	if err := c.store.Save(c.workouts); err != nil {
		c.alerts.Alert(MsgSaveFailed)
		return added, fmt.Errorf("save workouts: %w", err)
	}
	c.logger.Info("workouts imported", "added", added)
	return added, nil
}

// Reset clears the stored snapshot and all in-memory state, then starts
// over from AwaitingMap.
func (c *Controller) Reset() error {
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	c.hideForm()
	c.list.Clear()
	c.workouts = nil
	c.pending = nil
	c.markers = make(map[string]MarkerHandle)
	c.state = AwaitingMap
	c.generation++
	c.logger.Info("workouts reset")

	c.Start()
	return nil
}

// State returns the current interaction state.
func (c *Controller) State() State {
	return c.state
}

// Workouts returns the collection in creation order.
func (c *Controller) Workouts() []*models.Workout {
	out := make([]*models.Workout, len(c.workouts))
	copy(out, c.workouts)
	return out
}

// Find returns the workout with the given ID, or nil.
func (c *Controller) Find(id string) *models.Workout {
	for _, w := range c.workouts {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Pending returns the map location captured by the last click, if any.
func (c *Controller) Pending() (models.Coords, bool) {
	if c.pending == nil {
		return models.Coords{}, false
	}
	return *c.pending, true
}

// CancelListeners returns the number of live key listeners.
func (c *Controller) CancelListeners() int {
	return c.keys.Active()
}

// Marker returns the map marker placed for a workout.
func (c *Controller) Marker(id string) (MarkerHandle, bool) {
	h, ok := c.markers[id]
	return h, ok
}
