// ABOUTME: Scenario tests for the interaction controller driven by headless collaborators.
// ABOUTME: Covers state transitions, submission, list ordering, cancel listener hygiene, and reset.
package app_test

import (
	"errors"
	"testing"

	"github.com/harperreed/maplog/internal/app"
	"github.com/harperreed/maplog/internal/headless"
	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/render"
	"github.com/harperreed/maplog/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var home = models.Coords{Lat: 45.07, Lng: 7.68}

type harness struct {
	ctrl    *app.Controller
	mapView *headless.Map
	form    *headless.Form
	list    *render.EntryList
	alerts  *headless.Alerts
	loc     *headless.Location
	backend storage.Backend
	store   *storage.SnapshotStore
}

func newHarness(t *testing.T, loc *headless.Location, backend storage.Backend) *harness {
	t.Helper()
	if backend == nil {
		backend = storage.NewMemoryStore()
	}
	h := &harness{
		mapView: headless.NewMap(nil),
		form:    headless.NewForm(),
		list:    render.NewEntryList(),
		alerts:  headless.NewAlerts(nil),
		loc:     loc,
		backend: backend,
		store:   storage.NewSnapshotStore(backend),
	}
	h.ctrl = app.New(app.Deps{
		Map:      h.mapView,
		Location: h.loc,
		Form:     h.form,
		List:     h.list,
		Alerts:   h.alerts,
		Store:    h.store,
	})
	return h
}

func started(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, headless.FixedLocation(home), nil)
	h.ctrl.Start()
	require.Equal(t, app.FormHidden, h.ctrl.State())
	return h
}

func (h *harness) submit(t *testing.T, at models.Coords, kind models.Kind, distance, duration, extra string) (*models.Workout, error) {
	t.Helper()
	require.NoError(t, h.mapView.Click(at))
	h.ctrl.HandleTypeToggle(kind)
	h.form.Fill(kind, distance, duration, extra)
	return h.ctrl.HandleSubmit()
}

func TestStartWithLocation(t *testing.T) {
	h := started(t)

	center, zoom := h.mapView.Center()
	assert.Equal(t, home, center)
	assert.Equal(t, app.DefaultZoom, zoom)
	assert.True(t, h.mapView.Initialized())
	assert.Empty(t, h.alerts.Messages())
	assert.Equal(t, 1, h.loc.Calls())
}

func TestStartWithoutLocationStillRendersList(t *testing.T) {
	backend := storage.NewMemoryStore()
	seed := storage.NewSnapshotStore(backend)
	require.NoError(t, seed.Save([]*models.Workout{
		models.NewRunning(home, 5, 25, 170),
		models.NewCycling(home, 20, 60, 300),
	}))

	h := newHarness(t, headless.FailingLocation(nil), backend)
	h.ctrl.Start()

	assert.Equal(t, app.AwaitingMap, h.ctrl.State())
	assert.Equal(t, []string{app.MsgLocationFailed}, h.alerts.Messages())
	assert.Equal(t, 2, h.list.Len())
	assert.Empty(t, h.mapView.Markers())

	// Map clicks are ignored until the map loads.
	h.ctrl.HandleMapClick(home)
	assert.Equal(t, app.AwaitingMap, h.ctrl.State())
	assert.False(t, h.form.Visible())

	_, err := h.ctrl.HandleSubmit()
	assert.ErrorIs(t, err, app.ErrFormHidden)
}

func TestStartMapInitFailure(t *testing.T) {
	h := newHarness(t, headless.FixedLocation(home), nil)
	h.mapView.InitErr = errors.New("tiles unavailable")
	h.ctrl.Start()

	assert.Equal(t, app.AwaitingMap, h.ctrl.State())
	assert.Equal(t, app.MsgLocationFailed, h.alerts.Last())
}

func TestStartRestoresMarkers(t *testing.T) {
	backend := storage.NewMemoryStore()
	w := models.NewCycling(models.Coords{Lat: 1, Lng: 2}, 20, 60, 300)
	require.NoError(t, storage.NewSnapshotStore(backend).Save([]*models.Workout{w}))

	h := newHarness(t, headless.FixedLocation(home), backend)
	h.ctrl.Start()

	markers := h.mapView.Markers()
	require.Len(t, markers, 1)
	assert.Equal(t, w.Coords, markers[0].Coords)
	assert.Equal(t, "cycling-popup", markers[0].Popup.ClassName)

	handle, ok := h.ctrl.Marker(w.ID)
	require.True(t, ok)
	assert.Equal(t, w.Describe(), h.mapView.Popup(handle))
}

func TestMapClickOpensForm(t *testing.T) {
	h := started(t)
	at := models.Coords{Lat: 10, Lng: 20}

	require.NoError(t, h.mapView.Click(at))

	assert.Equal(t, app.FormVisible, h.ctrl.State())
	assert.True(t, h.form.Visible())
	assert.Equal(t, app.FieldDistance, h.form.Focused())
	pending, ok := h.ctrl.Pending()
	assert.True(t, ok)
	assert.Equal(t, at, pending)
	assert.Equal(t, 1, h.ctrl.CancelListeners())
}

func TestSubmitRunning(t *testing.T) {
	h := started(t)
	at := models.Coords{Lat: 10, Lng: 20}

	w, err := h.submit(t, at, models.KindRunning, "5", "25", "170")
	require.NoError(t, err)

	assert.Equal(t, models.KindRunning, w.Kind)
	assert.Equal(t, at, w.Coords)
	require.NotNil(t, w.Running)
	assert.InDelta(t, 5.0, w.Running.Pace, 1e-9)

	assert.Equal(t, app.FormHidden, h.ctrl.State())
	assert.False(t, h.form.Visible())
	assert.True(t, h.form.Empty())
	_, ok := h.ctrl.Pending()
	assert.False(t, ok)
	assert.Equal(t, 0, h.ctrl.CancelListeners())

	assert.Len(t, h.mapView.Markers(), 1)
	assert.Equal(t, 1, h.list.Len())

	stored := storage.NewSnapshotStore(h.backend).Load()
	require.Len(t, stored, 1)
	assert.Equal(t, w.ID, stored[0].ID)
}

func TestSubmitCyclingSpeed(t *testing.T) {
	h := started(t)

	w, err := h.submit(t, home, models.KindCycling, "10", "30", "85")
	require.NoError(t, err)
	require.NotNil(t, w.Cycling)
	assert.InDelta(t, 10.0/30.0/60.0, w.Cycling.Speed, 1e-9)
	assert.Equal(t, 85.0, w.Cycling.ElevationGain)
}

func TestSubmitNewestFirst(t *testing.T) {
	h := started(t)

	a, err := h.submit(t, home, models.KindRunning, "5", "25", "170")
	require.NoError(t, err)
	b, err := h.submit(t, home, models.KindCycling, "20", "60", "300")
	require.NoError(t, err)

	entries := h.list.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, models.KindCycling, entries[0].Kind)
	assert.Equal(t, models.KindRunning, entries[1].Kind)

	ws := h.ctrl.Workouts()
	require.Len(t, ws, 2)
	assert.Same(t, a, ws[0])
	assert.Same(t, b, ws[1])
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		kind     models.Kind
		distance string
		duration string
		extra    string
	}{
		{"non-numeric distance", models.KindRunning, "abc", "25", "170"},
		{"blank duration", models.KindRunning, "5", "", "170"},
		{"zero cadence", models.KindRunning, "5", "25", "0"},
		{"negative distance", models.KindCycling, "-10", "30", "85"},
		{"negative elevation", models.KindCycling, "10", "30", "-5"},
		{"infinite duration", models.KindCycling, "10", "Inf", "85"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := started(t)

			w, err := h.submit(t, home, tt.kind, tt.distance, tt.duration, tt.extra)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, app.ErrInvalidInput)
			assert.Equal(t, app.MsgInvalidInput, h.alerts.Last())

			assert.Empty(t, h.ctrl.Workouts())
			assert.Equal(t, 0, h.list.Len())
			assert.Empty(t, h.mapView.Markers())
			assert.Equal(t, app.FormVisible, h.ctrl.State())
			assert.True(t, h.form.Visible())

			_, getErr := h.backend.Get(storage.SnapshotKey)
			assert.ErrorIs(t, getErr, storage.ErrNotFound)
		})
	}
}

type failingBackend struct {
	*storage.MemoryStore
}

func (failingBackend) Put(string, []byte) error { return errors.New("disk full") }

func TestSubmitSaveFailureAlerts(t *testing.T) {
	h := newHarness(t, headless.FixedLocation(home), failingBackend{storage.NewMemoryStore()})
	h.ctrl.Start()

	w, err := h.submit(t, home, models.KindRunning, "5", "25", "170")
	require.Error(t, err)
	assert.NotNil(t, w)
	assert.Equal(t, app.MsgSaveFailed, h.alerts.Last())
	assert.Len(t, h.ctrl.Workouts(), 1)
}

func TestCancelListenerHygiene(t *testing.T) {
	h := started(t)

	require.NoError(t, h.mapView.Click(home))
	h.ctrl.HandleKey(app.CancelKey)
	assert.Equal(t, app.FormHidden, h.ctrl.State())
	assert.False(t, h.form.Visible())
	assert.Equal(t, 0, h.ctrl.CancelListeners())

	require.NoError(t, h.mapView.Click(home))
	require.NoError(t, h.mapView.Click(models.Coords{Lat: 1, Lng: 1}))
	assert.Equal(t, 1, h.ctrl.CancelListeners())

	pending, ok := h.ctrl.Pending()
	require.True(t, ok)
	assert.Equal(t, models.Coords{Lat: 1, Lng: 1}, pending)
}

func TestOtherKeysKeepFormOpen(t *testing.T) {
	h := started(t)
	require.NoError(t, h.mapView.Click(home))

	h.ctrl.HandleKey("Enter")
	assert.Equal(t, app.FormVisible, h.ctrl.State())
	assert.Equal(t, 1, h.ctrl.CancelListeners())
}

func TestCancelClearsInputs(t *testing.T) {
	h := started(t)
	require.NoError(t, h.mapView.Click(home))
	h.form.Fill(models.KindRunning, "5", "25", "170")

	h.ctrl.HandleKey(app.CancelKey)
	assert.True(t, h.form.Empty())
	_, ok := h.ctrl.Pending()
	assert.False(t, ok)

	_, err := h.ctrl.HandleSubmit()
	assert.ErrorIs(t, err, app.ErrFormHidden)
	assert.Empty(t, h.ctrl.Workouts())
}

func TestTypeToggleSwapsGroup(t *testing.T) {
	h := started(t)
	require.NoError(t, h.mapView.Click(home))

	h.ctrl.HandleTypeToggle(models.KindCycling)
	assert.Equal(t, models.KindCycling, h.form.Group())
	assert.Equal(t, models.KindCycling, h.form.Kind())
	assert.Equal(t, app.FormVisible, h.ctrl.State())

	h.ctrl.HandleTypeToggle(models.KindRunning)
	assert.Equal(t, models.KindRunning, h.form.Group())
}

func TestListClickPans(t *testing.T) {
	h := started(t)
	at := models.Coords{Lat: 3, Lng: 4}
	w, err := h.submit(t, at, models.KindRunning, "5", "25", "170")
	require.NoError(t, err)

	assert.True(t, h.ctrl.HandleListClick(w.ID))
	pans := h.mapView.Pans()
	require.Len(t, pans, 1)
	assert.Equal(t, at, pans[0].Coords)
	assert.Equal(t, app.DefaultZoom, pans[0].Zoom)
	assert.True(t, pans[0].Options.Animate)
	assert.Equal(t, app.DefaultPanDuration, pans[0].Options.Duration)

	assert.False(t, h.ctrl.HandleListClick(""))
	assert.False(t, h.ctrl.HandleListClick("nope"))
	assert.Len(t, h.mapView.Pans(), 1)
}

func TestListClickWithoutMap(t *testing.T) {
	backend := storage.NewMemoryStore()
	w := models.NewRunning(home, 5, 25, 170)
	require.NoError(t, storage.NewSnapshotStore(backend).Save([]*models.Workout{w}))

	h := newHarness(t, headless.FailingLocation(nil), backend)
	h.ctrl.Start()

	assert.False(t, h.ctrl.HandleListClick(w.ID))
	assert.Empty(t, h.mapView.Pans())
}

func TestReset(t *testing.T) {
	h := started(t)
	_, err := h.submit(t, home, models.KindRunning, "5", "25", "170")
	require.NoError(t, err)
	require.NoError(t, h.mapView.Click(home))

	require.NoError(t, h.ctrl.Reset())

	assert.Empty(t, h.ctrl.Workouts())
	assert.Equal(t, 0, h.list.Len())
	assert.Equal(t, 0, h.ctrl.CancelListeners())
	assert.False(t, h.form.Visible())
	_, getErr := h.backend.Get(storage.SnapshotKey)
	assert.ErrorIs(t, getErr, storage.ErrNotFound)

	// Reset starts over and reloads the map from the location provider.
	assert.Equal(t, 2, h.loc.Calls())
	assert.Equal(t, app.FormHidden, h.ctrl.State())
	assert.Empty(t, h.mapView.Markers())
	assert.Empty(t, storage.NewSnapshotStore(h.backend).Load())
}

func TestResetWithoutLocationReturnsToAwaitingMap(t *testing.T) {
	h := newHarness(t, headless.FailingLocation(nil), nil)
	h.ctrl.Start()
	require.NoError(t, h.ctrl.Reset())
	assert.Equal(t, app.AwaitingMap, h.ctrl.State())
}

func TestImportMergesByID(t *testing.T) {
	h := started(t)
	first, err := h.submit(t, home, models.KindRunning, "5", "25", "170")
	require.NoError(t, err)

	other := models.NewCycling(home, 20, 60, 300)
	other.ID = "other-id"

	added, err := h.ctrl.Import([]*models.Workout{first, other, other})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Len(t, h.ctrl.Workouts(), 2)
	assert.Len(t, h.mapView.Markers(), 2)
	assert.Equal(t, "other-id", h.list.Entries()[0].ID)

	stored := storage.NewSnapshotStore(h.backend).Load()
	assert.Len(t, stored, 2)

	added, err = h.ctrl.Import([]*models.Workout{other})
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestImportRejectsInvalidWorkouts(t *testing.T) {
	h := started(t)

	bad := models.NewRunning(home, -5, 0, -3)
	bad.ID = "bad-id"
	good := models.NewCycling(home, 10, 30, 85)
	good.ID = "good-id"

	added, err := h.ctrl.Import([]*models.Workout{bad, good})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Nil(t, h.ctrl.Find("bad-id"))
	assert.Len(t, h.mapView.Markers(), 1)

	stored := storage.NewSnapshotStore(h.backend).Load()
	require.Len(t, stored, 1)
	assert.Equal(t, "good-id", stored[0].ID)
}

func TestFindAndWorkoutsCopy(t *testing.T) {
	h := started(t)
	w, err := h.submit(t, home, models.KindRunning, "5", "25", "170")
	require.NoError(t, err)

	assert.Same(t, w, h.ctrl.Find(w.ID))
	assert.Nil(t, h.ctrl.Find("missing"))

	ws := h.ctrl.Workouts()
	ws[0] = nil
	assert.NotNil(t, h.ctrl.Workouts()[0])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_map", app.AwaitingMap.String())
	assert.Equal(t, "form_visible", app.FormVisible.String())
}
