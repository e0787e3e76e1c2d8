// ABOUTME: Tests for the snapshot codec and SnapshotStore.
// ABOUTME: Covers round trips, legacy field names, corrupt data, and clearing.
package storage

import (
	"testing"
	"time"

	"github.com/harperreed/maplog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleWorkouts() []*models.Workout {
	run := models.NewRunning(models.Coords{Lat: 51.5074, Lng: -0.1278}, 5, 25, 170)
	run.ID = "1000000001"
	run.Date = time.Date(2025, time.January, 1, 8, 15, 30, 123000000, time.UTC).Local()

	ride := models.NewCycling(models.Coords{Lat: 48.8566, Lng: 2.3522}, 10, 30, 250)
	ride.ID = "1000000002"
	ride.Date = time.Date(2025, time.February, 14, 17, 0, 0, 0, time.UTC).Local()

	return []*models.Workout{run, ride}
}

func assertSameWorkouts(t *testing.T, want, got []*models.Workout) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		w, g := want[i], got[i]
		assert.Equal(t, w.Kind, g.Kind, "kind of #%d", i)
		assert.Equal(t, w.ID, g.ID, "id of #%d", i)
		assert.True(t, w.Date.Equal(g.Date), "date of #%d: %v != %v", i, w.Date, g.Date)
		assert.Equal(t, w.Coords, g.Coords, "coords of #%d", i)
		assert.Equal(t, w.Distance, g.Distance, "distance of #%d", i)
		assert.Equal(t, w.Duration, g.Duration, "duration of #%d", i)
		assert.Equal(t, w.Extra(), g.Extra(), "kind-specific value of #%d", i)
		assert.Equal(t, w.DerivedMetric(), g.DerivedMetric(), "derived metric of #%d", i)
		assert.Equal(t, w.Describe(), g.Describe(), "description of #%d", i)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	for name, b := range setupBackends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewSnapshotStore(b)
			want := sampleWorkouts()

			require.NoError(t, store.Save(want))
			assertSameWorkouts(t, want, store.Load())
		})
	}
}

func TestSnapshotRestoresPayloadVariant(t *testing.T) {
	store := NewSnapshotStore(NewMemoryStore())
	require.NoError(t, store.Save(sampleWorkouts()))

	got := store.Load()
	require.Len(t, got, 2)
	assert.NotNil(t, got[0].Running)
	assert.Nil(t, got[0].Cycling)
	assert.Equal(t, 5.0, got[0].Running.Pace)
	assert.NotNil(t, got[1].Cycling)
	assert.Nil(t, got[1].Running)
	assert.InDelta(t, 10.0/30.0/60.0, got[1].Cycling.Speed, 1e-12)
}

func TestSaveReplacesWholeSnapshot(t *testing.T) {
	store := NewSnapshotStore(NewMemoryStore())
	all := sampleWorkouts()

	require.NoError(t, store.Save(all))
	require.NoError(t, store.Save(all[:1]))

	got := store.Load()
	require.Len(t, got, 1)
	assert.Equal(t, all[0].ID, got[0].ID)
}

func TestLoadMissingSnapshot(t *testing.T) {
	store := NewSnapshotStore(NewMemoryStore())
	got := store.Load()
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadCorruptSnapshot(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{{{`},
		{"object instead of array", `{"kind":"running"}`},
		{"truncated", `[{"kind":"running","id":"1"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewMemoryStore()
			require.NoError(t, backend.Put(SnapshotKey, []byte(tt.data)))

			got := NewSnapshotStore(backend).Load()
			assert.Empty(t, got)
		})
	}
}

func TestLoadNullSnapshot(t *testing.T) {
	backend := NewMemoryStore()
	require.NoError(t, backend.Put(SnapshotKey, []byte(`null`)))
	assert.Empty(t, NewSnapshotStore(backend).Load())
}

func TestDecodeLegacyFieldNames(t *testing.T) {
	data := `[
		{"type":"running","id":"1718000000","date":"2024-06-10T06:13:20.000Z","coords":[40.4,-3.7],"distance":5,"duration":25,"cadence":178,"pace":5},
		{"type":"cycling","id":"1718000001","date":"2024-06-10T07:00:00.000Z","coords":[40.5,-3.6],"distance":30,"duration":60,"elevation":420,"speed":999}
	]`

	workouts, skipped, err := Decode([]byte(data))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, workouts, 2)

	assert.Equal(t, models.KindRunning, workouts[0].Kind)
	assert.Equal(t, 178.0, workouts[0].Extra())
	assert.Equal(t, models.KindCycling, workouts[1].Kind)
	assert.Equal(t, 420.0, workouts[1].Extra())
	// Stored speed is ignored in favor of recomputation.
	assert.InDelta(t, 30.0/60.0/60.0, workouts[1].Cycling.Speed, 1e-12)
	assert.Equal(t, "1718000001", workouts[1].ID)
	assert.True(t, workouts[1].Date.Equal(time.Date(2024, time.June, 10, 7, 0, 0, 0, time.UTC)))
}

func TestDecodeSkipsUnreadableRecords(t *testing.T) {
	data := `[
		{"kind":"running","id":"1","date":"2024-06-10T06:13:20Z","coords":[1,2],"distance":5,"duration":25,"cadence":170},
		{"kind":"swimming","id":"2","date":"2024-06-10T06:13:20Z","coords":[1,2],"distance":1,"duration":30},
		{"kind":"cycling","id":"3","date":"yesterday","coords":[1,2],"distance":1,"duration":30,"elevationGain":5},
		"garbage"
	]`

	workouts, skipped, err := Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, workouts, 1)
	assert.Equal(t, "1", workouts[0].ID)
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode(sampleWorkouts())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"kind":"running"`)
	assert.Contains(t, s, `"cadence":170`)
	assert.Contains(t, s, `"elevationGain":250`)
	assert.Contains(t, s, `"coords":[51.5074,-0.1278]`)
	assert.Contains(t, s, `"date":"2025-01-01T08:15:30.123Z"`)
	assert.NotContains(t, s, `"pace"`)
	assert.NotContains(t, s, `"type"`)
}

func TestClearSnapshot(t *testing.T) {
	store := NewSnapshotStore(NewMemoryStore())
	require.NoError(t, store.Save(sampleWorkouts()))
	require.NoError(t, store.Clear())
	assert.Empty(t, store.Load())

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestWithKey(t *testing.T) {
	backend := NewMemoryStore()
	store := NewSnapshotStore(backend, WithKey("other"))
	require.NoError(t, store.Save(sampleWorkouts()))

	_, err := backend.Get("other")
	assert.NoError(t, err)
	assert.Empty(t, NewSnapshotStore(backend).Load())
}
