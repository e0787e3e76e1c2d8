// ABOUTME: JSON codec for the workout snapshot.
// ABOUTME: Dispatches each record on its kind to rebuild running or cycling workouts.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/maplog/internal/models"
)

// ErrInvalidRecord marks an imported record that no valid submission could
// have produced.
var ErrInvalidRecord = errors.New("invalid workout record")

// Record is the flat, persisted form of one workout.
type Record struct {
	Kind          string     `json:"kind" yaml:"kind"`
	ID            string     `json:"id" yaml:"id"`
	Date          string     `json:"date" yaml:"date"`
	Coords        [2]float64 `json:"coords" yaml:"coords,flow"`
	Distance      float64    `json:"distance" yaml:"distance"`
	Duration      float64    `json:"duration" yaml:"duration"`
	Cadence       *float64   `json:"cadence,omitempty" yaml:"cadence,omitempty"`
	ElevationGain *float64   `json:"elevationGain,omitempty" yaml:"elevation_gain,omitempty"`

	// Older snapshots used "type" and "elevation".
	LegacyType      string   `json:"type,omitempty" yaml:"-"`
	LegacyElevation *float64 `json:"elevation,omitempty" yaml:"-"`
}

// NewRecord flattens a workout.
func NewRecord(w *models.Workout) Record {
	r := Record{
		Kind:     string(w.Kind),
		ID:       w.ID,
		Date:     w.Date.UTC().Format(time.RFC3339Nano),
		Coords:   [2]float64{w.Coords.Lat, w.Coords.Lng},
		Distance: w.Distance,
		Duration: w.Duration,
	}
	extra := w.Extra()
	switch w.Kind {
	case models.KindRunning:
		r.Cadence = &extra
	case models.KindCycling:
		r.ElevationGain = &extra
	}
	return r
}

// Workout rebuilds the workout a record describes. The stored ID and date
// are kept; the derived metric is recomputed.
func (r Record) Workout() (*models.Workout, error) {
	kindStr := r.Kind
	if kindStr == "" {
		kindStr = r.LegacyType
	}
	kind, err := models.ParseKind(kindStr)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(time.RFC3339Nano, r.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", r.Date, err)
	}

	var extra float64
	switch kind {
	case models.KindRunning:
		if r.Cadence != nil {
			extra = *r.Cadence
		}
	case models.KindCycling:
		if r.ElevationGain != nil {
			extra = *r.ElevationGain
		} else if r.LegacyElevation != nil {
			extra = *r.LegacyElevation
		}
	}

	coords := models.Coords{Lat: r.Coords[0], Lng: r.Coords[1]}
	return models.Restore(kind, r.ID, date.Local(), coords, r.Distance, r.Duration, extra)
}

// ImportedWorkout rebuilds the workout like Workout and also requires what a
// submitted workout has: its kind-specific value and positive numbers.
func (r Record) ImportedWorkout() (*models.Workout, error) {
	w, err := r.Workout()
	if err != nil {
		return nil, err
	}
	if !r.hasExtra(w.Kind) {
		return nil, fmt.Errorf("%w: %s workout %s has no %s", ErrInvalidRecord, w.Kind, r.ID, w.Kind.ExtraName())
	}
	if !models.ValidInputs(w.Distance, w.Duration, w.Extra()) {
		return nil, fmt.Errorf("%w: %s workout %s has non-positive values", ErrInvalidRecord, w.Kind, r.ID)
	}
	return w, nil
}

func (r Record) hasExtra(kind models.Kind) bool {
	if kind == models.KindRunning {
		return r.Cadence != nil
	}
	return r.ElevationGain != nil || r.LegacyElevation != nil
}

// Encode serializes the whole collection in order.
func Encode(workouts []*models.Workout) ([]byte, error) {
	records := make([]Record, 0, len(workouts))
	for _, w := range workouts {
		records = append(records, NewRecord(w))
	}
	return json.Marshal(records)
}

// Decode parses a snapshot. It fails only when the snapshot as a whole is
// unreadable; records that cannot be rebuilt are skipped and counted.
func Decode(data []byte) ([]*models.Workout, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	workouts, skipped := decodeRecords(raw, Record.Workout)
	return workouts, skipped, nil
}

func decodeRecords(raw []json.RawMessage, build func(Record) (*models.Workout, error)) ([]*models.Workout, int) {
	workouts := make([]*models.Workout, 0, len(raw))
	skipped := 0
	for _, msg := range raw {
		var r Record
		if err := json.Unmarshal(msg, &r); err != nil {
			skipped++
			continue
		}
		w, err := build(r)
		if err != nil {
			skipped++
			continue
		}
		workouts = append(workouts, w)
	}
	return workouts, skipped
}
