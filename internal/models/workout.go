// ABOUTME: Workout model pinned to a map location, with running and cycling variants.
// ABOUTME: Computes pace or speed from distance and duration and formats descriptions.
package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the workout variants.
type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

// AllKinds lists the supported workout kinds.
var AllKinds = []Kind{KindRunning, KindCycling}

// ErrUnknownKind is returned when a kind string matches no variant.
var ErrUnknownKind = errors.New("unknown workout kind")

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Title returns the kind with its first letter upper-cased.
func (k Kind) Title() string {
	if k == "" {
		return ""
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Icon returns the list icon for the kind.
func (k Kind) Icon() string {
	if k == KindRunning {
		return "🏃‍♂️"
	}
	return "🚴‍♀️"
}

// ExtraIcon returns the icon shown next to cadence or elevation gain.
func (k Kind) ExtraIcon() string {
	if k == KindRunning {
		return "🦶🏼"
	}
	return "⛰"
}

// MetricUnit is the unit of the derived metric.
func (k Kind) MetricUnit() string {
	if k == KindRunning {
		return "min/km"
	}
	return "km/h"
}

// ExtraUnit is the unit of the kind-specific value.
func (k Kind) ExtraUnit() string {
	if k == KindRunning {
		return "spm"
	}
	return "m"
}

// ExtraName names the kind-specific value.
func (k Kind) ExtraName() string {
	if k == KindRunning {
		return "cadence"
	}
	return "elevation"
}

// Coords is a latitude/longitude pair.
type Coords struct {
	Lat float64
	Lng float64
}

// String formats coords as "lat,lng".
func (c Coords) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// ParseCoords parses "lat,lng".
func ParseCoords(s string) (Coords, error) {
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return Coords{}, fmt.Errorf("expected LAT,LNG, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return Coords{}, fmt.Errorf("invalid latitude %q", latStr)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return Coords{}, fmt.Errorf("invalid longitude %q", lngStr)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Coords{}, fmt.Errorf("coordinates out of range: %s", s)
	}
	return Coords{Lat: lat, Lng: lng}, nil
}

// RunningStats is the running-specific payload.
type RunningStats struct {
	Cadence float64 // steps per minute
	Pace    float64 // minutes per kilometer
}

// CyclingStats is the cycling-specific payload.
type CyclingStats struct {
	ElevationGain float64 // meters
	Speed         float64 // kilometers per hour
}

// Workout is one logged exercise session. Exactly one of Running or
// Cycling is set, selected by Kind.
type Workout struct {
	ID       string
	Date     time.Time
	Coords   Coords
	Distance float64 // kilometers
	Duration float64 // minutes
	Kind     Kind
	Running  *RunningStats
	Cycling  *CyclingStats
}

// idDigits is how many trailing digits of the millisecond clock form an ID.
const idDigits = 10

// NewID derives a workout ID from a creation time.
func NewID(t time.Time) string {
	s := strconv.FormatInt(t.UnixMilli(), 10)
	if len(s) > idDigits {
		s = s[len(s)-idDigits:]
	}
	return s
}

func newWorkout(kind Kind, coords Coords, distance, duration float64) *Workout {
	now := time.Now()
	return &Workout{
		ID:       NewID(now),
		Date:     now,
		Coords:   coords,
		Distance: distance,
		Duration: duration,
		Kind:     kind,
	}
}

// NewRunning creates a running workout with a fresh ID and date.
// Inputs are not validated; see ValidInputs.
func NewRunning(coords Coords, distance, duration, cadence float64) *Workout {
	w := newWorkout(KindRunning, coords, distance, duration)
	w.Running = &RunningStats{Cadence: cadence}
	w.Running.Pace = w.DerivedMetric()
	return w
}

// NewCycling creates a cycling workout with a fresh ID and date.
// Inputs are not validated; see ValidInputs.
func NewCycling(coords Coords, distance, duration, elevationGain float64) *Workout {
	w := newWorkout(KindCycling, coords, distance, duration)
	w.Cycling = &CyclingStats{ElevationGain: elevationGain}
	w.Cycling.Speed = w.DerivedMetric()
	return w
}

// Restore rebuilds a workout from stored fields. The ID and date are kept
// as given and the derived metric is recomputed.
func Restore(kind Kind, id string, date time.Time, coords Coords, distance, duration, extra float64) (*Workout, error) {
	var w *Workout
	switch kind {
	case KindRunning:
		w = NewRunning(coords, distance, duration, extra)
	case KindCycling:
		w = NewCycling(coords, distance, duration, extra)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	w.ID = id
	w.Date = date
	return w, nil
}

// DerivedMetric returns pace (min/km) for running and speed for cycling.
// It only reads Distance and Duration.
func (w *Workout) DerivedMetric() float64 {
	switch w.Kind {
	case KindRunning:
		return w.Duration / w.Distance
	case KindCycling:
		return w.Distance / w.Duration / 60
	}
	return 0
}

// Extra returns cadence for running and elevation gain for cycling.
func (w *Workout) Extra() float64 {
	switch {
	case w.Kind == KindRunning && w.Running != nil:
		return w.Running.Cadence
	case w.Kind == KindCycling && w.Cycling != nil:
		return w.Cycling.ElevationGain
	}
	return 0
}

var months = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Describe formats "<Kind> on <Month> <Day>", e.g. "Running on January 1".
func (w *Workout) Describe() string {
	return fmt.Sprintf("%s on %s %d", w.Kind.Title(), months[int(w.Date.Month())-1], w.Date.Day())
}

// ValidInputs reports whether every value is finite and strictly positive.
func ValidInputs(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return false
		}
	}
	return true
}
