// ABOUTME: Static location provider for hosts without a positioning device.
// ABOUTME: Answers synchronously with fixed coordinates or a fixed error.
package headless

import (
	"errors"

	"github.com/harperreed/maplog/internal/models"
)

// ErrNoPosition is reported when no home position is configured.
var ErrNoPosition = errors.New("position unavailable")

// Location is an app.LocationProvider.
type Location struct {
	coords *models.Coords
	err    error
	calls  int
}

// FixedLocation reports coords on every request.
func FixedLocation(coords models.Coords) *Location {
	return &Location{coords: &coords}
}

// FailingLocation reports err on every request. A nil err reports ErrNoPosition.
func FailingLocation(err error) *Location {
	if err == nil {
		err = ErrNoPosition
	}
	return &Location{err: err}
}

// CurrentPosition invokes exactly one of the callbacks.
func (l *Location) CurrentPosition(onSuccess func(models.Coords), onError func(error)) {
	l.calls++
	if l.coords == nil {
		onError(l.err)
		return
	}
	onSuccess(*l.coords)
}

// Calls returns how many positions were requested.
func (l *Location) Calls() int { return l.calls }
