// ABOUTME: Session wires a controller to headless collaborators for terminal and MCP hosts.
// ABOUTME: Submit drives the same click, toggle, fill, submit sequence a user would.
package headless

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/harperreed/maplog/internal/app"
	"github.com/harperreed/maplog/internal/models"
	"github.com/harperreed/maplog/internal/render"
)

// Session is a controller plus the headless views it drives.
type Session struct {
	Controller *app.Controller
	Map        *Map
	Form       *Form
	List       *render.EntryList
	Alerts     *Alerts
}

// NewSession builds a controller over store. Map events and alerts are
// echoed to out when it is non-nil. Call Start on the controller to load.
func NewSession(store app.Store, loc app.LocationProvider, out io.Writer, logger *slog.Logger, opts ...app.Option) *Session {
	s := &Session{
		Map:    NewMap(out),
		Form:   NewForm(),
		List:   render.NewEntryList(),
		Alerts: NewAlerts(out),
	}
	s.Controller = app.New(app.Deps{
		Map:      s.Map,
		Location: loc,
		Form:     s.Form,
		List:     s.List,
		Alerts:   s.Alerts,
		Store:    store,
		Logger:   logger,
	}, opts...)
	return s
}

// Submit records a workout at coords through the form. A rejected
// submission closes the form again so the session stays reusable.
func (s *Session) Submit(kind models.Kind, at models.Coords, distance, duration, extra float64) (*models.Workout, error) {
	if err := s.Map.Click(at); err != nil {
		return nil, fmt.Errorf("place workout: %w", err)
	}
	s.Controller.HandleTypeToggle(kind)
	s.Form.Fill(kind, formatInput(distance), formatInput(duration), formatInput(extra))

	w, err := s.Controller.HandleSubmit()
	if err != nil && s.Controller.State() == app.FormVisible {
		s.Controller.HandleKey(app.CancelKey)
	}
	return w, err
}

func formatInput(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
