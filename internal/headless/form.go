// ABOUTME: Headless workout form holding input values as strings.
// ABOUTME: Tracks visibility, focus, and which type-specific group is shown.
package headless

import (
	"github.com/harperreed/maplog/internal/app"
	"github.com/harperreed/maplog/internal/models"
)

// Form is an in-memory app.FormUI.
type Form struct {
	kind    models.Kind
	group   models.Kind
	values  map[app.Field]string
	visible bool
	focused app.Field
}

// NewForm creates a hidden form with running selected.
func NewForm() *Form {
	return &Form{
		kind:   models.KindRunning,
		group:  models.KindRunning,
		values: make(map[app.Field]string),
	}
}

// Kind returns the selected workout kind.
func (f *Form) Kind() models.Kind { return f.kind }

// SetKind selects the workout kind.
func (f *Form) SetKind(k models.Kind) { f.kind = k }

// Value returns the text entered in field.
func (f *Form) Value(field app.Field) string { return f.values[field] }

// SetValue sets field to v. An empty v clears it.
func (f *Form) SetValue(field app.Field, v string) {
	if v == "" {
		delete(f.values, field)
		return
	}
	f.values[field] = v
}

// Show makes the form visible.
func (f *Form) Show() { f.visible = true }

// Hide hides the form and drops focus.
func (f *Form) Hide() {
	f.visible = false
	f.focused = ""
}

// FocusDistance moves focus to the distance input.
func (f *Form) FocusDistance() { f.focused = app.FieldDistance }

// ShowGroup shows the extra input for k.
func (f *Form) ShowGroup(k models.Kind) { f.group = k }

// Visible reports whether the form is shown.
func (f *Form) Visible() bool { return f.visible }

// Focused returns the focused field, or "" when nothing has focus.
func (f *Form) Focused() app.Field { return f.focused }

// Group returns the kind whose extra input is shown.
func (f *Form) Group() models.Kind { return f.group }

// Fill sets kind and all inputs in one call.
func (f *Form) Fill(kind models.Kind, distance, duration, extra string) {
	f.SetKind(kind)
	f.ShowGroup(kind)
	f.SetValue(app.FieldDistance, distance)
	f.SetValue(app.FieldDuration, duration)
	switch kind {
	case models.KindCycling:
		f.SetValue(app.FieldElevation, extra)
	default:
		f.SetValue(app.FieldCadence, extra)
	}
}

// Empty reports whether every input is blank.
func (f *Form) Empty() bool { return len(f.values) == 0 }
