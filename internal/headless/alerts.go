// ABOUTME: Alert collector that records messages and optionally prints them.
// ABOUTME: Printing uses a yellow warning marker on the configured writer.
package headless

import (
	"io"

	"github.com/fatih/color"
)

// Alerts is an app.Alerter.
type Alerts struct {
	out      io.Writer
	messages []string
}

// NewAlerts creates a collector. A nil out records without printing.
func NewAlerts(out io.Writer) *Alerts {
	return &Alerts{out: out}
}

// Alert records msg and prints it when an output is set.
func (a *Alerts) Alert(msg string) {
	a.messages = append(a.messages, msg)
	if a.out != nil {
		color.New(color.FgYellow).Fprintf(a.out, "⚠ %s\n", msg)
	}
}

// Messages returns every alert in order.
func (a *Alerts) Messages() []string {
	out := make([]string, len(a.messages))
	copy(out, a.messages)
	return out
}

// Last returns the most recent alert, or "".
func (a *Alerts) Last() string {
	if len(a.messages) == 0 {
		return ""
	}
	return a.messages[len(a.messages)-1]
}
