// ABOUTME: KeyHub dispatches keyboard signals to subscribed listeners.
// ABOUTME: Subscriptions are uuid tokens; one-shot listeners remove themselves when fired.
package app

import (
	"github.com/google/uuid"
)

type keyListener struct {
	match string // empty matches every key
	once  bool
	fn    func(key string)
}

// KeyHub is a keyboard event source. It is not safe for concurrent use;
// the controller's Loop serializes access.
type KeyHub struct {
	listeners map[uuid.UUID]keyListener
	order     []uuid.UUID
}

// NewKeyHub creates a hub with no listeners.
func NewKeyHub() *KeyHub {
	return &KeyHub{listeners: make(map[uuid.UUID]keyListener)}
}

// Subscribe registers fn for every key until unsubscribed.
func (h *KeyHub) Subscribe(fn func(key string)) uuid.UUID {
	return h.add(keyListener{fn: fn})
}

// Once registers fn for the first dispatch of key. The listener is removed
// before fn runs.
func (h *KeyHub) Once(key string, fn func()) uuid.UUID {
	return h.add(keyListener{match: key, once: true, fn: func(string) { fn() }})
}

func (h *KeyHub) add(l keyListener) uuid.UUID {
	id := uuid.New()
	h.listeners[id] = l
	h.order = append(h.order, id)
	return id
}

// Unsubscribe removes a listener. It reports whether the token was live.
func (h *KeyHub) Unsubscribe(id uuid.UUID) bool {
	if _, ok := h.listeners[id]; !ok {
		return false
	}
	delete(h.listeners, id)
	for i, o := range h.order {
		if o == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
	return true
}

// Dispatch delivers key to matching listeners in registration order.
// Listeners added during dispatch see only later keys.
func (h *KeyHub) Dispatch(key string) {
	ids := make([]uuid.UUID, len(h.order))
	copy(ids, h.order)

	for _, id := range ids {
		l, ok := h.listeners[id]
		if !ok {
			continue
		}
		if l.match != "" && l.match != key {
			continue
		}
		if l.once {
			h.Unsubscribe(id)
		}
		l.fn(key)
	}
}

// Active returns the number of registered listeners.
func (h *KeyHub) Active() int {
	return len(h.listeners)
}
