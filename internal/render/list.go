// ABOUTME: EntryList models the visible workout list below the form.
// ABOUTME: Entries are inserted directly after the form, so the newest comes first.
package render

// EntryList is an in-memory visible list.
type EntryList struct {
	entries []ListEntry
}

// NewEntryList creates an empty list.
func NewEntryList() *EntryList {
	return &EntryList{}
}

// InsertAfterForm places entry at the top of the list.
func (l *EntryList) InsertAfterForm(entry ListEntry) {
	l.entries = append([]ListEntry{entry}, l.entries...)
}

// Clear removes every entry.
func (l *EntryList) Clear() {
	l.entries = nil
}

// Entries returns the visible entries, top first.
func (l *EntryList) Entries() []ListEntry {
	out := make([]ListEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Lookup returns the entry with the given workout ID.
func (l *EntryList) Lookup(id string) (ListEntry, bool) {
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return ListEntry{}, false
}

// Len returns the number of entries.
func (l *EntryList) Len() int {
	return len(l.entries)
}
