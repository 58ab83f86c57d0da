package dom

// Event types used by the widgets.
const (
	EventClick  = "click"
	EventChange = "change"
)

// Event is dispatched at a target element and bubbles to its ancestors and then
// to the document.
type Event struct {
	Type string
	// Target is the element the event was dispatched at.
	Target *Element
	// CurrentTarget is the element whose listener is running; nil for document listeners.
	CurrentTarget *Element

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles an event.
type Listener func(ev *Event)

type listenerEntry struct {
	fn      Listener
	removed bool
}

type listenerSet map[string][]*listenerEntry

func (s *listenerSet) add(typ string, fn Listener) func() {
	if *s == nil {
		*s = make(listenerSet)
	}
	entry := &listenerEntry{fn: fn}
	(*s)[typ] = append((*s)[typ], entry)
	return func() {
		entry.removed = true
		entries := (*s)[typ]
		for i, e := range entries {
			if e == entry {
				(*s)[typ] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

func (s listenerSet) fire(ev *Event) {
	// Listeners added during dispatch do not see this event.
	entries := append([]*listenerEntry(nil), s[ev.Type]...)
	for _, e := range entries {
		if !e.removed {
			e.fn(ev)
		}
	}
}
