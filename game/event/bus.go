// Package event implements the name-keyed observer registry shared by the
// timer, the score manager and the game session.
package event

// Event is delivered to every handler subscribed to Name.
type Event struct {
	Name    string
	Payload any
}

// Handler wraps a callback. Handlers are compared by pointer, so the same
// *Handler subscribed twice to a name is only called once.
type Handler struct {
	fn func(Event)
}

func NewHandler(fn func(Event)) *Handler {
	return &Handler{fn: fn}
}

func (h *Handler) Handle(e Event) {
	if h == nil || h.fn == nil {
		return
	}
	h.fn(e)
}

// Bus maps event names to ordered, duplicate-free handler lists.
// The zero value is ready to use. Bus is not safe for concurrent use;
// the engine runs on a single logical thread.
type Bus struct {
	handlers map[string][]*Handler
}

// Subscribe appends h to the listeners of name and reports whether it was added.
func (b *Bus) Subscribe(name string, h *Handler) bool {
	if h == nil {
		return false
	}
	if b.handlers == nil {
		b.handlers = make(map[string][]*Handler)
	}
	for _, existing := range b.handlers[name] {
		if existing == h {
			return false
		}
	}
	b.handlers[name] = append(b.handlers[name], h)
	return true
}

// On is a shorthand that wraps fn in a new Handler and subscribes it.
func (b *Bus) On(name string, fn func(Event)) *Handler {
	h := NewHandler(fn)
	b.Subscribe(name, h)
	return h
}

// Unsubscribe removes h from the listeners of name.
func (b *Bus) Unsubscribe(name string, h *Handler) {
	list := b.handlers[name]
	for i, existing := range list {
		if existing == h {
			b.handlers[name] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Listeners returns a copy of the handlers registered for name.
// Unknown names yield an empty list.
func (b *Bus) Listeners(name string) []*Handler {
	list := b.handlers[name]
	out := make([]*Handler, len(list))
	copy(out, list)
	return out
}

// Publish calls every handler of name in subscription order.
// Handlers added during delivery are not called for this event.
func (b *Bus) Publish(name string, payload any) {
	e := Event{Name: name, Payload: payload}
	for _, h := range b.Listeners(name) {
		h.Handle(e)
	}
}
