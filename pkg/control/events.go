package control

import (
	"log/slog"

	"github.com/go-drift/animatedborder/pkg/errors"
)

// Event is a notification reported by the renderer for one control.
type Event struct {
	// Target is the ID of the control the event is for.
	Target string `json:"target"`
	// Name is the event name (e.g., "animation_end").
	Name string `json:"name"`
	// Data is an optional event payload as sent by the renderer.
	Data string `json:"data,omitempty"`
}

// Handler receives an event.
type Handler func(e Event)

// On registers h for the named event, replacing any previous handler.
// A nil handler removes the registration. If the event was declared with
// [Base.DeclareEvent], its presence flag attribute follows the registration.
func (b *Base) On(name string, h Handler) {
	if h == nil {
		delete(b.handlers, name)
	} else {
		b.handlers[name] = h
	}
	if flag, ok := b.eventFlags[name]; ok {
		if h == nil {
			flag.Unset()
		} else {
			flag.Set(true)
		}
	}
	if b.logger != nil {
		b.logger.Debug("register handler",
			slog.String("control", b.typ),
			slog.String("id", b.id),
			slog.String("event", name),
			slog.Bool("registered", h != nil),
		)
	}
}

// HasHandler reports whether a handler is registered for name.
func (b *Base) HasHandler(name string) bool {
	_, ok := b.handlers[name]
	return ok
}

// DeclareEvent ties a boolean presence attribute to an event. The attribute
// carries "true" while a handler is registered and is removed otherwise;
// the handler itself never leaves the process.
func (b *Base) DeclareEvent(event, attr string) {
	b.eventFlags[event] = Declare(b.store, Spec[bool]{
		Name:   attr,
		Absent: true,
		Encode: Text[bool](),
	})
}

// Dispatch invokes the handler currently registered for e.Name exactly once,
// on the calling goroutine. It reports whether a handler ran. A panicking
// handler is recovered and reported.
func (b *Base) Dispatch(e Event) (ran bool) {
	h, ok := b.handlers[e.Name]
	if !ok {
		return false
	}
	if e.Target == "" {
		e.Target = b.id
	}
	defer errors.Recover("control.Dispatch " + b.typ + "." + e.Name)
	ran = true
	h(e)
	return ran
}
