package control

import (
	"testing"

	drifterrors "github.com/go-drift/animatedborder/pkg/errors"
)

func TestOnLastRegistrationWins(t *testing.T) {
	b := NewBase("events")
	var calls []string
	b.On("animation_end", func(Event) { calls = append(calls, "first") })
	b.On("animation_end", func(Event) { calls = append(calls, "second") })

	if !b.Dispatch(Event{Name: "animation_end"}) {
		t.Fatal("Dispatch reported no handler")
	}
	if len(calls) != 1 || calls[0] != "second" {
		t.Errorf("calls = %v, want [second]", calls)
	}
}

func TestDispatchOncePerReport(t *testing.T) {
	b := NewBase("events")
	count := 0
	var last Event
	b.On("tick", func(e Event) {
		count++
		last = e
	})
	b.Dispatch(Event{Name: "tick", Data: "1"})
	b.Dispatch(Event{Name: "tick", Data: "2"})
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if last.Data != "2" || last.Target != b.ID() {
		t.Errorf("last = %+v", last)
	}
}

func TestDispatchUnknownEvent(t *testing.T) {
	b := NewBase("events")
	if b.Dispatch(Event{Name: "missing"}) {
		t.Error("Dispatch reported a handler for an unregistered event")
	}
}

func TestOnNilRemoves(t *testing.T) {
	b := NewBase("events")
	b.On("x", func(Event) {})
	b.On("x", nil)
	if b.HasHandler("x") {
		t.Error("handler still registered")
	}
}

func TestDeclareEventFlag(t *testing.T) {
	b := NewBase("events")
	b.DeclareEvent("animation_end", "onAnimationEnd")

	u := b.Flush()
	if _, ok := u.Attr("onAnimationEnd"); ok {
		t.Error("flag emitted without handler")
	}

	b.On("animation_end", func(Event) {})
	u = b.Flush()
	if v, _ := u.Attr("onAnimationEnd"); v != "true" {
		t.Errorf("onAnimationEnd = %q, want true", v)
	}

	b.On("animation_end", func(Event) {})
	if u := b.Flush(); !u.Empty() {
		t.Errorf("re-registering should not re-send the flag: %+v", u)
	}

	b.On("animation_end", nil)
	u = b.Flush()
	if !u.IsRemoved("onAnimationEnd") {
		t.Errorf("flag not removed: %+v", u)
	}
}

func TestDispatchRecoversPanic(t *testing.T) {
	var reported *drifterrors.PanicError
	old := drifterrors.DefaultHandler
	drifterrors.SetHandler(&captureHandler{onPanic: func(e *drifterrors.PanicError) { reported = e }})
	defer drifterrors.SetHandler(old)

	b := NewBase("events")
	b.On("boom", func(Event) { panic("handler failed") })
	if !b.Dispatch(Event{Name: "boom"}) {
		t.Error("Dispatch should report that the handler ran")
	}
	if reported == nil || reported.Value != "handler failed" {
		t.Errorf("reported = %+v", reported)
	}
}
