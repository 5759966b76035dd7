package platform

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/go-drift/animatedborder/pkg/control"
	"github.com/go-drift/animatedborder/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// decodeCall unmarshals the arguments of a recorded call into v.
func decodeCall(t *testing.T, call RecordedCall, v any) {
	t.Helper()
	if err := json.Unmarshal(call.Args, v); err != nil {
		t.Fatalf("decode %s args: %v", call.Method, err)
	}
}

func quietErrors(t *testing.T) {
	old := errors.DefaultHandler
	errors.SetHandler(discardHandler{})
	t.Cleanup(func() { errors.SetHandler(old) })
}

type discardHandler struct{}

func (discardHandler) HandleError(*errors.DriftError)            {}
func (discardHandler) HandlePanic(*errors.PanicError)            {}
func (discardHandler) HandlePropertyError(*errors.PropertyError) {}

func TestSessionMountSendsFullState(t *testing.T) {
	bridge := SetupRecordingBridge(t.Cleanup)
	s := NewSession(WithSessionID("s1"))

	c := control.NewBase("box", control.WithID("root"))
	c.Tooltip.Set("hello")
	c.Flush() // already flushed once, Mount must still send it

	if err := s.Mount(context.Background(), c); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	calls := bridge.Calls()
	if len(calls) != 1 || calls[0].Method != MethodMount || calls[0].Channel != ControlsChannel {
		t.Fatalf("calls = %+v", calls)
	}
	var msg mountMessage
	decodeCall(t, calls[0], &msg)
	if msg.Session != "s1" || msg.Control.ID != "root" || msg.Control.Attrs["tooltip"] != "hello" {
		t.Errorf("mount message = %+v", msg)
	}
	if ids := s.Controls(); len(ids) != 1 || ids[0] != "root" {
		t.Errorf("Controls() = %v", ids)
	}

	if err := s.Mount(context.Background(), c); !stderrors.Is(err, ErrAlreadyMounted) {
		t.Errorf("second Mount = %v, want ErrAlreadyMounted", err)
	}
}

func TestSessionUpdateBatchesChanges(t *testing.T) {
	bridge := SetupRecordingBridge(t.Cleanup)
	s := NewSession()

	a := control.NewBase("box", control.WithID("a"))
	b := control.NewBase("box", control.WithID("b"))
	child := control.NewBase("text", control.WithID("a.child"))
	a.SetChild(child)
	for _, c := range []control.Control{a, b} {
		if err := s.Mount(context.Background(), c); err != nil {
			t.Fatal(err)
		}
	}
	bridge.Calls()

	if err := s.Update(context.Background()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if calls := bridge.Calls(); len(calls) != 0 {
		t.Errorf("Update with no changes sent %+v", calls)
	}

	child.Opacity.Set(0.5)
	if err := s.Update(context.Background()); err != nil {
		t.Fatalf("Update: %v", err)
	}
	calls := bridge.Calls()
	if len(calls) != 1 || calls[0].Method != MethodApply {
		t.Fatalf("calls = %+v", calls)
	}
	var msg applyMessage
	decodeCall(t, calls[0], &msg)
	if len(msg.Updates) != 1 || msg.Updates[0].ID != "a" {
		t.Fatalf("updates = %+v", msg.Updates)
	}
	got, ok := msg.Updates[0].Child(control.ContentSlot)
	if !ok || got.Attrs["opacity"] != "0.5" {
		t.Errorf("child update = %+v", got)
	}
}

func TestSessionUpdateFailureResendsFullState(t *testing.T) {
	quietErrors(t)
	bridge := SetupRecordingBridge(t.Cleanup)
	s := NewSession()

	c := control.NewBase("box", control.WithID("root"))
	c.Left.Set(1)
	if err := s.Mount(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	bridge.Calls()

	c.Top.Set(2)
	bridge.Err = stderrors.New("renderer gone")
	if err := s.Update(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	bridge.Err = nil
	if err := s.Update(context.Background()); err != nil {
		t.Fatal(err)
	}
	var msg applyMessage
	decodeCall(t, bridge.Calls()[0], &msg)
	attrs := msg.Updates[0].Attrs
	if attrs["left"] != "1" || attrs["top"] != "2" {
		t.Errorf("attrs after failure = %v, want full state", attrs)
	}
}

func TestSessionUnmount(t *testing.T) {
	bridge := SetupRecordingBridge(t.Cleanup)
	s := NewSession(WithSessionID("s"))
	c := control.NewBase("box", control.WithID("root"))
	if err := s.Mount(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	bridge.Calls()

	if err := s.Unmount(context.Background(), "root"); err != nil {
		t.Fatalf("Unmount: %v", err)
	}
	var msg unmountMessage
	decodeCall(t, bridge.Calls()[0], &msg)
	if msg.ID != "root" || msg.Session != "s" {
		t.Errorf("unmount message = %+v", msg)
	}
	if err := s.Unmount(context.Background(), "root"); !stderrors.Is(err, ErrNotMounted) {
		t.Errorf("Unmount twice = %v, want ErrNotMounted", err)
	}
}

func TestSessionCanceledContext(t *testing.T) {
	quietErrors(t)
	SetupRecordingBridge(t.Cleanup)
	s := NewSession()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := control.NewBase("box")
	if err := s.Mount(ctx, c); !stderrors.Is(err, ErrCanceled) {
		t.Errorf("Mount = %v, want ErrCanceled", err)
	}
	if len(s.Controls()) != 0 {
		t.Error("control mounted despite failure")
	}
}

func TestSessionWithoutBridge(t *testing.T) {
	quietErrors(t)
	t.Cleanup(ResetForTest)
	s := NewSession()
	if err := s.Mount(context.Background(), control.NewBase("box")); !stderrors.Is(err, ErrPlatformUnavailable) {
		t.Errorf("Mount = %v, want ErrPlatformUnavailable", err)
	}
}

func TestSessionRoutesControlEvents(t *testing.T) {
	SetupRecordingBridge(t.Cleanup)
	s := NewSession()

	root := control.NewBase("box", control.WithID("root"))
	child := control.NewBase("text", control.WithID("leaf"))
	root.SetChild(child)
	if err := s.Mount(context.Background(), root); err != nil {
		t.Fatal(err)
	}

	var got []control.Event
	child.On("click", func(e control.Event) { got = append(got, e) })

	args, _ := json.Marshal(map[string]any{"id": "leaf", "name": "click", "data": "x"})
	if _, err := HandleMethodCall(ControlsChannel, MethodControlEvent, args); err != nil {
		t.Fatalf("HandleMethodCall: %v", err)
	}
	if len(got) != 1 || got[0].Target != "leaf" || got[0].Data != "x" {
		t.Errorf("events = %+v", got)
	}

	unknown, _ := json.Marshal(map[string]any{"id": "nope", "name": "click"})
	if _, err := HandleMethodCall(ControlsChannel, MethodControlEvent, unknown); err != nil {
		t.Errorf("unknown target should be dropped quietly, got %v", err)
	}
	if len(got) != 1 {
		t.Error("event for unknown control was delivered")
	}
}

func TestSessionRejectsMalformedEvents(t *testing.T) {
	quietErrors(t)
	SetupRecordingBridge(t.Cleanup)
	NewSession()

	for _, raw := range []string{`"just a string"`, `{"id":"x"}`, `{"name":"click"}`} {
		if _, err := HandleMethodCall(ControlsChannel, MethodControlEvent, []byte(raw)); err == nil {
			t.Errorf("HandleMethodCall(%s) = nil error", raw)
		}
	}
	if _, err := HandleMethodCall(ControlsChannel, "bogus", nil); !stderrors.Is(err, ErrMethodNotFound) {
		t.Errorf("unknown method = %v", err)
	}
}

func TestSessionResyncOnRendererReady(t *testing.T) {
	bridge := SetupRecordingBridge(t.Cleanup)
	s := NewSession()
	if !bridge.Streaming(RendererEventsChannel) {
		t.Fatal("session did not start the renderer event stream")
	}

	c := control.NewBase("box", control.WithID("root"))
	c.Visible.Set(true)
	if err := s.Mount(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	bridge.Calls()

	if err := HandleEvent(RendererEventsChannel, []byte(`{"state":"ready"}`)); err != nil {
		t.Fatal(err)
	}
	calls := awaitCalls(t, bridge, 1)
	if len(calls) != 1 || calls[0].Method != MethodMount {
		t.Fatalf("calls = %+v", calls)
	}
	var msg mountMessage
	decodeCall(t, calls[0], &msg)
	if msg.Control.Attrs["visible"] != "true" {
		t.Errorf("resync attrs = %v", msg.Control.Attrs)
	}

	if err := HandleEvent(RendererEventsChannel, []byte(`{"state":"paused"}`)); err != nil {
		t.Fatal(err)
	}
	if calls := bridge.Calls(); len(calls) != 0 {
		t.Errorf("paused state triggered %+v", calls)
	}
}

// awaitCalls collects recorded calls until n have arrived.
func awaitCalls(t *testing.T, b *RecordingBridge, n int) []RecordedCall {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	var calls []RecordedCall
	for len(calls) < n {
		if time.Now().After(deadline) {
			t.Fatalf("got %d calls, want %d: %+v", len(calls), n, calls)
		}
		time.Sleep(time.Millisecond)
		calls = append(calls, b.Calls()...)
	}
	return calls
}

func TestSessionResyncLeavesEventGoroutine(t *testing.T) {
	bridge := SetupRecordingBridge(t.Cleanup)
	s := NewSession()
	if err := s.Mount(context.Background(), control.NewBase("box", control.WithID("root"))); err != nil {
		t.Fatal(err)
	}
	bridge.Calls()

	// A renderer only answers the remount after the state event returns.
	bridge.Block()
	returned := make(chan struct{})
	go func() {
		HandleEvent(RendererEventsChannel, []byte(`{"state":"ready"}`))
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("state event blocked on the resync")
	}
	bridge.Unblock()
	if calls := awaitCalls(t, bridge, 1); calls[0].Method != MethodMount {
		t.Errorf("calls = %+v", calls)
	}
}

func TestSessionClose(t *testing.T) {
	bridge := SetupRecordingBridge(t.Cleanup)
	s := NewSession()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if bridge.Streaming(RendererEventsChannel) {
		t.Error("renderer stream still running after Close")
	}
	if err := s.Mount(context.Background(), control.NewBase("box")); !stderrors.Is(err, ErrClosed) {
		t.Errorf("Mount after Close = %v", err)
	}
	if _, err := HandleMethodCall(ControlsChannel, MethodControlEvent, []byte(`{"id":"a","name":"b"}`)); !stderrors.Is(err, ErrMethodNotFound) {
		t.Errorf("call after Close = %v", err)
	}
}

func TestSessionMetrics(t *testing.T) {
	SetupRecordingBridge(t.Cleanup)
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSession(WithMetrics(m))

	c := control.NewBase("box", control.WithID("root"))
	c.Left.Set(1)
	c.Top.Set(2)
	if err := s.Mount(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	c.Top.Unset()
	if err := s.Update(context.Background()); err != nil {
		t.Fatal(err)
	}
	c.On("tap", func(control.Event) {})
	for _, id := range []string{"root", "root", "missing"} {
		args, _ := json.Marshal(map[string]string{"id": id, "name": "tap"})
		HandleMethodCall(ControlsChannel, MethodControlEvent, args)
	}
	args, _ := json.Marshal(map[string]string{"id": "root", "name": "hover"})
	HandleMethodCall(ControlsChannel, MethodControlEvent, args)

	values := gather(t, reg)
	want := map[string]float64{
		"animatedborder_session_attributes_sent_total":                2,
		"animatedborder_session_attributes_removed_total":             1,
		"animatedborder_session_mounted_controls":                     1,
		"animatedborder_session_updates_total{method=mountControl}":   1,
		"animatedborder_session_updates_total{method=applyUpdate}":    1,
		"animatedborder_session_events_total{result=dispatched}":      2,
		"animatedborder_session_events_total{result=unknown_control}": 1,
		"animatedborder_session_events_total{result=unhandled}":       1,
	}
	for k, v := range want {
		if values[k] != v {
			t.Errorf("%s = %v, want %v", k, values[k], v)
		}
	}

	if _, err := NewMetrics(reg); err == nil {
		t.Error("registering twice should fail")
	}
}

// gather flattens the registry into "name{label=value}" keys.
func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "{" + lp.GetName() + "=" + lp.GetValue() + "}"
			}
			switch {
			case m.GetCounter() != nil:
				out[key] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				out[key] = m.GetGauge().GetValue()
			}
		}
	}
	return out
}
