package platform

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/go-drift/animatedborder/pkg/control"
	"github.com/go-drift/animatedborder/pkg/errors"
	"github.com/google/uuid"
)

// Channel names used by a Session.
const (
	// ControlsChannel carries control updates to the renderer and control
	// events back.
	ControlsChannel = "drift/controls"

	// RendererEventsChannel streams renderer lifecycle states.
	RendererEventsChannel = "drift/renderer/events"
)

// Methods on ControlsChannel.
const (
	MethodMount        = "mountControl"
	MethodApply        = "applyUpdate"
	MethodUnmount      = "unmountControl"
	MethodControlEvent = "controlEvent"
)

// Session owns the root controls shown by one renderer. It sends their
// flushed updates over [ControlsChannel] and routes renderer events to the
// target control's handler.
//
// Mount, Unmount, Update and Resync must be called from the goroutine that
// owns the controls. Incoming events, and the resync a ready renderer asks
// for, are handed to that goroutine through [Dispatch] when a dispatch
// function is registered. Otherwise events run on the bridge goroutine and
// resyncs on a goroutine of their own.
//
// Channels are registered by name, so the most recently created Session
// receives renderer calls.
type Session struct {
	id      string
	channel *MethodChannel
	logger  *slog.Logger
	metrics *Metrics

	mu          sync.Mutex
	roots       []control.Control
	closed      bool
	unsubscribe func()
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger routes session records to l.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = l
	}
}

// WithMetrics records session activity in m.
func WithMetrics(m *Metrics) SessionOption {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession creates a session and registers its channel handlers.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		id:     uuid.NewString(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("session", s.id))

	s.channel = NewMethodChannel(ControlsChannel)
	s.channel.SetHandler(s.handleCall)

	states := NewStream(RendererEventsChannel, NewEventChannel(RendererEventsChannel), parseRendererState)
	s.unsubscribe = states.Listen(s.onRendererState)
	return s
}

// ID returns the session identifier sent with every message.
func (s *Session) ID() string {
	return s.id
}

// Controls returns the IDs of the mounted root controls in mount order.
func (s *Session) Controls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.roots))
	for i, c := range s.roots {
		ids[i] = c.ID()
	}
	return ids
}

// Lookup finds a mounted control by ID, searching roots and their content
// children.
func (s *Session) Lookup(id string) control.Control {
	s.mu.Lock()
	roots := slices.Clone(s.roots)
	s.mu.Unlock()

	for _, root := range roots {
		for c := root; c != nil; c = c.Child() {
			if c.ID() == id {
				return c
			}
		}
	}
	return nil
}

type mountMessage struct {
	Session string         `json:"session"`
	Control control.Update `json:"control"`
}

type applyMessage struct {
	Session string           `json:"session"`
	Updates []control.Update `json:"updates"`
}

type unmountMessage struct {
	Session string `json:"session"`
	ID      string `json:"id"`
}

// Mount sends the full state of c and keeps it as a root. When the renderer
// call fails, c is not mounted and its state is kept for a later attempt.
func (s *Session) Mount(ctx context.Context, c control.Control) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.indexLocked(c.ID()) >= 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrAlreadyMounted, c.ID())
	}
	s.mu.Unlock()

	c.Invalidate()
	u := c.Flush()
	if err := s.invoke(ctx, MethodMount, mountMessage{Session: s.id, Control: u}, u); err != nil {
		c.Invalidate()
		return err
	}

	s.mu.Lock()
	s.roots = append(s.roots, c)
	n := len(s.roots)
	s.mu.Unlock()
	s.metrics.setMounted(n)
	s.logger.Debug("mounted control", slog.String("id", c.ID()), slog.String("type", c.ControlType()))
	return nil
}

// Unmount removes the root control with the given ID from the renderer.
func (s *Session) Unmount(ctx context.Context, id string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotMounted, id)
	}
	s.roots = slices.Delete(s.roots, i, i+1)
	n := len(s.roots)
	s.mu.Unlock()
	s.metrics.setMounted(n)

	if err := s.invoke(ctx, MethodUnmount, unmountMessage{Session: s.id, ID: id}); err != nil {
		return err
	}
	s.logger.Debug("unmounted control", slog.String("id", id))
	return nil
}

// Update flushes every root and sends the changes in one batch. Roots with
// nothing to send are left out; when no root changed, nothing is sent.
//
// If the renderer call fails, the flushed roots are invalidated so the next
// Update resends their full state.
func (s *Session) Update(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	roots := slices.Clone(s.roots)
	s.mu.Unlock()

	var updates []control.Update
	for _, c := range roots {
		if u := c.Flush(); hasChanges(u) {
			updates = append(updates, u)
		}
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.invoke(ctx, MethodApply, applyMessage{Session: s.id, Updates: updates}, updates...); err != nil {
		for _, c := range roots {
			c.Invalidate()
		}
		return err
	}
	return nil
}

// Resync remounts every root with its full state. It is called when the
// renderer reports [RendererReady].
func (s *Session) Resync(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	roots := slices.Clone(s.roots)
	s.mu.Unlock()

	for _, c := range roots {
		c.Invalidate()
		u := c.Flush()
		if err := s.invoke(ctx, MethodMount, mountMessage{Session: s.id, Control: u}, u); err != nil {
			c.Invalidate()
			return err
		}
	}
	s.logger.Debug("resynced controls", slog.Int("count", len(roots)))
	return nil
}

// Close detaches the session from its channels. Mounted controls are
// forgotten but not unmounted from the renderer.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.roots = nil
	unsubscribe := s.unsubscribe
	s.mu.Unlock()

	s.channel.SetHandler(nil)
	if unsubscribe != nil {
		unsubscribe()
	}
	s.metrics.setMounted(0)
	return nil
}

func (s *Session) indexLocked(id string) int {
	return slices.IndexFunc(s.roots, func(c control.Control) bool { return c.ID() == id })
}

func (s *Session) invoke(ctx context.Context, method string, msg any, sent ...control.Update) error {
	if _, err := s.channel.InvokeContext(ctx, method, msg); err != nil {
		s.metrics.recordFailure(method)
		errors.Report(&errors.DriftError{
			Op:      "platform.Session." + method,
			Kind:    errors.KindPlatform,
			Channel: ControlsChannel,
			Err:     err,
		})
		return err
	}
	s.metrics.recordSent(method, sent)
	return nil
}

// hasChanges reports whether u or any nested update carries attributes or
// removals.
func hasChanges(u control.Update) bool {
	changed := false
	u.Walk(func(n control.Update) {
		if len(n.Attrs) > 0 || len(n.Removed) > 0 {
			changed = true
		}
	})
	return changed
}

func (s *Session) handleCall(method string, args any) (any, error) {
	switch method {
	case MethodControlEvent:
		e, err := parseControlEvent(args)
		if err != nil {
			errors.Report(&errors.DriftError{
				Op:      "platform.Session.controlEvent",
				Kind:    errors.KindParsing,
				Channel: ControlsChannel,
				Err:     err,
			})
			return nil, err
		}
		dispatchOrRun(func() { s.deliver(e) })
		return nil, nil
	default:
		return nil, ErrMethodNotFound
	}
}

// handlerChecker is implemented by controls that can report whether a
// handler is registered, such as *control.Base.
type handlerChecker interface {
	HasHandler(event string) bool
}

func (s *Session) deliver(e control.Event) {
	c := s.Lookup(e.Target)
	if c == nil {
		s.metrics.recordEvent(eventUnknownControl)
		s.logger.Debug("event for unknown control", slog.String("id", e.Target), slog.String("event", e.Name))
		return
	}
	if hc, ok := c.(handlerChecker); ok && !hc.HasHandler(e.Name) {
		s.metrics.recordEvent(eventUnhandled)
		return
	}
	c.Dispatch(e)
	s.metrics.recordEvent(eventDispatched)
	s.logger.Debug("dispatched event", slog.String("id", e.Target), slog.String("event", e.Name))
}

// parseControlEvent decodes {"id": ..., "name": ..., "data": ...}.
func parseControlEvent(args any) (control.Event, error) {
	m := object(args)
	e := control.Event{
		Target: field(m, "id"),
		Name:   field(m, "name"),
		Data:   field(m, "data"),
	}
	if m == nil || e.Target == "" || e.Name == "" {
		return control.Event{}, &errors.ParseError{
			Channel:  ControlsChannel,
			DataType: "ControlEvent",
			Got:      args,
		}
	}
	return e, nil
}

// onRendererState runs on the bridge's event goroutine. Resync waits for
// renderer replies, so it is started elsewhere.
func (s *Session) onRendererState(state RendererState) {
	s.logger.Debug("renderer state", slog.String("state", string(state)))
	if state != RendererReady {
		return
	}
	go dispatchOrRun(func() {
		// Failures are reported by invoke.
		_ = s.Resync(context.Background())
	})
}
