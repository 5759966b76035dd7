package control

import (
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"

	"github.com/go-drift/animatedborder/pkg/errors"
)

// Control is a node in the control tree.
type Control interface {
	// ID returns the identifier the renderer knows this control by.
	ID() string
	// ControlType returns the renderer control type name.
	ControlType() string
	// Flush serializes pending changes and clears the dirty set.
	Flush() Update
	// Dispatch delivers a renderer event to this control.
	Dispatch(e Event) bool
	// Child returns the control mounted in the content slot, if any.
	Child() Control
	// Invalidate discards the renderer's known state for this control and
	// its child, so the next Flush is a full snapshot.
	Invalidate()
}

var nextID atomic.Int64

// newID returns a process-unique control ID.
func newID() string {
	return "_" + strconv.FormatInt(nextID.Add(1), 10)
}

// Option configures a [Base].
type Option func(*Base)

// WithLogger routes property and handler debug records to l.
func WithLogger(l *slog.Logger) Option {
	return func(b *Base) {
		b.logger = l
		b.store.logger = l
	}
}

// WithStrict enables mutation-time validation of attribute values.
func WithStrict() Option {
	return func(b *Base) {
		b.store.strict = true
	}
}

// WithID overrides the generated control ID.
func WithID(id string) Option {
	return func(b *Base) {
		b.id = id
	}
}

// derived is an attribute recomputed on every flush.
type derived struct {
	name    string
	compute func() (string, bool, error)
}

// Base is the embeddable core of every control. It owns the attribute store,
// the optional content child, and the event handlers. It also declares the
// positioning and visibility attributes common to constrained controls.
type Base struct {
	id         string
	typ        string
	store      *Store
	child      Control
	handlers   map[string]Handler
	eventFlags map[string]*Attr[bool]
	derived    []derived
	logger     *slog.Logger
	data       any

	Left    *Attr[float64]
	Top     *Attr[float64]
	Right   *Attr[float64]
	Bottom  *Attr[float64]
	Opacity *Attr[float64]
	Visible *Attr[bool]
	Tooltip *Attr[string]
}

// NewBase returns a Base for the given renderer control type.
func NewBase(controlType string, opts ...Option) *Base {
	b := &Base{
		id:         newID(),
		typ:        controlType,
		store:      NewStore(controlType),
		handlers:   make(map[string]Handler),
		eventFlags: make(map[string]*Attr[bool]),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.Left = declareOffset(b.store, "left")
	b.Top = declareOffset(b.store, "top")
	b.Right = declareOffset(b.store, "right")
	b.Bottom = declareOffset(b.store, "bottom")
	b.Opacity = Declare(b.store, Spec[float64]{
		Name:     "opacity",
		Absent:   true,
		Encode:   Text[float64](),
		Coerce:   CoerceFloat,
		Validate: unitRange,
	})
	b.Visible = Declare(b.store, Spec[bool]{
		Name:   "visible",
		Absent: true,
		Encode: Text[bool](),
	})
	b.Tooltip = Declare(b.store, Spec[string]{
		Name:   "tooltip",
		Absent: true,
		Encode: Text[string](),
	})
	return b
}

func declareOffset(s *Store, name string) *Attr[float64] {
	return Declare(s, Spec[float64]{
		Name:   name,
		Absent: true,
		Encode: Text[float64](),
		Coerce: CoerceFloat,
	})
}

func unitRange(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("must be within [0, 1]")
	}
	return nil
}

// ID returns the control ID.
func (b *Base) ID() string {
	return b.id
}

// ControlType returns the renderer control type name.
func (b *Base) ControlType() string {
	return b.typ
}

// Store returns the attribute store for name-based access.
func (b *Base) Store() *Store {
	return b.store
}

// Logger returns the injected logger, or nil.
func (b *Base) Logger() *slog.Logger {
	return b.logger
}

// Strict reports whether mutation-time validation is enabled.
func (b *Base) Strict() bool {
	return b.store.strict
}

// Set writes a property by wire name. See [Store.Set].
func (b *Base) Set(name string, value any) error {
	return b.store.Set(name, value)
}

// Get reads a property by wire name. See [Store.Get].
func (b *Base) Get(name string) (any, bool) {
	return b.store.Get(name)
}

// Dirty returns the attribute names changed since the last flush.
func (b *Base) Dirty() []string {
	return b.store.Dirty()
}

// Data returns the user payload. It is never sent to the renderer.
func (b *Base) Data() any {
	return b.data
}

// SetData attaches an arbitrary user payload.
func (b *Base) SetData(v any) {
	b.data = v
}

// Child returns the control in the content slot, or nil.
func (b *Base) Child() Control {
	return b.child
}

// SetChild mounts c in the content slot, discarding any previous child.
// Passing nil is equivalent to [Base.ClearChild].
func (b *Base) SetChild(c Control) {
	b.child = c
}

// ClearChild removes the content child.
func (b *Base) ClearChild() {
	b.child = nil
}

// Derive registers an attribute recomputed and emitted on every flush,
// bypassing dirty tracking. A derived attribute may share its name with a
// [Local] attribute holding one of its inputs; the derived value wins.
func (b *Base) Derive(name string, compute func() (string, bool, error)) {
	b.derived = append(b.derived, derived{name: name, compute: compute})
}

// Invalidate marks every set attribute dirty, recursively through the
// content child. Use it when the renderer lost its state.
func (b *Base) Invalidate() {
	b.store.invalidate()
	if b.child != nil {
		b.child.Invalidate()
	}
}

// Flush serializes the dirty attributes, every derived attribute, and the
// content child, then clears the dirty set.
func (b *Base) Flush() Update {
	attrs, removed := b.store.flush(b.id)
	for _, d := range b.derived {
		v, ok, err := d.compute()
		if err != nil {
			errors.Report(&errors.DriftError{
				Op:   "control.Flush",
				Kind: errors.KindProperty,
				Err:  fmt.Errorf("%s %s.%s: %w", b.typ, b.id, d.name, err),
			})
			continue
		}
		if !ok {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]string)
		}
		attrs[d.name] = v
	}

	u := Update{
		ID:      b.id,
		Type:    b.typ,
		Attrs:   attrs,
		Removed: removed,
	}
	if b.child != nil {
		cu := b.child.Flush()
		cu.Slot = ContentSlot
		u.Children = []Update{cu}
	}
	if b.logger != nil {
		b.logger.Debug("flush",
			slog.String("control", b.typ),
			slog.String("id", b.id),
			slog.Int("attrs", len(u.Attrs)),
			slog.Int("removed", len(u.Removed)),
			slog.Bool("child", b.child != nil),
		)
	}
	return u
}
