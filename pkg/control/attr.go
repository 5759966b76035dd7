package control

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-drift/animatedborder/pkg/errors"
)

// Spec declares an attribute on a [Store].
type Spec[T any] struct {
	// Name is the wire attribute name.
	Name string
	// Default is the initial value. Ignored when Absent is set.
	Default T
	// Absent starts the attribute unset, leaving the renderer default.
	Absent bool
	// Encode produces the wire string. Required.
	Encode Encoder[T]
	// Coerce converts loosely typed input for [Store.Set]. Optional; a plain
	// type assertion is always tried first.
	Coerce func(any) (T, bool)
	// Validate rejects values in strict mode. Optional.
	Validate func(T) error
}

// Attr is a typed, change-tracked attribute value.
type Attr[T any] struct {
	store   *Store
	spec    Spec[T]
	val     T
	present bool
	dirty   bool
	sent    bool
}

// Declare registers a new attribute on s and returns its holder.
// It panics if the name is already declared or Encode is nil.
func Declare[T any](s *Store, spec Spec[T]) *Attr[T] {
	if spec.Encode == nil {
		panic(fmt.Sprintf("control: attribute %q has no encoder", spec.Name))
	}
	a := &Attr[T]{store: s, spec: spec}
	if !spec.Absent {
		a.val = spec.Default
		a.present = true
		a.dirty = true
	}
	s.register(a)
	return a
}

// Name returns the wire attribute name.
func (a *Attr[T]) Name() string {
	return a.spec.Name
}

// Get returns the current value and whether one is set.
func (a *Attr[T]) Get() (T, bool) {
	return a.val, a.present
}

// Value returns the current value, or the zero value when unset.
func (a *Attr[T]) Value() T {
	return a.val
}

// IsSet reports whether the attribute holds a value.
func (a *Attr[T]) IsSet() bool {
	return a.present
}

// Dirty reports whether the attribute changed since the last flush.
func (a *Attr[T]) Dirty() bool {
	return a.dirty
}

// Set stores v. The attribute becomes dirty only if v differs from the
// current value. In strict mode the attribute's validator may reject v, in which
// case nothing is stored and a [errors.PropertyError] is returned.
func (a *Attr[T]) Set(v T) error {
	if a.store.strict && a.spec.Validate != nil {
		if err := a.spec.Validate(v); err != nil {
			perr := &errors.PropertyError{
				Control:  a.store.control,
				Property: a.spec.Name,
				Value:    v,
				Reason:   err.Error(),
			}
			errors.ReportProperty(perr)
			return perr
		}
	}
	changed := !a.present || !reflect.DeepEqual(a.val, v)
	a.val = v
	a.present = true
	if changed {
		a.dirty = true
	}
	a.store.logSet(a.spec.Name, v, changed)
	return nil
}

// Unset clears the value so the renderer falls back to its default.
func (a *Attr[T]) Unset() {
	changed := a.present
	var zero T
	a.val = zero
	a.present = false
	if changed {
		a.dirty = true
	}
	a.store.logSet(a.spec.Name, nil, changed)
}

// attribute is the type-erased view the Store works with.
type attribute interface {
	Name() string
	IsSet() bool
	Dirty() bool
	valueAny() any
	setAny(v any) error
	encoded() (string, bool, error)
	markFlushed(emitted bool) (removed bool)
	invalidate()
	typeName() string
}

func (a *Attr[T]) valueAny() any {
	if !a.present {
		return nil
	}
	return a.val
}

func (a *Attr[T]) typeName() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

func (a *Attr[T]) setAny(v any) error {
	if v == nil {
		a.Unset()
		return nil
	}
	if tv, ok := v.(T); ok {
		return a.Set(tv)
	}
	if a.spec.Coerce != nil {
		if tv, ok := a.spec.Coerce(v); ok {
			return a.Set(tv)
		}
	}
	return &errors.PropertyError{
		Control:  a.store.control,
		Property: a.spec.Name,
		Value:    v,
		Reason:   fmt.Sprintf("expected %s, got %T", a.typeName(), v),
	}
}

func (a *Attr[T]) encoded() (string, bool, error) {
	if !a.present {
		return "", false, nil
	}
	return a.spec.Encode(a.val)
}

// markFlushed clears the dirty bit and records whether the renderer now holds
// a value. It reports true when a previously sent value must be removed.
func (a *Attr[T]) markFlushed(emitted bool) bool {
	a.dirty = false
	removed := a.sent && !emitted
	a.sent = emitted
	return removed
}

// invalidate forgets what the renderer holds. A present value becomes dirty
// again so the next flush resends it.
func (a *Attr[T]) invalidate() {
	a.sent = false
	a.dirty = a.present
}

func (s *Store) logSet(name string, v any, changed bool) {
	if s.logger == nil {
		return
	}
	s.logger.Debug("set property",
		slog.String("control", s.control),
		slog.String("name", name),
		slog.Any("value", v),
		slog.Bool("changed", changed),
	)
}
