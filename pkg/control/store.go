package control

import (
	"fmt"
	"log/slog"

	"github.com/go-drift/animatedborder/pkg/errors"
)

// Store holds the attributes declared by one control.
type Store struct {
	control string
	attrs   []attribute
	index   map[string]attribute
	strict  bool
	logger  *slog.Logger
}

// NewStore returns an empty store for the named control type.
func NewStore(control string) *Store {
	return &Store{
		control: control,
		index:   make(map[string]attribute),
	}
}

func (s *Store) register(a attribute) {
	if _, dup := s.index[a.Name()]; dup {
		panic(fmt.Sprintf("control: attribute %q declared twice on %s", a.Name(), s.control))
	}
	s.attrs = append(s.attrs, a)
	s.index[a.Name()] = a
}

// Set writes a loosely typed value to the named attribute. A nil value
// unsets it. The value must match the attribute's type or be coercible to it.
func (s *Store) Set(name string, value any) error {
	a, ok := s.index[name]
	if !ok {
		return &errors.PropertyError{
			Control:  s.control,
			Property: name,
			Value:    value,
			Reason:   "unknown property",
		}
	}
	return a.setAny(value)
}

// Get returns the named attribute's value. The second result is false when
// the attribute is unknown or unset.
func (s *Store) Get(name string) (any, bool) {
	a, ok := s.index[name]
	if !ok || !a.IsSet() {
		return nil, false
	}
	return a.valueAny(), true
}

// Has reports whether name is a declared attribute.
func (s *Store) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Names returns every declared attribute name in declaration order.
func (s *Store) Names() []string {
	names := make([]string, len(s.attrs))
	for i, a := range s.attrs {
		names[i] = a.Name()
	}
	return names
}

// Dirty returns the names changed since the last flush, in declaration order.
func (s *Store) Dirty() []string {
	var names []string
	for _, a := range s.attrs {
		if a.Dirty() {
			names = append(names, a.Name())
		}
	}
	return names
}

// flush encodes every dirty attribute and clears the dirty set. Attributes
// that fail to encode are reported and sent as removed when the renderer
// still holds an older value.
func (s *Store) flush(id string) (map[string]string, []string) {
	var (
		attrs   map[string]string
		removed []string
	)
	for _, a := range s.attrs {
		if !a.Dirty() {
			continue
		}
		v, ok, err := a.encoded()
		if err != nil {
			errors.Report(&errors.DriftError{
				Op:   "control.flush",
				Kind: errors.KindProperty,
				Err:  fmt.Errorf("%s %s.%s: %w", s.control, id, a.Name(), err),
			})
			if a.markFlushed(false) {
				removed = append(removed, a.Name())
			}
			continue
		}
		if ok {
			if attrs == nil {
				attrs = make(map[string]string)
			}
			attrs[a.Name()] = v
		}
		if a.markFlushed(ok) {
			removed = append(removed, a.Name())
		}
	}
	return attrs, removed
}

// invalidate marks every set attribute dirty and clears the sent state.
func (s *Store) invalidate() {
	for _, a := range s.attrs {
		a.invalidate()
	}
}
