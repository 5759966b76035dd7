package border

import (
	"fmt"
	"strings"
)

// Type selects how the border is painted.
type Type int

const (
	// Dual animates two colours chasing each other around a track.
	Dual Type = iota
	// SoftGradient rotates a blurred multi-colour gradient.
	SoftGradient
)

// String returns the renderer tag for t.
func (t Type) String() string {
	switch t {
	case Dual:
		return "dual"
	case SoftGradient:
		return "soft_gradient"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Known reports whether t is a defined border type.
func (t Type) Known() bool {
	return t == Dual || t == SoftGradient
}

// ParseType returns the Type for a renderer tag. Matching ignores case and
// accepts the upper-case constant spelling (e.g. "SOFT_GRADIENT").
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dual":
		return Dual, nil
	case "soft_gradient":
		return SoftGradient, nil
	default:
		return 0, fmt.Errorf("unknown border type %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Known() {
		return nil, fmt.Errorf("unknown border type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
