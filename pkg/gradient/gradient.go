// Package gradient defines structured gradient descriptors sent to the renderer.
//
// Each descriptor exposes its colours through GradientColors so controls that
// only need a colour list (such as the animated border) can derive one from a
// full gradient.
package gradient

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-drift/animatedborder/pkg/colors"
)

// Type describes the gradient variant.
type Type string

const (
	// TypeLinear indicates a linear gradient.
	TypeLinear Type = "linear"
	// TypeRadial indicates a radial gradient.
	TypeRadial Type = "radial"
	// TypeSweep indicates a sweep (conic) gradient.
	TypeSweep Type = "sweep"
)

// TileMode controls how the gradient paints outside its bounds.
type TileMode string

const (
	TileClamp    TileMode = "clamp"
	TileDecal    TileMode = "decal"
	TileMirror   TileMode = "mirror"
	TileRepeated TileMode = "repeated"
)

// Alignment is a point in a rectangle where (-1, -1) is the top left corner
// and (1, 1) the bottom right.
type Alignment struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Common alignments.
var (
	TopLeft      = Alignment{-1, -1}
	TopCenter    = Alignment{0, -1}
	TopRight     = Alignment{1, -1}
	CenterLeft   = Alignment{-1, 0}
	Center       = Alignment{0, 0}
	CenterRight  = Alignment{1, 0}
	BottomLeft   = Alignment{-1, 1}
	BottomCenter = Alignment{0, 1}
	BottomRight  = Alignment{1, 1}
)

// Gradient is implemented by every descriptor in this package.
type Gradient interface {
	json.Marshaler
	// Type returns the gradient variant.
	Type() Type
	// GradientColors returns the colour list in stop order.
	GradientColors() []colors.Color
	// Validate reports structural problems the renderer would reject.
	Validate() error
}

// Errors returned by Validate.
var (
	ErrTooFewColors  = errors.New("gradient: at least two colors required")
	ErrStopsMismatch = errors.New("gradient: stops must match colors")
	ErrStopRange     = errors.New("gradient: stops must be ascending within [0, 1]")
	ErrRadius        = errors.New("gradient: radius must be positive")
)

func validateStops(cs []colors.Color, stops []float64) error {
	if len(cs) < 2 {
		return ErrTooFewColors
	}
	if len(stops) == 0 {
		return nil
	}
	if len(stops) != len(cs) {
		return fmt.Errorf("%w: %d stops for %d colors", ErrStopsMismatch, len(stops), len(cs))
	}
	prev := 0.0
	for _, s := range stops {
		if s < 0 || s > 1 || s < prev {
			return ErrStopRange
		}
		prev = s
	}
	return nil
}

func cloneColors(cs []colors.Color) []colors.Color {
	if len(cs) == 0 {
		return nil
	}
	clone := make([]colors.Color, len(cs))
	copy(clone, cs)
	return clone
}

// payload is the shared renderer encoding for all gradient types.
type payload struct {
	Type        Type       `json:"type"`
	Colors      []string   `json:"colors"`
	Stops       []float64  `json:"stops,omitempty"`
	TileMode    TileMode   `json:"tile_mode,omitempty"`
	Rotation    float64    `json:"rotation,omitempty"`
	Begin       *Alignment `json:"begin,omitempty"`
	End         *Alignment `json:"end,omitempty"`
	Center      *Alignment `json:"center,omitempty"`
	Radius      float64    `json:"radius,omitempty"`
	Focal       *Alignment `json:"focal,omitempty"`
	FocalRadius float64    `json:"focal_radius,omitempty"`
	StartAngle  float64    `json:"start_angle,omitempty"`
	EndAngle    float64    `json:"end_angle,omitempty"`
}
