package gradient

import (
	"encoding/json"
	"math"

	"github.com/go-drift/animatedborder/pkg/colors"
)

// Linear is a gradient between two alignments.
type Linear struct {
	Colors   []colors.Color
	Stops    []float64
	Begin    Alignment
	End      Alignment
	TileMode TileMode
	Rotation float64
}

// NewLinear returns a left-to-right linear gradient over cs.
func NewLinear(cs ...colors.Color) *Linear {
	return &Linear{Colors: cloneColors(cs), Begin: CenterLeft, End: CenterRight}
}

func (g *Linear) Type() Type { return TypeLinear }

// GradientColors returns a copy of the colour list. Nil receivers yield nil.
func (g *Linear) GradientColors() []colors.Color {
	if g == nil {
		return nil
	}
	return cloneColors(g.Colors)
}

func (g *Linear) Validate() error { return validateStops(g.Colors, g.Stops) }

func (g *Linear) MarshalJSON() ([]byte, error) {
	begin, end := g.Begin, g.End
	return json.Marshal(payload{
		Type:     TypeLinear,
		Colors:   colors.NormalizeAll(g.Colors),
		Stops:    g.Stops,
		TileMode: g.TileMode,
		Rotation: g.Rotation,
		Begin:    &begin,
		End:      &end,
	})
}

// Radial is a gradient radiating from a center.
type Radial struct {
	Colors []colors.Color
	Stops  []float64
	Center Alignment
	// Radius is a fraction of the shortest side of the painted box.
	Radius      float64
	Focal       *Alignment
	FocalRadius float64
	TileMode    TileMode
	Rotation    float64
}

// NewRadial returns a centered radial gradient with radius 0.5.
func NewRadial(cs ...colors.Color) *Radial {
	return &Radial{Colors: cloneColors(cs), Center: Center, Radius: 0.5}
}

func (g *Radial) Type() Type { return TypeRadial }

// GradientColors returns a copy of the colour list. Nil receivers yield nil.
func (g *Radial) GradientColors() []colors.Color {
	if g == nil {
		return nil
	}
	return cloneColors(g.Colors)
}

func (g *Radial) Validate() error {
	if err := validateStops(g.Colors, g.Stops); err != nil {
		return err
	}
	if g.Radius <= 0 {
		return ErrRadius
	}
	return nil
}

func (g *Radial) MarshalJSON() ([]byte, error) {
	center := g.Center
	return json.Marshal(payload{
		Type:        TypeRadial,
		Colors:      colors.NormalizeAll(g.Colors),
		Stops:       g.Stops,
		TileMode:    g.TileMode,
		Rotation:    g.Rotation,
		Center:      &center,
		Radius:      g.Radius,
		Focal:       g.Focal,
		FocalRadius: g.FocalRadius,
	})
}

// Sweep is a conic gradient around a center.
type Sweep struct {
	Colors     []colors.Color
	Stops      []float64
	Center     Alignment
	StartAngle float64
	EndAngle   float64
	TileMode   TileMode
	Rotation   float64
}

// NewSweep returns a full-turn sweep gradient over cs.
func NewSweep(cs ...colors.Color) *Sweep {
	return &Sweep{Colors: cloneColors(cs), Center: Center, EndAngle: 2 * math.Pi}
}

func (g *Sweep) Type() Type { return TypeSweep }

// GradientColors returns a copy of the colour list. Nil receivers yield nil.
func (g *Sweep) GradientColors() []colors.Color {
	if g == nil {
		return nil
	}
	return cloneColors(g.Colors)
}

func (g *Sweep) Validate() error { return validateStops(g.Colors, g.Stops) }

func (g *Sweep) MarshalJSON() ([]byte, error) {
	center := g.Center
	return json.Marshal(payload{
		Type:       TypeSweep,
		Colors:     colors.NormalizeAll(g.Colors),
		Stops:      g.Stops,
		TileMode:   g.TileMode,
		Rotation:   g.Rotation,
		Center:     &center,
		StartAngle: g.StartAngle,
		EndAngle:   g.EndAngle,
	})
}
