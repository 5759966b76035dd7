// Package border provides the animated, glowing border control.
//
// The control only describes the border. Painting, glow, and the animation
// itself are performed by the renderer that receives the flushed [control.Update].
//
//	b, err := border.New(
//	    border.WithBorderRadius(10),
//	    border.WithGlowOpacity(0.6),
//	    border.WithFirstDualColor(colors.Red),
//	    border.WithGradientColors(colors.Red, colors.Yellow, colors.Green),
//	    border.WithAnimate(animation.New(time.Second, animation.EaseInOut)),
//	    border.OnAnimationEnd(func(control.Event) { ... }),
//	)
//	b.BorderWidth.Set(8)
//	update := b.Flush()
package border

import (
	"encoding/json"
	"fmt"

	"github.com/go-drift/animatedborder/pkg/animation"
	"github.com/go-drift/animatedborder/pkg/colors"
	"github.com/go-drift/animatedborder/pkg/control"
)

// ControlType is the renderer type name of the animated border.
const ControlType = "flet_animated_border"

// EventAnimationEnd is reported by the renderer when an animation cycle ends.
const EventAnimationEnd = "animation_end"

// Defaults applied when an option is not given.
const (
	DefaultBorderWidth        = 5.0
	DefaultBorderRadius       = 5.0
	DefaultGlowOpacity        = 0.0
	DefaultType               = Dual
	DefaultSmoothGradientLoop = true
	DefaultDurationSeconds    = 3
)

// Default colours.
var (
	DefaultFirstDualColor  colors.Color = colors.Yellow
	DefaultSecondDualColor colors.Color = colors.Orange
	DefaultTrackDualColor  colors.Color = colors.Transparent
)

// Wire attribute names.
const (
	AttrBorderWidth        = "borderWidth"
	AttrBorderRadius       = "borderRadius"
	AttrGlowOpacity        = "glowOpacity"
	AttrDurationSeconds    = "duration_seconds"
	AttrAnimate            = "animate"
	AttrOnAnimationEnd     = "onAnimationEnd"
	AttrBorderType         = "borderType"
	AttrSmoothGradientLoop = "smoothGradientLoop"
	AttrGradientColors     = "gradientColors"
	AttrGradient           = "gradient"
	AttrFirstDualColor     = "firstDualColor"
	AttrSecondDualColor    = "secondDualColor"
	AttrTrackDualColor     = "trackDualColor"
)

// ColorSource is any gradient descriptor exposing a colour list.
type ColorSource interface {
	GradientColors() []colors.Color
}

// AnimatedBorder is a border that animates colours around its content.
type AnimatedBorder struct {
	*control.Base

	BorderWidth     *control.Attr[float64]
	BorderRadius    *control.Attr[float64]
	GlowOpacity     *control.Attr[float64]
	FirstDualColor  *control.Attr[colors.Color]
	SecondDualColor *control.Attr[colors.Color]
	TrackDualColor  *control.Attr[colors.Color]
	BorderType      *control.Attr[Type]
	// GradientColors is the explicit colour list. It is never sent as is;
	// the derived gradientColors attribute is computed from it on every flush.
	GradientColors *control.Attr[[]colors.Color]
	// Gradient is an optional gradient descriptor used as a colour fallback.
	// Values implementing [ColorSource] contribute their colours.
	Gradient           *control.Attr[any]
	SmoothGradientLoop *control.Attr[bool]
	DurationSeconds    *control.Attr[int]
	Animate            *control.Attr[*animation.Animation]
}

// New returns an AnimatedBorder with defaults overridden by opts. An error is
// returned only in strict mode, when an option value is rejected.
func New(opts ...Option) (*AnimatedBorder, error) {
	var bld builder
	for _, opt := range opts {
		opt(&bld)
	}

	b := &AnimatedBorder{Base: control.NewBase(ControlType, bld.controlOpts...)}
	b.declare()

	for _, apply := range bld.apply {
		if err := apply(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *AnimatedBorder {
	b, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *AnimatedBorder) declare() {
	s := b.Store()

	b.BorderWidth = control.Declare(s, control.Spec[float64]{
		Name:     AttrBorderWidth,
		Default:  DefaultBorderWidth,
		Encode:   control.Float(),
		Coerce:   control.CoerceFloat,
		Validate: nonNegative,
	})
	b.BorderRadius = control.Declare(s, control.Spec[float64]{
		Name:     AttrBorderRadius,
		Default:  DefaultBorderRadius,
		Encode:   control.Float(),
		Coerce:   control.CoerceFloat,
		Validate: nonNegative,
	})
	b.GlowOpacity = control.Declare(s, control.Spec[float64]{
		Name:     AttrGlowOpacity,
		Default:  DefaultGlowOpacity,
		Encode:   control.Float(),
		Coerce:   control.CoerceFloat,
		Validate: unitInterval,
	})
	b.DurationSeconds = control.Declare(s, control.Spec[int]{
		Name:     AttrDurationSeconds,
		Default:  DefaultDurationSeconds,
		Encode:   control.JSON[int](),
		Coerce:   control.CoerceInt,
		Validate: positiveSeconds,
	})
	b.Animate = control.Declare(s, control.Spec[*animation.Animation]{
		Name:     AttrAnimate,
		Absent:   true,
		Encode:   control.JSON[*animation.Animation](),
		Validate: validAnimation,
	})
	b.DeclareEvent(EventAnimationEnd, AttrOnAnimationEnd)
	b.BorderType = control.Declare(s, control.Spec[Type]{
		Name:    AttrBorderType,
		Default: DefaultType,
		Encode:  control.EnumString[Type](),
		Coerce:  coerceType,
		Validate: func(t Type) error {
			if !t.Known() {
				return fmt.Errorf("unknown border type %d", int(t))
			}
			return nil
		},
	})
	b.SmoothGradientLoop = control.Declare(s, control.Spec[bool]{
		Name:    AttrSmoothGradientLoop,
		Default: DefaultSmoothGradientLoop,
		Encode:  control.Text[bool](),
	})
	b.GradientColors = control.Declare(s, control.Spec[[]colors.Color]{
		Name:     AttrGradientColors,
		Absent:   true,
		Encode:   control.Local[[]colors.Color](),
		Coerce:   control.CoerceColorList,
		Validate: validColorList,
	})
	b.Gradient = control.Declare(s, control.Spec[any]{
		Name:   AttrGradient,
		Absent: true,
		Encode: control.Local[any](),
	})
	b.FirstDualColor = declareColor(s, AttrFirstDualColor, DefaultFirstDualColor)
	b.SecondDualColor = declareColor(s, AttrSecondDualColor, DefaultSecondDualColor)
	b.TrackDualColor = declareColor(s, AttrTrackDualColor, DefaultTrackDualColor)

	b.Derive(AttrGradientColors, b.encodeGradientColors)
}

func declareColor(s *control.Store, name string, def colors.Color) *control.Attr[colors.Color] {
	return control.Declare(s, control.Spec[colors.Color]{
		Name:     name,
		Default:  def,
		Encode:   control.Color(),
		Coerce:   control.CoerceColor,
		Validate: validColor,
	})
}

// OnAnimationEnd registers h for the animation end event, replacing any
// previous handler. A nil handler unregisters.
func (b *AnimatedBorder) OnAnimationEnd(h control.Handler) {
	b.On(EventAnimationEnd, h)
}

// Content returns the wrapped control, or nil.
func (b *AnimatedBorder) Content() control.Control {
	return b.Child()
}

// SetContent wraps c, discarding any previous content.
func (b *AnimatedBorder) SetContent(c control.Control) {
	b.SetChild(c)
}

// EffectiveGradientColors returns the colours the renderer will receive:
// the explicit list when non-empty, else the gradient descriptor's colours,
// else an empty list.
func (b *AnimatedBorder) EffectiveGradientColors() []colors.Color {
	if cs := b.GradientColors.Value(); len(cs) > 0 {
		return cs
	}
	if src, ok := b.Gradient.Value().(ColorSource); ok && src != nil {
		if cs := src.GradientColors(); cs != nil {
			return cs
		}
	}
	return []colors.Color{}
}

func (b *AnimatedBorder) encodeGradientColors() (string, bool, error) {
	data, err := json.Marshal(colors.NormalizeAll(b.EffectiveGradientColors()))
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}
