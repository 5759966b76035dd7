package border

import (
	"log/slog"

	"github.com/go-drift/animatedborder/pkg/animation"
	"github.com/go-drift/animatedborder/pkg/colors"
	"github.com/go-drift/animatedborder/pkg/control"
)

// Option configures an AnimatedBorder at construction.
type Option func(*builder)

type builder struct {
	controlOpts []control.Option
	apply       []func(*AnimatedBorder) error
}

func with(fn func(*AnimatedBorder) error) Option {
	return func(bld *builder) {
		bld.apply = append(bld.apply, fn)
	}
}

// WithLogger injects a logger for property and flush debug records.
func WithLogger(l *slog.Logger) Option {
	return func(bld *builder) {
		bld.controlOpts = append(bld.controlOpts, control.WithLogger(l))
	}
}

// Strict enables mutation-time validation. Rejected values produce an
// errors.PropertyError instead of being forwarded to the renderer.
func Strict() Option {
	return func(bld *builder) {
		bld.controlOpts = append(bld.controlOpts, control.WithStrict())
	}
}

// WithID overrides the generated control ID.
func WithID(id string) Option {
	return func(bld *builder) {
		bld.controlOpts = append(bld.controlOpts, control.WithID(id))
	}
}

// WithBorderWidth sets the stroke width in logical pixels.
func WithBorderWidth(w float64) Option {
	return with(func(b *AnimatedBorder) error { return b.BorderWidth.Set(w) })
}

// WithBorderRadius sets the corner radius in logical pixels.
func WithBorderRadius(r float64) Option {
	return with(func(b *AnimatedBorder) error { return b.BorderRadius.Set(r) })
}

// WithGlowOpacity sets the glow opacity.
func WithGlowOpacity(o float64) Option {
	return with(func(b *AnimatedBorder) error { return b.GlowOpacity.Set(o) })
}

// WithFirstDualColor sets the leading colour of a Dual border.
func WithFirstDualColor(c colors.Color) Option {
	return with(func(b *AnimatedBorder) error { return b.FirstDualColor.Set(c) })
}

// WithSecondDualColor sets the trailing colour of a Dual border.
func WithSecondDualColor(c colors.Color) Option {
	return with(func(b *AnimatedBorder) error { return b.SecondDualColor.Set(c) })
}

// WithTrackDualColor sets the track colour behind a Dual border.
func WithTrackDualColor(c colors.Color) Option {
	return with(func(b *AnimatedBorder) error { return b.TrackDualColor.Set(c) })
}

// WithType selects the border type.
func WithType(t Type) Option {
	return with(func(b *AnimatedBorder) error { return b.BorderType.Set(t) })
}

// WithGradientColors sets the explicit gradient colour list.
func WithGradientColors(cs ...colors.Color) Option {
	return with(func(b *AnimatedBorder) error { return b.GradientColors.Set(cs) })
}

// WithGradient sets a gradient descriptor used when no explicit colour list
// is given.
func WithGradient(g ColorSource) Option {
	return with(func(b *AnimatedBorder) error {
		if g == nil {
			b.Gradient.Unset()
			return nil
		}
		return b.Gradient.Set(g)
	})
}

// WithSmoothGradientLoop toggles seamless wrapping of the gradient cycle.
func WithSmoothGradientLoop(v bool) Option {
	return with(func(b *AnimatedBorder) error { return b.SmoothGradientLoop.Set(v) })
}

// WithDurationSeconds sets the length of one animation cycle.
func WithDurationSeconds(s int) Option {
	return with(func(b *AnimatedBorder) error { return b.DurationSeconds.Set(s) })
}

// WithAnimate sets the implicit animation applied to property changes.
func WithAnimate(a *animation.Animation) Option {
	return with(func(b *AnimatedBorder) error {
		if a == nil {
			b.Animate.Unset()
			return nil
		}
		return b.Animate.Set(a)
	})
}

// OnAnimationEnd registers the animation end handler.
func OnAnimationEnd(h control.Handler) Option {
	return with(func(b *AnimatedBorder) error {
		b.OnAnimationEnd(h)
		return nil
	})
}

// WithContent wraps c.
func WithContent(c control.Control) Option {
	return with(func(b *AnimatedBorder) error {
		b.SetContent(c)
		return nil
	})
}

// WithPosition sets the left, top, right, and bottom offsets. Negative
// values leave the corresponding offset unset.
func WithPosition(left, top, right, bottom float64) Option {
	return with(func(b *AnimatedBorder) error {
		for _, p := range []struct {
			attr *control.Attr[float64]
			v    float64
		}{{b.Left, left}, {b.Top, top}, {b.Right, right}, {b.Bottom, bottom}} {
			if p.v < 0 {
				continue
			}
			if err := p.attr.Set(p.v); err != nil {
				return err
			}
		}
		return nil
	})
}

// WithOpacity sets the control opacity.
func WithOpacity(o float64) Option {
	return with(func(b *AnimatedBorder) error { return b.Opacity.Set(o) })
}

// WithVisible sets control visibility.
func WithVisible(v bool) Option {
	return with(func(b *AnimatedBorder) error { return b.Visible.Set(v) })
}

// WithTooltip sets the tooltip text.
func WithTooltip(s string) Option {
	return with(func(b *AnimatedBorder) error { return b.Tooltip.Set(s) })
}

// WithData attaches a user payload that is never sent to the renderer.
func WithData(v any) Option {
	return with(func(b *AnimatedBorder) error {
		b.SetData(v)
		return nil
	})
}
