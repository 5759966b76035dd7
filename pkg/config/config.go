// Package config loads animated border descriptions from border.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/animatedborder/pkg/animation"
	"github.com/go-drift/animatedborder/pkg/border"
	"github.com/go-drift/animatedborder/pkg/colors"
	"github.com/go-drift/animatedborder/pkg/control"
	drifterrors "github.com/go-drift/animatedborder/pkg/errors"
	"github.com/go-drift/animatedborder/pkg/gradient"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "border.yaml"

// Config represents the optional border.yaml configuration.
type Config struct {
	ID      string         `yaml:"id,omitempty"`
	Strict  bool           `yaml:"strict,omitempty"`
	Border  BorderConfig   `yaml:"border"`
	Layout  LayoutConfig   `yaml:"layout"`
	Content *ContentConfig `yaml:"content,omitempty"`
	Data    any            `yaml:"data,omitempty"`
}

// BorderConfig holds the border attributes. Nil fields keep the control
// defaults.
type BorderConfig struct {
	Type               *border.Type     `yaml:"type,omitempty"`
	Width              *float64         `yaml:"width,omitempty"`
	Radius             *float64         `yaml:"radius,omitempty"`
	GlowOpacity        *float64         `yaml:"glow_opacity,omitempty"`
	DurationSeconds    *int             `yaml:"duration_seconds,omitempty"`
	SmoothGradientLoop *bool            `yaml:"smooth_gradient_loop,omitempty"`
	FirstDualColor     string           `yaml:"first_dual_color,omitempty"`
	SecondDualColor    string           `yaml:"second_dual_color,omitempty"`
	TrackDualColor     string           `yaml:"track_dual_color,omitempty"`
	GradientColors     []string         `yaml:"gradient_colors,omitempty"`
	Gradient           *GradientConfig  `yaml:"gradient,omitempty"`
	Animate            *AnimationConfig `yaml:"animate,omitempty"`
}

// GradientConfig describes a gradient descriptor used as the colour fallback.
type GradientConfig struct {
	Type   gradient.Type `yaml:"type"`
	Colors []string      `yaml:"colors"`
	Stops  []float64     `yaml:"stops,omitempty"`
}

// AnimationConfig describes the implicit animation.
type AnimationConfig struct {
	Duration time.Duration   `yaml:"duration"`
	Curve    animation.Curve `yaml:"curve,omitempty"`
}

// LayoutConfig holds the common positioning attributes.
type LayoutConfig struct {
	Left    *float64 `yaml:"left,omitempty"`
	Top     *float64 `yaml:"top,omitempty"`
	Right   *float64 `yaml:"right,omitempty"`
	Bottom  *float64 `yaml:"bottom,omitempty"`
	Opacity *float64 `yaml:"opacity,omitempty"`
	Visible *bool    `yaml:"visible,omitempty"`
	Tooltip string   `yaml:"tooltip,omitempty"`
}

// ContentConfig names a placeholder control wrapped by the border.
type ContentConfig struct {
	Type string `yaml:"type"`
	ID   string `yaml:"id,omitempty"`
}

// LoadOptional reads border.yaml from dir if present. A missing file yields
// an empty Config, which builds a border with all defaults.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// configError wraps err as a config-kind [drifterrors.DriftError].
func configError(op string, err error) error {
	return &drifterrors.DriftError{Op: op, Kind: drifterrors.KindConfig, Err: err}
}

// Load reads and parses the file at path. Errors are config-kind
// DriftErrors; a missing file still matches os.ErrNotExist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("config.Load", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, configError("config.Load", fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err))
	}
	return cfg, nil
}

// Parse decodes YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	cfg, err := parse(data)
	if err != nil {
		return nil, configError("config.Parse", err)
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Options converts the configuration to border options.
func (c *Config) Options() ([]border.Option, error) {
	var opts []border.Option
	if c.ID != "" {
		opts = append(opts, border.WithID(c.ID))
	}
	if c.Strict {
		opts = append(opts, border.Strict())
	}

	b := c.Border
	if b.Type != nil {
		opts = append(opts, border.WithType(*b.Type))
	}
	if b.Width != nil {
		opts = append(opts, border.WithBorderWidth(*b.Width))
	}
	if b.Radius != nil {
		opts = append(opts, border.WithBorderRadius(*b.Radius))
	}
	if b.GlowOpacity != nil {
		opts = append(opts, border.WithGlowOpacity(*b.GlowOpacity))
	}
	if b.DurationSeconds != nil {
		opts = append(opts, border.WithDurationSeconds(*b.DurationSeconds))
	}
	if b.SmoothGradientLoop != nil {
		opts = append(opts, border.WithSmoothGradientLoop(*b.SmoothGradientLoop))
	}
	if col := colors.Parse(b.FirstDualColor); col != nil {
		opts = append(opts, border.WithFirstDualColor(col))
	}
	if col := colors.Parse(b.SecondDualColor); col != nil {
		opts = append(opts, border.WithSecondDualColor(col))
	}
	if col := colors.Parse(b.TrackDualColor); col != nil {
		opts = append(opts, border.WithTrackDualColor(col))
	}
	if len(b.GradientColors) > 0 {
		opts = append(opts, border.WithGradientColors(colors.ParseAll(b.GradientColors)...))
	}
	if b.Gradient != nil {
		g, err := b.Gradient.build()
		if err != nil {
			return nil, configError("config.Options", err)
		}
		opts = append(opts, border.WithGradient(g))
	}
	if b.Animate != nil {
		opts = append(opts, border.WithAnimate(animation.New(b.Animate.Duration, b.Animate.Curve)))
	}

	l := c.Layout
	if l.Left != nil || l.Top != nil || l.Right != nil || l.Bottom != nil {
		opts = append(opts, border.WithPosition(offset(l.Left), offset(l.Top), offset(l.Right), offset(l.Bottom)))
	}
	if l.Opacity != nil {
		opts = append(opts, border.WithOpacity(*l.Opacity))
	}
	if l.Visible != nil {
		opts = append(opts, border.WithVisible(*l.Visible))
	}
	if l.Tooltip != "" {
		opts = append(opts, border.WithTooltip(l.Tooltip))
	}

	if c.Content != nil {
		typ := strings.TrimSpace(c.Content.Type)
		if typ == "" {
			return nil, configError("config.Options", errors.New("content: type is required"))
		}
		var copts []control.Option
		if c.Content.ID != "" {
			copts = append(copts, control.WithID(c.Content.ID))
		}
		opts = append(opts, border.WithContent(control.NewBase(typ, copts...)))
	}
	if c.Data != nil {
		opts = append(opts, border.WithData(c.Data))
	}
	return opts, nil
}

// Build constructs the configured border. Extra options are applied after
// the configured ones.
func (c *Config) Build(extra ...border.Option) (*border.AnimatedBorder, error) {
	opts, err := c.Options()
	if err != nil {
		return nil, err
	}
	return border.New(append(opts, extra...)...)
}

func (g *GradientConfig) build() (gradient.Gradient, error) {
	cs := colors.ParseAll(g.Colors)
	var out gradient.Gradient
	switch g.Type {
	case gradient.TypeLinear, "":
		lin := gradient.NewLinear(cs...)
		lin.Stops = g.Stops
		out = lin
	case gradient.TypeRadial:
		rad := gradient.NewRadial(cs...)
		rad.Stops = g.Stops
		out = rad
	case gradient.TypeSweep:
		sw := gradient.NewSweep(cs...)
		sw.Stops = g.Stops
		out = sw
	default:
		return nil, fmt.Errorf("gradient: unknown type %q", g.Type)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("gradient: %w", err)
	}
	return out, nil
}

// offset maps an unset position to a negative value, which WithPosition skips.
func offset(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}
