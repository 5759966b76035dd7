package colors

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ErrNoColor is returned by [ToARGB] for an absent colour.
var ErrNoColor = errors.New("colors: no color")

// ToARGB resolves c to a 0xAARRGGBB value.
//
// Accepted forms: palette names, CSS colour names, "#rgb", "#rrggbb",
// "#aarrggbb", each optionally followed by ",opacity" with opacity in [0, 1].
// Normalization never calls this; it exists for strict validation.
func ToARGB(c Color) (uint32, error) {
	if c == nil {
		return 0, ErrNoColor
	}
	s := strings.TrimSpace(c.colorValue())
	base, opacity, hasOpacity := strings.Cut(s, ",")
	base = strings.TrimSpace(base)

	argb, err := resolveBase(base)
	if err != nil {
		return 0, err
	}
	if !hasOpacity {
		return argb, nil
	}
	op, err := strconv.ParseFloat(strings.TrimSpace(opacity), 64)
	if err != nil {
		return 0, fmt.Errorf("colors: bad opacity in %q: %w", s, err)
	}
	if op < 0 || op > 1 {
		return 0, fmt.Errorf("colors: opacity %v in %q outside [0, 1]", op, s)
	}
	alpha := uint32(math.Round(op * 255))
	return alpha<<24 | argb&0x00FFFFFF, nil
}

func resolveBase(base string) (uint32, error) {
	if base == "" {
		return 0, ErrNoColor
	}
	lower := strings.ToLower(base)
	if v, ok := palette[Named(lower)]; ok {
		return v, nil
	}
	if rgba, ok := colornames.Map[lower]; ok {
		return uint32(rgba.A)<<24 | uint32(rgba.R)<<16 | uint32(rgba.G)<<8 | uint32(rgba.B), nil
	}

	hex := strings.TrimPrefix(base, "#")
	alpha := uint32(0xFF)
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[:2], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("colors: bad alpha in %q: %w", base, err)
		}
		alpha = uint32(a)
		hex = hex[2:]
	default:
		return 0, fmt.Errorf("colors: unrecognized color %q", base)
	}
	col, err := colorful.Hex("#" + hex)
	if err != nil {
		return 0, fmt.Errorf("colors: unrecognized color %q: %w", base, err)
	}
	r, g, b := col.RGB255()
	return alpha<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b), nil
}
