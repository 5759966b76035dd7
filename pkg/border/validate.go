package border

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-drift/animatedborder/pkg/animation"
	"github.com/go-drift/animatedborder/pkg/colors"
)

// Validators run only in strict mode.

func nonNegative(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("must be finite")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func unitInterval(v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return errors.New("must be within [0, 1]")
	}
	return nil
}

func positiveSeconds(v int) error {
	if v <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func validColor(c colors.Color) error {
	if c == nil {
		return nil
	}
	_, err := colors.ToARGB(c)
	return err
}

func validColorList(cs []colors.Color) error {
	for i, c := range cs {
		if err := validColor(c); err != nil {
			return fmt.Errorf("color %d: %w", i, err)
		}
	}
	return nil
}

func validAnimation(a *animation.Animation) error {
	if a == nil {
		return nil
	}
	if a.Duration < 0 {
		return errors.New("duration must not be negative")
	}
	if a.Curve != "" && !a.Curve.Known() {
		return fmt.Errorf("unknown curve %q", a.Curve)
	}
	return nil
}

func coerceType(v any) (Type, bool) {
	switch x := v.(type) {
	case string:
		t, err := ParseType(x)
		return t, err == nil
	case int:
		return Type(x), true
	default:
		return 0, false
	}
}
