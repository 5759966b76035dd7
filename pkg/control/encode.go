package control

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/go-drift/animatedborder/pkg/colors"
)

// Encoder produces the wire form of a value. Returning ok=false emits the
// attribute as absent.
type Encoder[T any] func(v T) (s string, ok bool, err error)

// JSON encodes values as JSON text. A value that encodes to null is absent.
func JSON[T any]() Encoder[T] {
	return func(v T) (string, bool, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", false, err
		}
		if string(data) == "null" {
			return "", false, nil
		}
		return string(data), true, nil
	}
}

// Text encodes scalars in their plain string form. Booleans become
// "true"/"false" and floats use the shortest exact representation.
func Text[T any]() Encoder[T] {
	return func(v T) (string, bool, error) {
		return formatText(v), true, nil
	}
}

// Float encodes a number as JSON. NaN and the infinities have no JSON form
// and are sent as NaN, Infinity and -Infinity, which the renderer's decoder
// accepts.
func Float() Encoder[float64] {
	return func(v float64) (string, bool, error) {
		return formatFloat(v, 64), true, nil
	}
}

func formatFloat(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, bits)
}

// Local never emits. Use it for inputs that stay in process, such as values
// only consumed by a derived attribute.
func Local[T any]() Encoder[T] {
	return func(T) (string, bool, error) {
		return "", false, nil
	}
}

// EnumString encodes an enum by its canonical tag. An empty tag is absent.
func EnumString[T fmt.Stringer]() Encoder[T] {
	return func(v T) (string, bool, error) {
		s := v.String()
		return s, s != "", nil
	}
}

// Color encodes a colour through [colors.Normalize]. It never fails.
func Color() Encoder[colors.Color] {
	return func(c colors.Color) (string, bool, error) {
		s, ok := colors.Normalize(c)
		return s, ok, nil
	}
}

// ColorList encodes a colour list as a JSON array of normalized strings.
func ColorList() Encoder[[]colors.Color] {
	return func(cs []colors.Color) (string, bool, error) {
		data, err := json.Marshal(colors.NormalizeAll(cs))
		if err != nil {
			return "", false, err
		}
		return string(data), true, nil
	}
}

func formatText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// CoerceFloat accepts any numeric type as float64.
func CoerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// CoerceInt accepts integer types and whole floats as int.
func CoerceInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	case float32:
		if n == float32(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// CoerceColor accepts strings, classified by [colors.Parse].
func CoerceColor(v any) (colors.Color, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	return colors.Parse(s), true
}

// CoerceColorList accepts []string and []any of strings.
func CoerceColorList(v any) ([]colors.Color, bool) {
	switch l := v.(type) {
	case []string:
		return colors.ParseAll(l), true
	case []any:
		out := make([]colors.Color, 0, len(l))
		for _, item := range l {
			switch c := item.(type) {
			case string:
				if parsed := colors.Parse(c); parsed != nil {
					out = append(out, parsed)
				}
			case colors.Color:
				out = append(out, c)
			default:
				return nil, false
			}
		}
		return out, true
	default:
		return nil, false
	}
}
