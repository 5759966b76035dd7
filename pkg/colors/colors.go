// Package colors normalizes colour values for the renderer.
//
// A [Color] is either a [Named] member of the renderer's colour enumeration or
// an opaque [Raw] string (hex, CSS name, "name,opacity"). The choice is made
// once at the API boundary by [Parse]; [Normalize] then maps either form to the
// string the renderer expects without ever rejecting input.
package colors

import (
	"slices"
	"strings"
)

// Color is a closed sum type over [Named] and [Raw].
type Color interface {
	colorValue() string
}

// Named is a symbolic colour from the renderer's palette.
type Named string

// Raw is an uninterpreted colour string forwarded as-is.
type Raw string

func (n Named) colorValue() string { return string(n) }
func (r Raw) colorValue() string   { return string(r) }

func (n Named) String() string { return string(n) }
func (r Raw) String() string   { return string(r) }

// Palette names understood by the renderer.
const (
	Transparent Named = "transparent"
	Black       Named = "black"
	White       Named = "white"
	Red         Named = "red"
	Pink        Named = "pink"
	Purple      Named = "purple"
	DeepPurple  Named = "deeppurple"
	Indigo      Named = "indigo"
	Blue        Named = "blue"
	LightBlue   Named = "lightblue"
	Cyan        Named = "cyan"
	Teal        Named = "teal"
	Green       Named = "green"
	LightGreen  Named = "lightgreen"
	Lime        Named = "lime"
	Yellow      Named = "yellow"
	Amber       Named = "amber"
	Orange      Named = "orange"
	DeepOrange  Named = "deeporange"
	Brown       Named = "brown"
	Grey        Named = "grey"
	BlueGrey    Named = "bluegrey"
)

// palette maps each Named colour to its ARGB value (material 500 shade).
var palette = map[Named]uint32{
	Transparent: 0x00000000,
	Black:       0xFF000000,
	White:       0xFFFFFFFF,
	Red:         0xFFF44336,
	Pink:        0xFFE91E63,
	Purple:      0xFF9C27B0,
	DeepPurple:  0xFF673AB7,
	Indigo:      0xFF3F51B5,
	Blue:        0xFF2196F3,
	LightBlue:   0xFF03A9F4,
	Cyan:        0xFF00BCD4,
	Teal:        0xFF009688,
	Green:       0xFF4CAF50,
	LightGreen:  0xFF8BC34A,
	Lime:        0xFFCDDC39,
	Yellow:      0xFFFFEB3B,
	Amber:       0xFFFFC107,
	Orange:      0xFFFF9800,
	DeepOrange:  0xFFFF5722,
	Brown:       0xFF795548,
	Grey:        0xFF9E9E9E,
	BlueGrey:    0xFF607D8B,
}

// Known reports whether n is part of the renderer palette.
func (n Named) Known() bool {
	_, ok := palette[n]
	return ok
}

// Names returns every palette name in sorted order.
func Names() []Named {
	names := make([]Named, 0, len(palette))
	for n := range palette {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Parse classifies s. Palette names (case-insensitive) become [Named];
// everything else becomes [Raw] unchanged. An empty string yields nil.
func Parse(s string) Color {
	if s == "" {
		return nil
	}
	if n := Named(strings.ToLower(s)); n.Known() {
		return n
	}
	return Raw(s)
}

// Normalize returns the renderer encoding of c. It reports false when c is
// absent so the attribute can be omitted.
func Normalize(c Color) (string, bool) {
	if c == nil {
		return "", false
	}
	v := c.colorValue()
	if n, ok := c.(Named); ok {
		v = strings.ToLower(string(n))
	}
	return v, true
}

// NormalizeAll encodes a list of colours, dropping absent entries.
func NormalizeAll(cs []Color) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		if v, ok := Normalize(c); ok {
			out = append(out, v)
		}
	}
	return out
}

// ParseAll is the list form of [Parse], dropping empty strings.
func ParseAll(ss []string) []Color {
	out := make([]Color, 0, len(ss))
	for _, s := range ss {
		if c := Parse(s); c != nil {
			out = append(out, c)
		}
	}
	return out
}
