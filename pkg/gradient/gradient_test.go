package gradient

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-drift/animatedborder/pkg/colors"
)

func TestLinearJSON(t *testing.T) {
	g := NewLinear(colors.Red, colors.Raw("#00ff00"))
	g.Stops = []float64{0, 1}

	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"linear","colors":["red","#00ff00"],"stops":[0,1],"begin":{"x":-1,"y":0},"end":{"x":1,"y":0}}`
	if string(data) != want {
		t.Errorf("Marshal = %s\nwant      %s", data, want)
	}
}

func TestRadialJSON(t *testing.T) {
	g := NewRadial(colors.Yellow, colors.Orange)
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"radial","colors":["yellow","orange"],"center":{"x":0,"y":0},"radius":0.5}`
	if string(data) != want {
		t.Errorf("Marshal = %s\nwant      %s", data, want)
	}
}

func TestSweepJSONDecodes(t *testing.T) {
	g := NewSweep(colors.Blue, colors.Purple, colors.Blue)
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["type"] != "sweep" {
		t.Errorf("type = %v", decoded["type"])
	}
	if got := len(decoded["colors"].([]any)); got != 3 {
		t.Errorf("colors len = %d, want 3", got)
	}
	if decoded["end_angle"].(float64) <= 6.28 {
		t.Errorf("end_angle = %v, want 2π", decoded["end_angle"])
	}
}

func TestGradientColorsIsCopy(t *testing.T) {
	g := NewLinear(colors.Red, colors.Green)
	cs := g.GradientColors()
	cs[0] = colors.Black
	if g.Colors[0] != colors.Red {
		t.Error("GradientColors should return a copy")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		g    Gradient
		want error
	}{
		{"valid linear", NewLinear(colors.Red, colors.Blue), nil},
		{"one color", NewLinear(colors.Red), ErrTooFewColors},
		{"stops mismatch", &Linear{Colors: []colors.Color{colors.Red, colors.Blue}, Stops: []float64{0}}, ErrStopsMismatch},
		{"stops descending", &Sweep{Colors: []colors.Color{colors.Red, colors.Blue}, Stops: []float64{0.8, 0.2}}, ErrStopRange},
		{"stop out of range", &Sweep{Colors: []colors.Color{colors.Red, colors.Blue}, Stops: []float64{0, 1.5}}, ErrStopRange},
		{"zero radius", &Radial{Colors: []colors.Color{colors.Red, colors.Blue}}, ErrRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
