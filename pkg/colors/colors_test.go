package colors

import (
	"errors"
	"slices"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"red", Red},
		{"RED", Red},
		{"transparent", Transparent},
		{"#ff00ff", Raw("#ff00ff")},
		{"crimson", Raw("crimson")},
		{"not-a-color", Raw("not-a-color")},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		in     Color
		want   string
		wantOK bool
	}{
		{"named", Red, "red", true},
		{"named mixed case", Named("Orange"), "orange", true},
		{"hex passes through", Raw("#FF00AA"), "#FF00AA", true},
		{"unknown name passes through", Named("ultraviolet"), "ultraviolet", true},
		{"raw with opacity", Raw("black,0.5"), "black,0.5", true},
		{"absent", nil, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Normalize(%v) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeAllKeepsOrder(t *testing.T) {
	got := NormalizeAll([]Color{Red, nil, Raw("#123456"), Blue})
	want := []string{"red", "#123456", "blue"}
	if !slices.Equal(got, want) {
		t.Errorf("NormalizeAll = %v, want %v", got, want)
	}
}

func TestParseAll(t *testing.T) {
	got := ParseAll([]string{"red", "", "#000"})
	if len(got) != 2 || got[0] != Red || got[1] != Raw("#000") {
		t.Errorf("ParseAll = %#v", got)
	}
}

func TestNamesSortedAndKnown(t *testing.T) {
	names := Names()
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
	for _, n := range names {
		if !n.Known() {
			t.Errorf("%q listed but not known", n)
		}
	}
	if Named("ultraviolet").Known() {
		t.Error("unexpected known name")
	}
}

func TestToARGB(t *testing.T) {
	tests := []struct {
		in   Color
		want uint32
	}{
		{Red, 0xFFF44336},
		{Transparent, 0x00000000},
		{Raw("navy"), 0xFF000080},
		{Raw("#fff"), 0xFFFFFFFF},
		{Raw("#102030"), 0xFF102030},
		{Raw("#80102030"), 0x80102030},
		{Raw("black,0.5"), 0x80000000},
		{Raw("#ffffff, 0"), 0x00FFFFFF},
	}
	for _, tt := range tests {
		got, err := ToARGB(tt.in)
		if err != nil {
			t.Errorf("ToARGB(%v) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ToARGB(%v) = %#08x, want %#08x", tt.in, got, tt.want)
		}
	}
}

func TestToARGBErrors(t *testing.T) {
	if _, err := ToARGB(nil); !errors.Is(err, ErrNoColor) {
		t.Errorf("ToARGB(nil) err = %v, want ErrNoColor", err)
	}
	for _, in := range []Color{Raw("#12345"), Raw("#zzzzzz"), Raw("nope"), Raw("red,2"), Raw("red,x")} {
		if _, err := ToARGB(in); err == nil {
			t.Errorf("ToARGB(%v) expected error", in)
		}
	}
}
