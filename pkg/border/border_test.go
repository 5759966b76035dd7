package border

import (
	stderrors "errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/go-drift/animatedborder/pkg/animation"
	"github.com/go-drift/animatedborder/pkg/colors"
	"github.com/go-drift/animatedborder/pkg/control"
	"github.com/go-drift/animatedborder/pkg/errors"
	"github.com/go-drift/animatedborder/pkg/gradient"
)

func TestFirstFlushEmitsDefaults(t *testing.T) {
	b := MustNew()
	u := b.Flush()

	want := map[string]string{
		AttrBorderWidth:        "5",
		AttrBorderRadius:       "5",
		AttrGlowOpacity:        "0",
		AttrDurationSeconds:    "3",
		AttrBorderType:         "dual",
		AttrSmoothGradientLoop: "true",
		AttrGradientColors:     "[]",
		AttrFirstDualColor:     "yellow",
		AttrSecondDualColor:    "orange",
		AttrTrackDualColor:     "transparent",
	}
	if len(u.Attrs) != len(want) {
		t.Errorf("attrs = %v\nwant %v", u.Attrs, want)
	}
	for k, v := range want {
		if got, ok := u.Attr(k); !ok || got != v {
			t.Errorf("%s = %q (present=%v), want %q", k, got, ok, v)
		}
	}
	for _, absent := range []string{AttrAnimate, AttrOnAnimationEnd, AttrGradient} {
		if _, ok := u.Attr(absent); ok {
			t.Errorf("%s should be absent", absent)
		}
	}
	if u.Type != ControlType {
		t.Errorf("Type = %q, want %q", u.Type, ControlType)
	}
}

func TestSecondFlushOnlyDerived(t *testing.T) {
	b := MustNew()
	b.Flush()
	u := b.Flush()
	if len(u.Attrs) != 1 {
		t.Errorf("attrs = %v, want only gradientColors", u.Attrs)
	}
	if v, _ := u.Attr(AttrGradientColors); v != "[]" {
		t.Errorf("gradientColors = %q", v)
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	b := MustNew(
		WithBorderWidth(8),
		WithBorderRadius(10),
		WithGlowOpacity(0.6),
		WithType(SoftGradient),
		WithFirstDualColor(colors.Red),
		WithSecondDualColor(colors.Raw("#00ff00")),
		WithTrackDualColor(colors.Black),
		WithSmoothGradientLoop(false),
		WithDurationSeconds(5),
		WithAnimate(animation.New(time.Second, animation.EaseInOut)),
		WithTooltip("glow"),
		WithPosition(1, 2, -1, -1),
	)
	u := b.Flush()
	want := map[string]string{
		AttrBorderWidth:        "8",
		AttrBorderRadius:       "10",
		AttrGlowOpacity:        "0.6",
		AttrBorderType:         "soft_gradient",
		AttrFirstDualColor:     "red",
		AttrSecondDualColor:    "#00ff00",
		AttrTrackDualColor:     "black",
		AttrSmoothGradientLoop: "false",
		AttrDurationSeconds:    "5",
		AttrAnimate:            `{"duration":1000,"curve":"easeInOut"}`,
		"tooltip":              "glow",
		"left":                 "1",
		"top":                  "2",
	}
	for k, v := range want {
		if got, _ := u.Attr(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if _, ok := u.Attr("right"); ok {
		t.Error("negative position should leave right unset")
	}
}

func TestSetGetByName(t *testing.T) {
	b := MustNew()
	tests := []struct {
		name  string
		value any
	}{
		{AttrBorderWidth, 7.5},
		{AttrBorderRadius, 0.0},
		{AttrGlowOpacity, 0.25},
		{AttrDurationSeconds, 9},
		{AttrBorderType, SoftGradient},
		{AttrSmoothGradientLoop, false},
		{AttrFirstDualColor, colors.Color(colors.Purple)},
		{AttrTrackDualColor, colors.Color(colors.Raw("#aabbcc"))},
	}
	for _, tt := range tests {
		if err := b.Set(tt.name, tt.value); err != nil {
			t.Fatalf("Set(%s) error: %v", tt.name, err)
		}
		got, ok := b.Get(tt.name)
		if !ok || got != tt.value {
			t.Errorf("Get(%s) = %v, %v; want %v", tt.name, got, ok, tt.value)
		}
	}
}

func TestSetLooseValues(t *testing.T) {
	b := MustNew()
	if err := b.Set(AttrBorderType, "soft_gradient"); err != nil {
		t.Fatal(err)
	}
	if b.BorderType.Value() != SoftGradient {
		t.Errorf("BorderType = %v", b.BorderType.Value())
	}
	if err := b.Set(AttrFirstDualColor, "green"); err != nil {
		t.Fatal(err)
	}
	if b.FirstDualColor.Value() != colors.Green {
		t.Errorf("FirstDualColor = %v", b.FirstDualColor.Value())
	}
	if err := b.Set(AttrGradientColors, []string{"red", "blue"}); err != nil {
		t.Fatal(err)
	}
	if got := b.EffectiveGradientColors(); len(got) != 2 {
		t.Errorf("EffectiveGradientColors = %v", got)
	}
}

func TestSameValueWriteNotDirty(t *testing.T) {
	b := MustNew()
	b.Flush()

	b.BorderWidth.Set(DefaultBorderWidth)
	b.FirstDualColor.Set(colors.Yellow)
	b.BorderType.Set(Dual)
	if d := b.Dirty(); len(d) != 0 {
		t.Errorf("dirty after no-op writes: %v", d)
	}

	b.BorderWidth.Set(6)
	if d := b.Dirty(); !slices.Equal(d, []string{AttrBorderWidth}) {
		t.Errorf("Dirty() = %v", d)
	}
	u := b.Flush()
	if v, _ := u.Attr(AttrBorderWidth); v != "6" {
		t.Errorf("borderWidth = %q", v)
	}
	if _, ok := u.Attr(AttrBorderRadius); ok {
		t.Error("unchanged borderRadius re-sent")
	}
}

func TestGradientColorsExplicit(t *testing.T) {
	b := MustNew(WithGradientColors(colors.Red, colors.Raw("#00ff00"), colors.Blue))
	u := b.Flush()
	if v, _ := u.Attr(AttrGradientColors); v != `["red","#00ff00","blue"]` {
		t.Errorf("gradientColors = %s", v)
	}
}

func TestGradientColorsFallbackToDescriptor(t *testing.T) {
	b := MustNew(WithGradient(gradient.NewLinear(colors.Cyan, colors.Pink)))
	u := b.Flush()
	if v, _ := u.Attr(AttrGradientColors); v != `["cyan","pink"]` {
		t.Errorf("gradientColors = %s", v)
	}

	b.GradientColors.Set([]colors.Color{colors.Amber})
	u = b.Flush()
	if v, _ := u.Attr(AttrGradientColors); v != `["amber"]` {
		t.Errorf("explicit list should win, got %s", v)
	}

	b.GradientColors.Set([]colors.Color{})
	u = b.Flush()
	if v, _ := u.Attr(AttrGradientColors); v != `["cyan","pink"]` {
		t.Errorf("empty explicit list should fall back, got %s", v)
	}
}

func TestGradientColorsIgnoresDescriptorWithoutColors(t *testing.T) {
	b := MustNew()
	b.Gradient.Set("not a gradient")
	u := b.Flush()
	if v, _ := u.Attr(AttrGradientColors); v != "[]" {
		t.Errorf("gradientColors = %s, want []", v)
	}

	var nilGradient *gradient.Sweep
	b.Gradient.Set(nilGradient)
	u = b.Flush()
	if v, _ := u.Attr(AttrGradientColors); v != "[]" {
		t.Errorf("gradientColors = %s, want []", v)
	}
}

func TestGradientColorsAlwaysRecomputed(t *testing.T) {
	g := gradient.NewRadial(colors.Red, colors.Blue)
	b := MustNew(WithGradient(g))
	b.Flush()

	g.Colors = append(g.Colors, colors.Green)
	u := b.Flush()
	if v, _ := u.Attr(AttrGradientColors); v != `["red","blue","green"]` {
		t.Errorf("gradientColors = %s", v)
	}
	if d := b.Dirty(); len(d) != 0 {
		t.Errorf("derived attribute left dirty state: %v", d)
	}
}

func TestContentSlot(t *testing.T) {
	first := control.NewBase("text")
	second := control.NewBase("text")
	b := MustNew(WithContent(first))

	u := b.Flush()
	c, ok := u.Child(control.ContentSlot)
	if !ok || c.ID != first.ID() {
		t.Fatalf("content child = %+v, %v", c, ok)
	}

	b.SetContent(second)
	u = b.Flush()
	if len(u.Children) != 1 || u.Children[0].ID != second.ID() || u.Children[0].Slot != "content" {
		t.Errorf("children = %+v", u.Children)
	}
	if b.Content() != control.Control(second) {
		t.Error("Content() should return the replacement")
	}

	b.ClearChild()
	if u := b.Flush(); len(u.Children) != 0 {
		t.Error("content not cleared")
	}
}

func TestAnimationEndHandler(t *testing.T) {
	var calls []string
	b := MustNew(OnAnimationEnd(func(control.Event) { calls = append(calls, "first") }))
	u := b.Flush()
	if v, _ := u.Attr(AttrOnAnimationEnd); v != "true" {
		t.Errorf("onAnimationEnd = %q, want true", v)
	}

	b.OnAnimationEnd(func(control.Event) { calls = append(calls, "second") })
	b.Dispatch(control.Event{Name: EventAnimationEnd})
	if !slices.Equal(calls, []string{"second"}) {
		t.Errorf("calls = %v, want [second]", calls)
	}

	b.OnAnimationEnd(nil)
	u = b.Flush()
	if !u.IsRemoved(AttrOnAnimationEnd) {
		t.Errorf("onAnimationEnd not removed: %+v", u)
	}
	if b.Dispatch(control.Event{Name: EventAnimationEnd}) {
		t.Error("dispatch ran after unregistering")
	}
}

func TestAnimateUnset(t *testing.T) {
	b := MustNew(WithAnimate(animation.Milliseconds(500)))
	u := b.Flush()
	if v, _ := u.Attr(AttrAnimate); v != `{"duration":500}` {
		t.Errorf("animate = %s", v)
	}
	b.Animate.Unset()
	u = b.Flush()
	if !u.IsRemoved(AttrAnimate) {
		t.Error("animate should be removed")
	}
}

func TestPermissiveAcceptsInvalidValues(t *testing.T) {
	b, err := New(
		WithBorderWidth(-3),
		WithGlowOpacity(4),
		WithDurationSeconds(0),
		WithFirstDualColor(colors.Raw("definitely-not-a-color")),
	)
	if err != nil {
		t.Fatalf("permissive New returned %v", err)
	}
	u := b.Flush()
	if v, _ := u.Attr(AttrBorderWidth); v != "-3" {
		t.Errorf("borderWidth = %q", v)
	}
	if v, _ := u.Attr(AttrFirstDualColor); v != "definitely-not-a-color" {
		t.Errorf("firstDualColor = %q", v)
	}
}

func TestPermissiveForwardsNonFiniteNumbers(t *testing.T) {
	b := MustNew()
	b.Flush()

	b.BorderWidth.Set(math.NaN())
	b.BorderRadius.Set(math.Inf(1))
	b.GlowOpacity.Set(math.Inf(-1))
	u := b.Flush()

	tests := map[string]string{
		AttrBorderWidth:  "NaN",
		AttrBorderRadius: "Infinity",
		AttrGlowOpacity:  "-Infinity",
	}
	for name, want := range tests {
		if v, ok := u.Attr(name); !ok || v != want {
			t.Errorf("%s = %q (present %v), want %q", name, v, ok, want)
		}
	}
	if len(u.Removed) != 0 {
		t.Errorf("removed = %v, want none", u.Removed)
	}
}

func TestStrictRejectsInvalidValues(t *testing.T) {
	old := errors.DefaultHandler
	errors.SetHandler(&silentHandler{})
	defer errors.SetHandler(old)

	tests := []struct {
		name string
		opt  Option
		prop string
	}{
		{"negative width", WithBorderWidth(-1), AttrBorderWidth},
		{"negative radius", WithBorderRadius(-1), AttrBorderRadius},
		{"glow above one", WithGlowOpacity(1.1), AttrGlowOpacity},
		{"zero duration", WithDurationSeconds(0), AttrDurationSeconds},
		{"bad color", WithSecondDualColor(colors.Raw("#12")), AttrSecondDualColor},
		{"bad list color", WithGradientColors(colors.Red, colors.Raw("zz")), AttrGradientColors},
		{"unknown type", WithType(Type(9)), AttrBorderType},
		{"unknown curve", WithAnimate(animation.New(time.Second, "wobble")), AttrAnimate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Strict(), tt.opt)
			if !stderrors.Is(err, errors.ErrInvalidPropertyValue) {
				t.Fatalf("New = %v, want ErrInvalidPropertyValue", err)
			}
			var perr *errors.PropertyError
			if !stderrors.As(err, &perr) || perr.Property != tt.prop {
				t.Errorf("PropertyError = %+v, want property %s", perr, tt.prop)
			}
		})
	}

	b, err := New(Strict(), WithFirstDualColor(colors.Raw("#ff0000,0.5")))
	if err != nil {
		t.Fatalf("strict New rejected a valid color: %v", err)
	}
	if err := b.GlowOpacity.Set(0.3); err != nil {
		t.Errorf("valid strict write rejected: %v", err)
	}
}

func TestMustNewPanicsInStrictMode(t *testing.T) {
	old := errors.DefaultHandler
	errors.SetHandler(&silentHandler{})
	defer errors.SetHandler(old)

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustNew(Strict(), WithBorderWidth(-1))
}

func TestParseType(t *testing.T) {
	for in, want := range map[string]Type{"dual": Dual, "SOFT_GRADIENT": SoftGradient, " Dual ": Dual} {
		got, err := ParseType(in)
		if err != nil || got != want {
			t.Errorf("ParseType(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseType("triple"); err == nil {
		t.Error("expected error")
	}
	if _, err := Type(7).MarshalText(); err == nil {
		t.Error("MarshalText accepted unknown type")
	}
	var ty Type
	if err := ty.UnmarshalText([]byte("soft_gradient")); err != nil || ty != SoftGradient {
		t.Errorf("UnmarshalText = %v, %v", ty, err)
	}
}

type silentHandler struct{}

func (silentHandler) HandleError(*errors.DriftError)            {}
func (silentHandler) HandlePanic(*errors.PanicError)            {}
func (silentHandler) HandlePropertyError(*errors.PropertyError) {}
