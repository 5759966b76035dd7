package animation

// Curve names an easing curve implemented by the renderer.
type Curve string

// Curves understood by the renderer.
const (
	Linear           Curve = "linear"
	Decelerate       Curve = "decelerate"
	Ease             Curve = "ease"
	EaseIn           Curve = "easeIn"
	EaseInBack       Curve = "easeInBack"
	EaseInCirc       Curve = "easeInCirc"
	EaseInCubic      Curve = "easeInCubic"
	EaseInExpo       Curve = "easeInExpo"
	EaseInQuad       Curve = "easeInQuad"
	EaseInSine       Curve = "easeInSine"
	EaseOut          Curve = "easeOut"
	EaseOutBack      Curve = "easeOutBack"
	EaseOutCirc      Curve = "easeOutCirc"
	EaseOutCubic     Curve = "easeOutCubic"
	EaseOutExpo      Curve = "easeOutExpo"
	EaseOutQuad      Curve = "easeOutQuad"
	EaseOutSine      Curve = "easeOutSine"
	EaseInOut        Curve = "easeInOut"
	EaseInOutBack    Curve = "easeInOutBack"
	EaseInOutCirc    Curve = "easeInOutCirc"
	EaseInOutCubic   Curve = "easeInOutCubic"
	EaseInOutExpo    Curve = "easeInOutExpo"
	EaseInOutQuad    Curve = "easeInOutQuad"
	EaseInOutSine    Curve = "easeInOutSine"
	BounceIn         Curve = "bounceIn"
	BounceOut        Curve = "bounceOut"
	BounceInOut      Curve = "bounceInOut"
	ElasticIn        Curve = "elasticIn"
	ElasticOut       Curve = "elasticOut"
	ElasticInOut     Curve = "elasticInOut"
	FastOutSlowIn    Curve = "fastOutSlowIn"
	FastLinearToSlow Curve = "fastLinearToSlowEaseIn"
	SlowMiddle       Curve = "slowMiddle"
)

var knownCurves = map[Curve]struct{}{
	Linear: {}, Decelerate: {}, Ease: {}, EaseIn: {}, EaseInBack: {},
	EaseInCirc: {}, EaseInCubic: {}, EaseInExpo: {}, EaseInQuad: {},
	EaseInSine: {}, EaseOut: {}, EaseOutBack: {}, EaseOutCirc: {},
	EaseOutCubic: {}, EaseOutExpo: {}, EaseOutQuad: {}, EaseOutSine: {},
	EaseInOut: {}, EaseInOutBack: {}, EaseInOutCirc: {}, EaseInOutCubic: {},
	EaseInOutExpo: {}, EaseInOutQuad: {}, EaseInOutSine: {}, BounceIn: {},
	BounceOut: {}, BounceInOut: {}, ElasticIn: {}, ElasticOut: {},
	ElasticInOut: {}, FastOutSlowIn: {}, FastLinearToSlow: {}, SlowMiddle: {},
}

// Known reports whether the renderer recognizes c.
func (c Curve) Known() bool {
	_, ok := knownCurves[c]
	return ok
}

func (c Curve) String() string {
	return string(c)
}
