// Package animation describes implicit animations for the renderer.
//
// Nothing here interpolates. An [Animation] is a descriptor (duration plus
// easing curve) serialized to the renderer, which runs the animation itself.
package animation

import (
	"encoding/json"
	"fmt"
	"time"
)

// Animation configures how the renderer animates property changes.
//
// Example:
//
//	border.WithAnimate(&animation.Animation{
//	    Duration: time.Second,
//	    Curve:    animation.EaseInOut,
//	})
type Animation struct {
	// Duration is the length of the animation. Sent in whole milliseconds.
	Duration time.Duration
	// Curve is the easing curve. Empty leaves the renderer default (linear).
	Curve Curve
}

// New returns an Animation of the given duration and curve.
func New(d time.Duration, curve Curve) *Animation {
	return &Animation{Duration: d, Curve: curve}
}

// Milliseconds returns an Animation of ms milliseconds with the default curve.
func Milliseconds(ms int) *Animation {
	return &Animation{Duration: time.Duration(ms) * time.Millisecond}
}

type animationPayload struct {
	Duration int64  `json:"duration"`
	Curve    string `json:"curve,omitempty"`
}

// MarshalJSON encodes the animation as {"duration": ms, "curve": name}.
func (a Animation) MarshalJSON() ([]byte, error) {
	return json.Marshal(animationPayload{
		Duration: a.Duration.Milliseconds(),
		Curve:    string(a.Curve),
	})
}

// UnmarshalJSON decodes the renderer encoding.
func (a *Animation) UnmarshalJSON(data []byte) error {
	var p animationPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	a.Duration = time.Duration(p.Duration) * time.Millisecond
	a.Curve = Curve(p.Curve)
	return nil
}

func (a Animation) String() string {
	if a.Curve == "" {
		return fmt.Sprintf("Animation(%s)", a.Duration)
	}
	return fmt.Sprintf("Animation(%s, %s)", a.Duration, a.Curve)
}
