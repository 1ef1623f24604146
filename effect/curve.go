package effect

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fogleman/ease"
)

// Curve maps fade progress in [0,1] onto output progress in [0,1].
type Curve = ease.Function

// DefaultCurve is used when a fade does not ask for anything else.
const DefaultCurve = "linear"

var curves = map[string]Curve{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-quart":     ease.InQuart,
	"in-out-sine":  ease.InOutSine,
}

// CurveByName looks up one of the built-in easing curves.
func CurveByName(name string) (Curve, error) {
	if name == "" {
		name = DefaultCurve
	}
	if c, ok := curves[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown fade curve %q", name)
}

// CurveNames returns the names accepted by CurveByName.
func CurveNames() []string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FPS returns the frame interval for n frames per second.
func FPS(n int) time.Duration {
	return time.Second / time.Duration(n)
}

// Clamp bounds t to [min,max]; the bounds may be given in either order.
func Clamp(t, min, max float64) float64 {
	min, max = math.Min(min, max), math.Max(min, max)
	return math.Max(math.Min(t, max), min)
}

// ToByte rounds v to the nearest DMX level.
func ToByte(v float64) uint8 {
	return uint8(math.Round(Clamp(v, 0, 255)))
}

// Interpolate returns the level between from and to at progress p along curve.
// p is clamped to [0,1] and p == 1 always lands exactly on to.
func Interpolate(curve Curve, from, to uint8, p float64) uint8 {
	p = Clamp(p, 0, 1)
	if p == 1 {
		return to
	}
	if curve == nil {
		curve = ease.Linear
	}
	return ToByte(float64(from) + (float64(to)-float64(from))*curve(p))
}
