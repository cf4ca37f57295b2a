package animation

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
)

// Ease names an easing curve.
type Ease uint8

const (
	Linear Ease = iota
	QuadraticInOut
	CubicOut
	SineInOut
	CircularInOut
	BackOut
)

var easeNames = []string{"Linear", "QuadraticInOut", "CubicOut", "SineInOut", "CircularInOut", "BackOut"}

func (e Ease) String() string {
	if int(e) < len(easeNames) {
		return easeNames[e]
	}
	return "Ease(?)"
}

// ParseEase looks an easing up by name, ignoring case.
func ParseEase(name string) (Ease, error) {
	for i, n := range easeNames {
		if strings.EqualFold(n, name) {
			return Ease(i), nil
		}
	}
	return Linear, eris.Errorf("unknown easing %q", name)
}

// Sample evaluates the curve at f, clamped to [0,1].
func (e Ease) Sample(f float64) float64 {
	f = max(0, min(1, f))
	switch e {
	case QuadraticInOut:
		if f < 0.5 {
			return 2 * f * f
		}
		return 1 - math.Pow(-2*f+2, 2)/2
	case CubicOut:
		return 1 - math.Pow(1-f, 3)
	case SineInOut:
		return -(math.Cos(math.Pi*f) - 1) / 2
	case CircularInOut:
		if f < 0.5 {
			return (1 - math.Sqrt(1-math.Pow(2*f, 2))) / 2
		}
		return (math.Sqrt(1-math.Pow(-2*f+2, 2)) + 1) / 2
	case BackOut:
		const c1 = 1.70158
		const c3 = c1 + 1
		return 1 + c3*math.Pow(f-1, 3) + c1*math.Pow(f-1, 2)
	default:
		return f
	}
}
