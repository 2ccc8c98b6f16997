package components

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Channel is the storage type of a single color channel.
//
// Two disjoint families are supported:
//   - Discrete channels (~uint8) span 0 to 255.
//   - Normalized channels (float32, float64) span 0.0 to 1.0.
//
// The range of a normalized channel is a convention and is not enforced.
type Channel interface {
	~uint8 | constraints.Float
}

// Float is the set of normalized channel types. Only float-backed components
// can be bridged to and from a paint.Color.
type Float interface {
	constraints.Float
}

// exactTolerance is the largest rounding error, measured on the 0-255 scale,
// that an exact conversion still accepts. It absorbs float32 representation
// error without admitting values that are not multiples of 1/255.
const exactTolerance = 1e-4

// isDiscrete reports whether T is an integer channel type.
func isDiscrete[T Channel]() bool {
	var one T = 1
	return one/2 == 0
}

// scale returns the value that represents full intensity for T.
func scale[T Channel]() float64 {
	if isDiscrete[T]() {
		return 255
	}
	return 1
}

// unit returns v on the normalized 0-1 scale.
func unit[T Channel](v T) float64 {
	return float64(v) / scale[T]()
}

// fromUnit stores a normalized value as T. Discrete channels are clamped and
// rounded; normalized channels are stored as-is.
func fromUnit[T Channel](f float64) T {
	if isDiscrete[T]() {
		return T(math.Round(clamp01(f) * 255))
	}
	return T(f)
}

func clamp01(v float64) float64 {
	return math.Max(math.Min(v, 1), 0)
}

// convertChannel converts a single channel between storage types.
//
// Integer to integer and float to float are direct conversions. Integer to
// float divides by 255, float to integer multiplies by 255 and rounds after
// clamping to the representable range.
func convertChannel[To, From Channel](v From) To {
	fromDiscrete, toDiscrete := isDiscrete[From](), isDiscrete[To]()
	switch {
	case fromDiscrete == toDiscrete:
		return To(v)
	case fromDiscrete:
		return To(float64(v) / 255)
	default:
		return To(math.Round(clamp01(float64(v)) * 255))
	}
}

// convertChannelExactly is convertChannel that fails instead of losing
// precision.
func convertChannelExactly[To, From Channel](v From) (To, bool) {
	fromDiscrete, toDiscrete := isDiscrete[From](), isDiscrete[To]()
	switch {
	case fromDiscrete && toDiscrete:
		return To(v), true
	case !fromDiscrete && !toDiscrete:
		out := To(v)
		if float64(out) != float64(v) {
			return 0, false
		}
		return out, true
	case fromDiscrete:
		out := To(float64(v) / 255)
		if math.Abs(float64(out)*255-float64(v)) > exactTolerance {
			return 0, false
		}
		return out, true
	default:
		scaled := float64(v) * 255
		if math.IsNaN(scaled) {
			return 0, false
		}
		rounded := math.Round(scaled)
		if rounded < 0 || rounded > 255 || math.Abs(scaled-rounded) > exactTolerance {
			return 0, false
		}
		return To(rounded), true
	}
}

// adjust adds percent to a channel on the normalized scale and clamps the
// result to [0,1].
func adjust[T Channel](v T, percent float64) T {
	return fromUnit[T](math.Max(math.Min(unit(v)+percent, 1), 0))
}
