package components

import (
	"fmt"
	"math"
)

// HSB is an opaque color in the hue/saturation/brightness model.
//
// Hue is normalized: 0 and a full channel value (1.0 or 255) are both red.
type HSB[T Channel] struct {
	Hue        T `json:"hue"`
	Saturation T `json:"saturation"`
	Brightness T `json:"brightness"`
}

// HSBA is an HSB color with an alpha channel.
type HSBA[T Channel] struct {
	Hue        T `json:"hue"`
	Saturation T `json:"saturation"`
	Brightness T `json:"brightness"`
	Alpha      T `json:"alpha"`
}

// Brightness01 returns the brightness channel on the normalized scale.
func (c HSB[T]) Brightness01() float64 {
	return unit(c.Brightness)
}

// IsDarkColor reports whether the brightness channel is below one half.
func (c HSB[T]) IsDarkColor() bool {
	return c.Brightness01() < darkThreshold
}

// IsClearColor is always false for opaque colors.
func (c HSB[T]) IsClearColor() bool {
	return false
}

// ChangeBrightness shifts the brightness channel by percent, clamped to [0,1].
func (c HSB[T]) ChangeBrightness(percent float64) HSB[T] {
	c.Brightness = adjust(c.Brightness, percent)
	return c
}

// WithAlpha returns c with the given alpha.
func (c HSB[T]) WithAlpha(alpha T) HSBA[T] {
	return HSBA[T]{Hue: c.Hue, Saturation: c.Saturation, Brightness: c.Brightness, Alpha: alpha}
}

func (c HSB[T]) String() string {
	return fmt.Sprintf("hsb(%v, %v, %v)", c.Hue, c.Saturation, c.Brightness)
}

// Brightness01 returns the brightness channel on the normalized scale.
func (c HSBA[T]) Brightness01() float64 {
	return unit(c.Brightness)
}

// IsDarkColor reports whether the brightness channel is below one half.
func (c HSBA[T]) IsDarkColor() bool {
	return c.Brightness01() < darkThreshold
}

// IsClearColor reports whether alpha is zero (or below).
func (c HSBA[T]) IsClearColor() bool {
	return c.Alpha <= 0
}

// Alpha01 returns alpha on the normalized scale.
func (c HSBA[T]) Alpha01() float64 {
	return unit(c.Alpha)
}

// ChangeBrightness shifts the brightness channel by percent, clamped to [0,1].
func (c HSBA[T]) ChangeBrightness(percent float64) HSBA[T] {
	c.Brightness = adjust(c.Brightness, percent)
	return c
}

// Opaque drops the alpha channel.
func (c HSBA[T]) Opaque() HSB[T] {
	return HSB[T]{Hue: c.Hue, Saturation: c.Saturation, Brightness: c.Brightness}
}

func (c HSBA[T]) String() string {
	return fmt.Sprintf("hsba(%v, %v, %v, %v)", c.Hue, c.Saturation, c.Brightness, c.Alpha)
}

// rgbToHSB converts normalized primaries to a normalized hue, saturation and
// brightness.
//
// With maxVal the largest primary and delta = maxVal - min, hue measured in
// sextants is (g-b)/delta when red is the maximum, 2+(b-r)/delta when green is
// and 4+(r-g)/delta when blue is. It is then divided by six and wrapped into
// [0,1). Achromatic colors (delta == 0) get hue and saturation zero.
func rgbToHSB(r, g, b float64) (h, s, v float64) {
	maxVal := math.Max(r, math.Max(g, b))
	delta := maxVal - math.Min(r, math.Min(g, b))

	var sextant float64
	switch maxVal {
	case r:
		if delta != 0 {
			sextant = (g - b) / delta
		}
	case g:
		if delta != 0 {
			sextant = 2 + (b-r)/delta
		}
	case b:
		if delta != 0 {
			sextant = 4 + (r-g)/delta
		}
	default:
		panic(fmt.Sprintf("components: no primary of (%v, %v, %v) equals the maximum %v", r, g, b, maxVal))
	}

	if delta == 0 {
		return 0, 0, maxVal
	}
	h = sextant / 6
	if h < 0 {
		h++
	}
	return h, delta / maxVal, maxVal
}

// hsbToRGB is the inverse of rgbToHSB.
func hsbToRGB(h, s, v float64) (r, g, b float64) {
	if s <= 0 {
		return v, v, v
	}
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	h *= 6
	i := math.Floor(h)
	f := h - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
