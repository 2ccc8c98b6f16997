package components

import "fmt"

// Luma weights applied to red, green and blue by Brightness.
const (
	lumaRed   = 0.299
	lumaGreen = 0.587
	lumaBlue  = 0.114
)

// RGB is an opaque color in the red/green/blue model.
type RGB[T Channel] struct {
	Red   T `json:"red"`
	Green T `json:"green"`
	Blue  T `json:"blue"`
}

// RGBA is an RGB color with an alpha channel.
type RGBA[T Channel] struct {
	Red   T `json:"red"`
	Green T `json:"green"`
	Blue  T `json:"blue"`
	Alpha T `json:"alpha"`
}

func luma(r, g, b float64) float64 {
	return lumaRed*r + lumaGreen*g + lumaBlue*b
}

// Brightness returns the perceptual luma 0.299R + 0.587G + 0.114B in the
// storage scale of T.
func (c RGB[T]) Brightness() T {
	return fromUnit[T](c.Brightness01())
}

// Brightness01 returns the perceptual luma on the normalized scale.
func (c RGB[T]) Brightness01() float64 {
	return luma(unit(c.Red), unit(c.Green), unit(c.Blue))
}

// IsDarkColor reports whether the brightness is below one half.
func (c RGB[T]) IsDarkColor() bool {
	return c.Brightness01() < darkThreshold
}

// IsClearColor is always false: an opaque color cannot be clear.
func (c RGB[T]) IsClearColor() bool {
	return false
}

// ChangeBrightness adds percent to each of red, green and blue independently,
// clamping every channel to [0,1].
//
// The shift is applied per primary rather than to the luma returned by
// Brightness, so the perceived brightness does not move by exactly percent.
func (c RGB[T]) ChangeBrightness(percent float64) RGB[T] {
	return RGB[T]{
		Red:   adjust(c.Red, percent),
		Green: adjust(c.Green, percent),
		Blue:  adjust(c.Blue, percent),
	}
}

// WithAlpha returns c with the given alpha.
func (c RGB[T]) WithAlpha(alpha T) RGBA[T] {
	return RGBA[T]{Red: c.Red, Green: c.Green, Blue: c.Blue, Alpha: alpha}
}

func (c RGB[T]) String() string {
	return fmt.Sprintf("rgb(%v, %v, %v)", c.Red, c.Green, c.Blue)
}

// Brightness returns the perceptual luma of the color channels; alpha is
// ignored.
func (c RGBA[T]) Brightness() T {
	return c.Opaque().Brightness()
}

// Brightness01 returns the perceptual luma on the normalized scale.
func (c RGBA[T]) Brightness01() float64 {
	return c.Opaque().Brightness01()
}

// IsDarkColor reports whether the brightness is below one half.
func (c RGBA[T]) IsDarkColor() bool {
	return c.Brightness01() < darkThreshold
}

// IsClearColor reports whether alpha is zero (or below).
func (c RGBA[T]) IsClearColor() bool {
	return c.Alpha <= 0
}

// Alpha01 returns alpha on the normalized scale.
func (c RGBA[T]) Alpha01() float64 {
	return unit(c.Alpha)
}

// ChangeBrightness adjusts red, green and blue like RGB.ChangeBrightness and
// leaves alpha alone.
func (c RGBA[T]) ChangeBrightness(percent float64) RGBA[T] {
	return c.Opaque().ChangeBrightness(percent).WithAlpha(c.Alpha)
}

// Opaque drops the alpha channel.
func (c RGBA[T]) Opaque() RGB[T] {
	return RGB[T]{Red: c.Red, Green: c.Green, Blue: c.Blue}
}

// Blend linearly interpolates every channel, alpha included, from c toward
// other. A fraction of 0 returns c and 1 returns other; values outside [0,1]
// are clamped.
func (c RGBA[T]) Blend(other RGBA[T], fraction float64) RGBA[T] {
	t := clamp01(fraction)
	mix := func(a, b T) T {
		return fromUnit[T](unit(a)*(1-t) + unit(b)*t)
	}
	return RGBA[T]{
		Red:   mix(c.Red, other.Red),
		Green: mix(c.Green, other.Green),
		Blue:  mix(c.Blue, other.Blue),
		Alpha: mix(c.Alpha, other.Alpha),
	}
}

// Over composites c on top of background with the source-over operator.
// Neither color is premultiplied.
func (c RGBA[T]) Over(background RGBA[T]) RGBA[T] {
	sa, ba := unit(c.Alpha), unit(background.Alpha)
	outA := sa + ba*(1-sa)
	if outA <= 0 {
		return RGBA[T]{}
	}
	mix := func(s, b T) T {
		return fromUnit[T]((unit(s)*sa + unit(b)*ba*(1-sa)) / outA)
	}
	return RGBA[T]{
		Red:   mix(c.Red, background.Red),
		Green: mix(c.Green, background.Green),
		Blue:  mix(c.Blue, background.Blue),
		Alpha: fromUnit[T](outA),
	}
}

func (c RGBA[T]) String() string {
	return fmt.Sprintf("rgba(%v, %v, %v, %v)", c.Red, c.Green, c.Blue, c.Alpha)
}
