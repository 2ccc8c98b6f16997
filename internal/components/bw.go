package components

import "fmt"

// BW is an opaque greyscale color. White is the brightness of the color.
type BW[T Channel] struct {
	White T `json:"white"`
}

// BWA is a greyscale color with an alpha channel.
type BWA[T Channel] struct {
	White T `json:"white"`
	Alpha T `json:"alpha"`
}

// Brightness01 returns white on the normalized scale.
func (c BW[T]) Brightness01() float64 {
	return unit(c.White)
}

// IsDarkColor reports whether white is below one half.
func (c BW[T]) IsDarkColor() bool {
	return c.Brightness01() < darkThreshold
}

// IsClearColor is always false for opaque colors.
func (c BW[T]) IsClearColor() bool {
	return false
}

// ChangeBrightness shifts white by percent, clamped to [0,1].
func (c BW[T]) ChangeBrightness(percent float64) BW[T] {
	return BW[T]{White: adjust(c.White, percent)}
}

// WithAlpha returns c with the given alpha.
func (c BW[T]) WithAlpha(alpha T) BWA[T] {
	return BWA[T]{White: c.White, Alpha: alpha}
}

func (c BW[T]) String() string {
	return fmt.Sprintf("bw(%v)", c.White)
}

// Brightness01 returns white on the normalized scale.
func (c BWA[T]) Brightness01() float64 {
	return unit(c.White)
}

// IsDarkColor reports whether white is below one half.
func (c BWA[T]) IsDarkColor() bool {
	return c.Brightness01() < darkThreshold
}

// IsClearColor reports whether alpha is zero (or below).
func (c BWA[T]) IsClearColor() bool {
	return c.Alpha <= 0
}

// Alpha01 returns alpha on the normalized scale.
func (c BWA[T]) Alpha01() float64 {
	return unit(c.Alpha)
}

// ChangeBrightness shifts white by percent, clamped to [0,1].
func (c BWA[T]) ChangeBrightness(percent float64) BWA[T] {
	c.White = adjust(c.White, percent)
	return c
}

// Opaque drops the alpha channel.
func (c BWA[T]) Opaque() BW[T] {
	return BW[T]{White: c.White}
}

func (c BWA[T]) String() string {
	return fmt.Sprintf("bwa(%v, %v)", c.White, c.Alpha)
}
