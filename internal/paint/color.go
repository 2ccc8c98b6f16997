package paint

import (
	"fmt"
	"image"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a platform color with fallible channel accessors. All values are
// on the normalized 0-1 scale; hue is a fraction of a full turn.
type Color interface {
	AsRGBA() (r, g, b, a float64, ok bool)
	AsHSBA() (h, s, v, a float64, ok bool)
	AsWhite() (w, a float64, ok bool)
	String() string
}

var (
	_ Color = RGBColor{}
	_ Color = HSBColor{}
	_ Color = WhiteColor{}
	_ Color = PatternColor{}

	_ color.Color = RGBColor{}
	_ color.Color = HSBColor{}
	_ color.Color = WhiteColor{}
)

// RGBColor is a solid color specified by its primaries.
type RGBColor struct {
	R, G, B, A float64
}

// NewRGB returns a solid color from normalized primaries and alpha.
func NewRGB(r, g, b, a float64) RGBColor {
	return RGBColor{R: r, G: g, B: b, A: a}
}

func (c RGBColor) AsRGBA() (r, g, b, a float64, ok bool) {
	return c.R, c.G, c.B, c.A, true
}

func (c RGBColor) AsHSBA() (h, s, v, a float64, ok bool) {
	deg, s, v := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsv()
	return deg / 360, s, v, c.A, true
}

// AsWhite succeeds only for achromatic colors.
func (c RGBColor) AsWhite() (w, a float64, ok bool) {
	if c.R != c.G || c.G != c.B {
		return 0, 0, false
	}
	return c.R, c.A, true
}

// RGBA implements color.Color.
func (c RGBColor) RGBA() (r, g, b, a uint32) {
	return premultiplied(c.R, c.G, c.B, c.A)
}

func (c RGBColor) String() string {
	return fmt.Sprintf("rgba(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}

// HSBColor is a solid color specified by hue, saturation and brightness.
type HSBColor struct {
	H, S, V, A float64
}

// NewHSB returns a solid color from a normalized hue, saturation, brightness
// and alpha.
func NewHSB(h, s, v, a float64) HSBColor {
	return HSBColor{H: h, S: s, V: v, A: a}
}

func (c HSBColor) AsRGBA() (r, g, b, a float64, ok bool) {
	hue := math.Mod(c.H, 1)
	if hue < 0 {
		hue++
	}
	rgb := colorful.Hsv(hue*360, c.S, c.V)
	return rgb.R, rgb.G, rgb.B, c.A, true
}

func (c HSBColor) AsHSBA() (h, s, v, a float64, ok bool) {
	return c.H, c.S, c.V, c.A, true
}

// AsWhite succeeds only for unsaturated colors.
func (c HSBColor) AsWhite() (w, a float64, ok bool) {
	if c.S != 0 {
		return 0, 0, false
	}
	return c.V, c.A, true
}

// RGBA implements color.Color.
func (c HSBColor) RGBA() (r, g, b, a uint32) {
	rf, gf, bf, af, _ := c.AsRGBA()
	return premultiplied(rf, gf, bf, af)
}

func (c HSBColor) String() string {
	return fmt.Sprintf("hsba(%.3f, %.3f, %.3f, %.3f)", c.H, c.S, c.V, c.A)
}

// WhiteColor is a greyscale color.
type WhiteColor struct {
	W, A float64
}

// NewWhite returns a greyscale color.
func NewWhite(w, a float64) WhiteColor {
	return WhiteColor{W: w, A: a}
}

func (c WhiteColor) AsRGBA() (r, g, b, a float64, ok bool) {
	return c.W, c.W, c.W, c.A, true
}

func (c WhiteColor) AsHSBA() (h, s, v, a float64, ok bool) {
	return 0, 0, c.W, c.A, true
}

func (c WhiteColor) AsWhite() (w, a float64, ok bool) {
	return c.W, c.A, true
}

// RGBA implements color.Color.
func (c WhiteColor) RGBA() (r, g, b, a uint32) {
	return premultiplied(c.W, c.W, c.W, c.A)
}

func (c WhiteColor) String() string {
	return fmt.Sprintf("white(%.3f, %.3f)", c.W, c.A)
}

// PatternColor paints with a tiled image. It has no channel decomposition.
type PatternColor struct {
	img image.Image
}

// NewPattern returns a color that tiles img.
func NewPattern(img image.Image) PatternColor {
	return PatternColor{img: img}
}

// Image returns the tiled image.
func (c PatternColor) Image() image.Image {
	return c.img
}

func (PatternColor) AsRGBA() (r, g, b, a float64, ok bool) { return 0, 0, 0, 0, false }
func (PatternColor) AsHSBA() (h, s, v, a float64, ok bool) { return 0, 0, 0, 0, false }
func (PatternColor) AsWhite() (w, a float64, ok bool)      { return 0, 0, false }

func (c PatternColor) String() string {
	if c.img == nil {
		return "pattern(empty)"
	}
	b := c.img.Bounds()
	return fmt.Sprintf("pattern(%dx%d)", b.Dx(), b.Dy())
}

// FromStandard converts an image/color value into a solid RGB color,
// removing alpha premultiplication.
func FromStandard(c color.Color) RGBColor {
	_, _, _, a16 := c.RGBA()
	rgb, ok := colorful.MakeColor(c)
	if !ok {
		return RGBColor{}
	}
	return RGBColor{R: rgb.R, G: rgb.G, B: rgb.B, A: float64(a16) / 0xFFFF}
}

// ToNRGBA converts c to an 8-bit non-premultiplied color. It fails when c has
// no RGB decomposition.
func ToNRGBA(c Color) (color.NRGBA, bool) {
	r, g, b, a, ok := c.AsRGBA()
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: to8(r), G: to8(g), B: to8(b), A: to8(a)}, true
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	return math.Max(math.Min(v, 1), 0)
}

// premultiplied returns 16-bit alpha-premultiplied channels as required by
// color.Color.
func premultiplied(r, g, b, a float64) (uint32, uint32, uint32, uint32) {
	a = clamp01(a)
	scale := func(v float64) uint32 {
		return uint32(math.Round(clamp01(v) * a * 0xFFFF))
	}
	return scale(r), scale(g), scale(b), uint32(math.Round(a * 0xFFFF))
}
