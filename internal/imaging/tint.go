package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/swatchkit/internal/components"
)

// TintMode selects how Tint combines the tint color with the image.
type TintMode int

const (
	// TintTemplate paints the tint color through the image's alpha channel,
	// discarding the image's own colors. Icons are usually tinted this way.
	TintTemplate TintMode = iota
	// TintMultiply multiplies every pixel by the tint color, keeping the
	// image's shading and its alpha channel.
	TintMultiply
)

func (m TintMode) String() string {
	switch m {
	case TintTemplate:
		return "template"
	case TintMultiply:
		return "multiply"
	default:
		return fmt.Sprintf("TintMode(%d)", int(m))
	}
}

// ParseTintMode parses "template" or "multiply". The empty string selects
// TintTemplate.
func ParseTintMode(s string) (TintMode, error) {
	switch s {
	case "", "template":
		return TintTemplate, nil
	case "multiply":
		return TintMultiply, nil
	}
	return 0, fmt.Errorf("unknown tint mode %q (want template or multiply)", s)
}

// Tint returns a tinted copy of img with bounds starting at (0,0).
func Tint(img image.Image, tint components.RGBA[uint8], mode TintMode) *image.RGBA {
	if mode == TintMultiply {
		return tintMultiply(img, tint)
	}
	return tintTemplate(img, tint)
}

// tintTemplate fades the tint in by the coverage of every source pixel.
func tintTemplate(img image.Image, tint components.RGBA[uint8]) *image.RGBA {
	faded := tint
	faded.Alpha = 0
	return adjust.Apply(img, func(px color.RGBA) color.RGBA {
		c := faded.Blend(tint, float64(px.A)/255)
		return color.RGBA{
			R: premultiply(c.Red, c.Alpha),
			G: premultiply(c.Green, c.Alpha),
			B: premultiply(c.Blue, c.Alpha),
			A: c.Alpha,
		}
	})
}

// tintMultiply multiplies the opaque colors of img by the tint and lays the
// product over them with the tint's alpha as its strength. The source alpha
// is applied once, at the end.
func tintMultiply(img image.Image, tint components.RGBA[uint8]) *image.RGBA {
	src := imaging.Clone(img)
	opaque := imaging.Clone(src)
	for i := 3; i < len(opaque.Pix); i += 4 {
		opaque.Pix[i] = 255
	}

	fg := image.NewRGBA(src.Rect)
	fill := color.NRGBA{R: tint.Red, G: tint.Green, B: tint.Blue, A: 255}
	draw.Draw(fg, fg.Rect, image.NewUniform(fill), image.Point{}, draw.Src)
	product := blend.Multiply(opaque, fg)

	dst := image.NewRGBA(src.Rect)
	for i := 0; i+3 < len(src.Pix) && i+3 < len(product.Pix); i += 4 {
		base := components.RGBA[uint8]{Red: src.Pix[i], Green: src.Pix[i+1], Blue: src.Pix[i+2], Alpha: 255}
		layer := components.RGBA[uint8]{
			Red:   product.Pix[i],
			Green: product.Pix[i+1],
			Blue:  product.Pix[i+2],
			Alpha: tint.Alpha,
		}
		c := layer.Over(base)

		a := src.Pix[i+3]
		dst.Pix[i] = premultiply(c.Red, a)
		dst.Pix[i+1] = premultiply(c.Green, a)
		dst.Pix[i+2] = premultiply(c.Blue, a)
		dst.Pix[i+3] = a
	}
	return dst
}

func premultiply(v, alpha uint8) uint8 {
	return uint8((uint32(v)*uint32(alpha) + 127) / 255)
}
