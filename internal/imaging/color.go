package imaging

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"slices"

	"github.com/ironsheep/swatchkit/internal/components"
)

// ColorResult describes one color through the component model.
//
// The same color is given in every form a client may want:
//   - Hex and HexAlpha: "#RRGGBB" and "#RRGGBBAA", uppercase
//   - RGB and RGBA: 8-bit channels (0-255), not premultiplied
//   - HSB: normalized hue, saturation and brightness (0-1)
//   - Brightness, IsDark and IsClear: the perceptual queries of the model
type ColorResult struct {
	Hex        string                  `json:"hex"`
	HexAlpha   string                  `json:"hex_alpha"`
	RGB        components.RGB[uint8]   `json:"rgb"`
	RGBA       components.RGBA[uint8]  `json:"rgba"`
	HSB        components.HSB[float64] `json:"hsb"`
	Brightness float64                 `json:"brightness"`
	IsDark     bool                    `json:"is_dark"`
	IsClear    bool                    `json:"is_clear"`
}

// DescribeColor expands c into a ColorResult.
func DescribeColor(c components.RGBA[uint8]) ColorResult {
	hsb := components.HSBAFromRGBA(components.ConvertRGBA[float64](c))
	return ColorResult{
		Hex:        "#" + c.Opaque().HexString(true),
		HexAlpha:   "#" + c.HexString(true),
		RGB:        c.Opaque(),
		RGBA:       c,
		HSB:        hsb.Opaque(),
		Brightness: c.Brightness01(),
		IsDark:     c.IsDarkColor(),
		IsClear:    c.IsClearColor(),
	}
}

// componentsOf converts any image color to straight (non-premultiplied)
// 8-bit components.
func componentsOf(c color.Color) components.RGBA[uint8] {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return components.RGBA[uint8]{Red: n.R, Green: n.G, Blue: n.B, Alpha: n.A}
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y).
//   - error: Non-nil if coordinates are outside the image bounds.
//
// Semi-transparent pixels are un-premultiplied, so a half-transparent red
// reports RGB 255,0,0 with alpha 128.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	result := DescribeColor(componentsOf(img.At(x, y)))
	return &result, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Label string `json:"label,omitempty"`
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti extracts colors at multiple pixel coordinates in a single call.
//
// On error no partial results are returned.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// ColorFrequency represents a quantized color and how much of the image it covers.
type ColorFrequency struct {
	Hex        string                `json:"hex"`
	Percentage float64               `json:"percentage"` // 0-100
	RGB        components.RGB[uint8] `json:"rgb"`
	IsDark     bool                  `json:"is_dark"`
}

// DominantColorsResult lists colors by frequency, most common first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts the N most common colors from an image or region.
//
// Parameters:
//   - img: The source image to analyze.
//   - count: Maximum number of colors to return.
//   - region: Optional rectangle to analyze. If nil, the entire image is used.
//
// # Color Quantization
//
// Similar colors are grouped by truncating every channel to a multiple of 16:
//
//	quantized = (original / 16) * 16
//
// so #F0F0F0 and #FAFAFA both count as #F0F0F0. Fully transparent pixels
// have no color and are skipped; percentages are relative to the remaining
// pixels. Ties are broken by hex value so results are stable.
func DominantColors(img image.Image, count int, region *Region) (*DominantColorsResult, error) {
	bounds := img.Bounds()
	if region != nil {
		if err := region.validate(bounds); err != nil {
			return nil, err
		}
		bounds = region.Rect()
	}

	counts := make(map[components.RGB[uint8]]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := componentsOf(img.At(x, y))
			if c.IsClearColor() {
				continue
			}
			key := components.RGB[uint8]{
				Red:   c.Red / 16 * 16,
				Green: c.Green / 16 * 16,
				Blue:  c.Blue / 16 * 16,
			}
			counts[key]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        "#" + rgb.HexString(true),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        rgb,
			IsDark:     rgb.IsDarkColor(),
		})
	}

	slices.SortFunc(colors, func(a, b ColorFrequency) int {
		if c := cmp.Compare(b.Percentage, a.Percentage); c != 0 {
			return c
		}
		return cmp.Compare(a.Hex, b.Hex)
	})

	if count >= 0 && len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Colors: colors}, nil
}
