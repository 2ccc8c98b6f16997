package imaging

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/swatchkit/internal/components"
)

// pixelDiffThreshold is the CIE-Lab distance above which two pixels count as
// different.
const pixelDiffThreshold = 0.05

// ColorComparison reports how far apart two colors are.
type ColorComparison struct {
	First  ColorResult `json:"first"`
	Second ColorResult `json:"second"`

	// DistanceLab is the CIE76 distance in go-colorful's Lab scale, where
	// black to white is 1.
	DistanceLab float64 `json:"distance_lab"`

	// DistanceCIEDE2000 is the perceptually uniform CIEDE2000 distance on
	// the same scale.
	DistanceCIEDE2000 float64 `json:"distance_ciede2000"`

	// BrightnessDelta is Second's brightness minus First's.
	BrightnessDelta float64 `json:"brightness_delta"`

	// ContrastRatio is the WCAG contrast ratio, from 1 (none) to 21
	// (black on white). Alpha is ignored.
	ContrastRatio float64 `json:"contrast_ratio"`
}

func toColorful(c components.RGB[uint8]) colorful.Color {
	return colorful.Color{R: float64(c.Red) / 255, G: float64(c.Green) / 255, B: float64(c.Blue) / 255}
}

func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// CompareColors measures the difference between a and b.
func CompareColors(a, b components.RGBA[uint8]) ColorComparison {
	ca, cb := toColorful(a.Opaque()), toColorful(b.Opaque())

	la, lb := relativeLuminance(ca), relativeLuminance(cb)
	if la < lb {
		la, lb = lb, la
	}

	return ColorComparison{
		First:             DescribeColor(a),
		Second:            DescribeColor(b),
		DistanceLab:       math.Round(ca.DistanceLab(cb)*1000) / 1000,
		DistanceCIEDE2000: math.Round(ca.DistanceCIEDE2000(cb)*1000) / 1000,
		BrightnessDelta:   math.Round((b.Brightness01()-a.Brightness01())*1000) / 1000,
		ContrastRatio:     math.Round((la+0.05)/(lb+0.05)*100) / 100,
	}
}

// CompareRegionsResult contains the result of comparing two regions pixel
// by pixel.
type CompareRegionsResult struct {
	SimilarityScore  float64          `json:"similarity_score"` // 0-1
	PixelsDifferent  int              `json:"pixels_different"`
	TotalPixels      int              `json:"total_pixels"`
	SameSize         bool             `json:"same_size"`
	Region1Size      DimensionsResult `json:"region1_size"`
	Region2Size      DimensionsResult `json:"region2_size"`
	AverageColorDiff float64          `json:"average_color_diff"` // mean CIE-Lab distance
}

// CompareRegions compares two regions of an image.
//
// Regions of different sizes are compared over their common top-left
// overlap. A pixel pair counts as different when its CIE-Lab distance
// exceeds pixelDiffThreshold. Alpha is ignored.
func CompareRegions(img image.Image, r1, r2 Region) (*CompareRegionsResult, error) {
	for _, r := range []Region{r1, r2} {
		if err := r.validate(img.Bounds()); err != nil {
			return nil, err
		}
	}

	w1, h1 := r1.X2-r1.X1, r1.Y2-r1.Y1
	w2, h2 := r2.X2-r2.X1, r2.Y2-r2.Y1
	minW, minH := min(w1, w2), min(h1, h2)

	total := minW * minH
	different := 0
	var totalDiff float64

	for dy := 0; dy < minH; dy++ {
		for dx := 0; dx < minW; dx++ {
			p1 := toColorful(componentsOf(img.At(r1.X1+dx, r1.Y1+dy)).Opaque())
			p2 := toColorful(componentsOf(img.At(r2.X1+dx, r2.Y1+dy)).Opaque())

			diff := p1.DistanceLab(p2)
			totalDiff += diff
			if diff > pixelDiffThreshold {
				different++
			}
		}
	}

	similarity := 1.0 - float64(different)/float64(total)

	return &CompareRegionsResult{
		SimilarityScore:  math.Round(similarity*1000) / 1000,
		PixelsDifferent:  different,
		TotalPixels:      total,
		SameSize:         w1 == w2 && h1 == h2,
		Region1Size:      DimensionsResult{Width: w1, Height: h1},
		Region2Size:      DimensionsResult{Width: w2, Height: h2},
		AverageColorDiff: math.Round(totalDiff/float64(total)*1000) / 1000,
	}, nil
}
