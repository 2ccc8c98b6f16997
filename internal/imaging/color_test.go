package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/ironsheep/swatchkit/internal/components"
)

// createInMemoryImage creates an in-memory test image
func createInMemoryImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestSampleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 128, 64, 255})

	result, err := SampleColor(img, 50, 50)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}

	if result.Hex != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", result.Hex)
	}
	if result.HexAlpha != "#FF8040FF" {
		t.Errorf("HexAlpha: got %s, want #FF8040FF", result.HexAlpha)
	}

	want := components.RGBA[uint8]{Red: 255, Green: 128, Blue: 64, Alpha: 255}
	if result.RGBA != want {
		t.Errorf("RGBA: got %v, want %v", result.RGBA, want)
	}
	if result.RGB != want.Opaque() {
		t.Errorf("RGB: got %v, want %v", result.RGB, want.Opaque())
	}
	if result.IsDark || result.IsClear {
		t.Errorf("orange should be neither dark nor clear: %+v", result)
	}
}

func TestSampleColor_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		color   color.RGBA
		wantHex string
		wantHue float64 // normalized, one turn is 1.0
		dark    bool
	}{
		{"pure red", color.RGBA{255, 0, 0, 255}, "#FF0000", 0, true},
		{"pure green", color.RGBA{0, 255, 0, 255}, "#00FF00", 1.0 / 3, false},
		{"pure blue", color.RGBA{0, 0, 255, 255}, "#0000FF", 2.0 / 3, true},
		{"white", color.RGBA{255, 255, 255, 255}, "#FFFFFF", 0, false},
		{"black", color.RGBA{0, 0, 0, 255}, "#000000", 0, true},
		{"gray", color.RGBA{128, 128, 128, 255}, "#808080", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := createInMemoryImage(10, 10, tt.color)
			result, err := SampleColor(img, 5, 5)
			if err != nil {
				t.Fatalf("SampleColor failed: %v", err)
			}

			if result.Hex != tt.wantHex {
				t.Errorf("Hex: got %s, want %s", result.Hex, tt.wantHex)
			}
			if math.Abs(result.HSB.Hue-tt.wantHue) > 1e-9 {
				t.Errorf("Hue: got %f, want %f", result.HSB.Hue, tt.wantHue)
			}
			if result.IsDark != tt.dark {
				t.Errorf("IsDark: got %v, want %v", result.IsDark, tt.dark)
			}
		})
	}
}

func TestSampleColor_Unpremultiplies(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(1, 1, color.NRGBA{255, 0, 0, 128})

	result, err := SampleColor(img, 1, 1)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	want := components.RGBA[uint8]{Red: 255, Alpha: 128}
	if result.RGBA != want {
		t.Errorf("RGBA: got %v, want %v", result.RGBA, want)
	}

	transparent, err := SampleColor(img, 0, 0)
	if err != nil {
		t.Fatalf("SampleColor failed: %v", err)
	}
	if !transparent.IsClear {
		t.Error("transparent pixel should be clear")
	}
}

func TestSampleColor_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 50},
		{"negative y", 50, -1},
		{"x too large", 100, 50},
		{"y too large", 50, 100},
		{"both too large", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if err == nil {
				t.Error("SampleColor should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestSampleColor_EdgeCoordinates(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	// Test edge coordinates (should succeed)
	tests := []struct {
		name string
		x, y int
	}{
		{"top-left", 0, 0},
		{"top-right", 99, 0},
		{"bottom-left", 0, 99},
		{"bottom-right", 99, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleColor(img, tt.x, tt.y)
			if err != nil {
				t.Errorf("SampleColor failed for valid edge coordinate (%d,%d): %v", tt.x, tt.y, err)
			}
		})
	}
}

func TestSampleColorsMulti(t *testing.T) {
	img := createPatternImage(100, 100)

	points := []LabeledPoint{
		{X: 25, Y: 25, Label: "red"},
		{X: 75, Y: 25, Label: "green"},
		{X: 25, Y: 75, Label: "blue"},
		{X: 75, Y: 75, Label: "white"},
	}

	result, err := SampleColorsMulti(img, points)
	if err != nil {
		t.Fatalf("SampleColorsMulti failed: %v", err)
	}

	if len(result.Samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(result.Samples))
	}

	// Check labels preserved
	for i, sample := range result.Samples {
		if sample.Label != points[i].Label {
			t.Errorf("sample %d label: got %s, want %s", i, sample.Label, points[i].Label)
		}
	}

	// Check colors
	expectedHex := []string{"#FF0000", "#00FF00", "#0000FF", "#FFFFFF"}
	for i, sample := range result.Samples {
		if sample.Color.Hex != expectedHex[i] {
			t.Errorf("sample %d (%s) hex: got %s, want %s",
				i, sample.Label, sample.Color.Hex, expectedHex[i])
		}
	}
}

func TestSampleColorsMulti_EmptyPoints(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	result, err := SampleColorsMulti(img, []LabeledPoint{})
	if err != nil {
		t.Fatalf("SampleColorsMulti failed: %v", err)
	}

	if len(result.Samples) != 0 {
		t.Errorf("expected 0 samples, got %d", len(result.Samples))
	}
}

func TestSampleColorsMulti_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	points := []LabeledPoint{
		{X: 50, Y: 50, Label: "valid"},
		{X: 200, Y: 50, Label: "invalid"},
	}

	_, err := SampleColorsMulti(img, points)
	if err == nil {
		t.Error("SampleColorsMulti should fail when any point is out of bounds")
	}
}

func TestDominantColors(t *testing.T) {
	// Create an image with mostly red, some green
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 80 {
				img.Set(x, y, color.RGBA{255, 0, 0, 255}) // 80% red
			} else {
				img.Set(x, y, color.RGBA{0, 255, 0, 255}) // 20% green
			}
		}
	}

	result, err := DominantColors(img, 5, nil)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}

	if len(result.Colors) == 0 {
		t.Fatal("expected at least one color")
	}

	// Red should be the most dominant
	// Note: colors are quantized, so exact values may differ
	if result.Colors[0].Percentage < 50 {
		t.Errorf("dominant color percentage too low: %f", result.Colors[0].Percentage)
	}
}

func TestDominantColors_WithRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	// Sample only the top-left quadrant (red)
	region := &Region{X1: 0, Y1: 0, X2: 50, Y2: 50}
	result, err := DominantColors(img, 5, region)
	if err != nil {
		t.Fatalf("DominantColors with region failed: %v", err)
	}

	if len(result.Colors) == 0 {
		t.Fatal("expected at least one color")
	}

	// Should be predominantly red (quantized)
	// The quantized red is #F00000 (255/16*16 = 240 -> F0)
	if result.Colors[0].Percentage < 90 {
		t.Errorf("expected red to dominate in top-left region, got %f%%", result.Colors[0].Percentage)
	}
}

func TestDominantColors_SingleColor(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{128, 128, 128, 255})

	result, err := DominantColors(img, 3, nil)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}

	// Should have exactly 1 color since image is uniform
	if len(result.Colors) != 1 {
		t.Errorf("expected 1 color for uniform image, got %d", len(result.Colors))
	}

	// That color should be 100%
	if result.Colors[0].Percentage != 100 {
		t.Errorf("expected 100%% for single color, got %f%%", result.Colors[0].Percentage)
	}
}

func TestDominantColors_QuantizesAndSkipsTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			switch {
			case y < 3:
				img.SetNRGBA(x, y, color.NRGBA{0xFA, 0xFA, 0xFA, 255})
			case y < 5:
				img.SetNRGBA(x, y, color.NRGBA{0xF1, 0xF2, 0xF3, 255})
			case y < 7:
				img.SetNRGBA(x, y, color.NRGBA{0x10, 0x20, 0x30, 255})
			}
		}
	}

	result, err := DominantColors(img, 10, nil)
	if err != nil {
		t.Fatalf("DominantColors failed: %v", err)
	}
	if len(result.Colors) != 2 {
		t.Fatalf("expected 2 colors, got %d: %+v", len(result.Colors), result.Colors)
	}

	first, second := result.Colors[0], result.Colors[1]
	if first.Hex != "#F0F0F0" || math.Abs(first.Percentage-500.0/7) > 1e-9 {
		t.Errorf("first: got %s %.3f%%, want #F0F0F0 71.429%%", first.Hex, first.Percentage)
	}
	if first.IsDark {
		t.Error("#F0F0F0 should not be dark")
	}
	if second.Hex != "#102030" || !second.IsDark {
		t.Errorf("second: got %s dark=%v, want dark #102030", second.Hex, second.IsDark)
	}
}

func TestDominantColors_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(10, 10, color.RGBA{1, 2, 3, 255})
	if _, err := DominantColors(img, 3, &Region{X1: 0, Y1: 0, X2: 20, Y2: 5}); err == nil {
		t.Error("DominantColors should reject a region outside the image")
	}
}

func TestDescribeColor(t *testing.T) {
	c := components.RGBA[uint8]{Red: 0, Green: 0, Blue: 0, Alpha: 0}
	got := DescribeColor(c)
	if !got.IsClear || !got.IsDark {
		t.Errorf("transparent black: got %+v", got)
	}
	if got.HexAlpha != "#00000000" {
		t.Errorf("HexAlpha: got %s", got.HexAlpha)
	}
}
