package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	cropped, err := Crop(img, &Region{X1: 50, Y1: 0, X2: 100, Y2: 50})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if b := cropped.Bounds(); b.Min != (image.Point{}) || b.Dx() != 50 || b.Dy() != 50 {
		t.Errorf("bounds: got %v, want (0,0)-(50,50)", b)
	}

	got := componentsOf(cropped.At(10, 10))
	if got.Red != 0 || got.Green != 255 || got.Blue != 0 {
		t.Errorf("top-right quadrant should be green, got %v", got)
	}
}

func TestCrop_NilRegion(t *testing.T) {
	img := createPatternImage(10, 10)
	cropped, err := Crop(img, nil)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if cropped != image.Image(img) {
		t.Error("nil region should return the source image")
	}
}

func TestCrop_InvalidRegions(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name   string
		region Region
	}{
		{"negative origin", Region{X1: -1, Y1: 0, X2: 10, Y2: 10}},
		{"past right edge", Region{X1: 0, Y1: 0, X2: 101, Y2: 10}},
		{"past bottom edge", Region{X1: 0, Y1: 0, X2: 10, Y2: 101}},
		{"empty width", Region{X1: 10, Y1: 0, X2: 10, Y2: 10}},
		{"inverted", Region{X1: 20, Y1: 20, X2: 10, Y2: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, &tt.region); err == nil {
				t.Error("Crop should fail")
			}
		})
	}
}

func TestEncodePNG(t *testing.T) {
	img := createInMemoryImage(40, 20, color.RGBA{10, 20, 30, 255})

	tests := []struct {
		name          string
		scale         float64
		width, height int
	}{
		{"unscaled", 1, 40, 20},
		{"zero means unscaled", 0, 40, 20},
		{"double", 2, 80, 40},
		{"half", 0.5, 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := EncodePNG(img, tt.scale)
			if err != nil {
				t.Fatalf("EncodePNG failed: %v", err)
			}
			if enc.Width != tt.width || enc.Height != tt.height {
				t.Errorf("size: got %dx%d, want %dx%d", enc.Width, enc.Height, tt.width, tt.height)
			}
			if enc.MimeType != "image/png" {
				t.Errorf("MimeType: got %s", enc.MimeType)
			}

			raw, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
			if err != nil {
				t.Fatalf("invalid base64: %v", err)
			}
			decoded, err := png.Decode(bytes.NewReader(raw))
			if err != nil {
				t.Fatalf("invalid PNG: %v", err)
			}
			if decoded.Bounds().Dx() != tt.width {
				t.Errorf("decoded width: got %d, want %d", decoded.Bounds().Dx(), tt.width)
			}
		})
	}
}

func TestEncodePNG_ScaleToNothing(t *testing.T) {
	img := createInMemoryImage(4, 4, color.White)
	if _, err := EncodePNG(img, 0.01); err == nil {
		t.Error("EncodePNG should fail when the scaled image is empty")
	}
}
