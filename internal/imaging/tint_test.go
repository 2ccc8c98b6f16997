package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/swatchkit/internal/components"
)

func TestParseTintMode(t *testing.T) {
	tests := []struct {
		in      string
		want    TintMode
		wantErr bool
	}{
		{"", TintTemplate, false},
		{"template", TintTemplate, false},
		{"multiply", TintMultiply, false},
		{"screen", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTintMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// iconImage is opaque black on the left half and transparent on the right.
func iconImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
		}
	}
	return img
}

func TestTint_Template(t *testing.T) {
	tint := components.RGBA[uint8]{Red: 200, Green: 100, Blue: 50, Alpha: 255}
	out := Tint(iconImage(), tint, TintTemplate)

	if got := out.RGBAAt(0, 0); got != (color.RGBA{200, 100, 50, 255}) {
		t.Errorf("opaque pixel: got %v, want the tint color", got)
	}
	if got := out.RGBAAt(3, 1); got.A != 0 {
		t.Errorf("transparent pixel should stay transparent, got %v", got)
	}
}

func TestTint_TemplateHalfAlpha(t *testing.T) {
	tint := components.RGBA[uint8]{Red: 200, Green: 0, Blue: 0, Alpha: 255}
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 51})

	got := Tint(img, tint, TintTemplate).RGBAAt(0, 0)
	if got.A != 51 || got.R != 40 {
		t.Errorf("got %v, want premultiplied {40 0 0 51}", got)
	}
}

func TestTint_Multiply(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(2, 0, color.NRGBA{255, 255, 255, 0})

	tint := components.RGBA[uint8]{Red: 200, Green: 100, Blue: 50, Alpha: 255}
	out := Tint(img, tint, TintMultiply)

	near := func(got, want uint8) bool {
		d := int(got) - int(want)
		return d >= -1 && d <= 1
	}

	white := out.RGBAAt(0, 0)
	if !near(white.R, 200) || !near(white.G, 100) || !near(white.B, 50) || !near(white.A, 255) {
		t.Errorf("white × tint: got %v, want about {200 100 50 255}", white)
	}
	black := out.RGBAAt(1, 0)
	if black.R > 1 || black.G > 1 || black.B > 1 || !near(black.A, 255) {
		t.Errorf("black × tint: got %v, want opaque black", black)
	}
	if clearPx := out.RGBAAt(2, 0); clearPx.A != 0 {
		t.Errorf("transparent pixel should stay transparent, got %v", clearPx)
	}
}

func TestTint_KeepsSize(t *testing.T) {
	img := createPatternImage(9, 5)
	for _, mode := range []TintMode{TintTemplate, TintMultiply} {
		out := Tint(img, components.RGBA[uint8]{Red: 1, Alpha: 255}, mode)
		if out.Bounds().Dx() != 9 || out.Bounds().Dy() != 5 {
			t.Errorf("%v: got %v, want 9x5", mode, out.Bounds())
		}
	}
}

func TestTint_MultiplySemiTransparent(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{200, 200, 200, 128})
	img.SetNRGBA(1, 0, color.NRGBA{200, 100, 0, 128})

	near := func(got, want uint8) bool {
		d := int(got) - int(want)
		return d >= -2 && d <= 2
	}
	straight := func(out *image.RGBA, x int) color.NRGBA {
		return color.NRGBAModel.Convert(out.At(x, 0)).(color.NRGBA)
	}

	tests := []struct {
		name string
		tint components.RGBA[uint8]
		x    int
		want color.NRGBA
	}{
		// Multiplying by white must leave the pixel as it was.
		{"identity", components.RGBA[uint8]{Red: 255, Green: 255, Blue: 255, Alpha: 255}, 0, color.NRGBA{200, 200, 200, 128}},
		{"half red", components.RGBA[uint8]{Red: 255, Green: 0, Blue: 0, Alpha: 255}, 1, color.NRGBA{200, 0, 0, 128}},
		// A half-transparent tint applies half of the product.
		{"half strength", components.RGBA[uint8]{Red: 255, Green: 0, Blue: 0, Alpha: 128}, 1, color.NRGBA{200, 50, 0, 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := straight(Tint(img, tt.tint, TintMultiply), tt.x)
			if got.A != tt.want.A || !near(got.R, tt.want.R) || !near(got.G, tt.want.G) || !near(got.B, tt.want.B) {
				t.Errorf("got %v, want about %v", got, tt.want)
			}
		})
	}
}
