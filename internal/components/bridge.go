package components

import "github.com/ironsheep/swatchkit/internal/paint"

// Bridging between float-backed components and platform colors. Building a
// color composes the channels directly; reading one back asks the color for
// the matching model and fails when it cannot supply it.

// ColorFromRGB returns an opaque platform color.
func ColorFromRGB[T Float](c RGB[T]) paint.Color {
	return paint.NewRGB(float64(c.Red), float64(c.Green), float64(c.Blue), 1)
}

// ColorFromRGBA returns a platform color with the same primaries and alpha.
func ColorFromRGBA[T Float](c RGBA[T]) paint.Color {
	return paint.NewRGB(float64(c.Red), float64(c.Green), float64(c.Blue), float64(c.Alpha))
}

// ColorFromHSB returns an opaque platform color.
func ColorFromHSB[T Float](c HSB[T]) paint.Color {
	return paint.NewHSB(float64(c.Hue), float64(c.Saturation), float64(c.Brightness), 1)
}

// ColorFromHSBA returns a platform color with the same hue, saturation,
// brightness and alpha.
func ColorFromHSBA[T Float](c HSBA[T]) paint.Color {
	return paint.NewHSB(float64(c.Hue), float64(c.Saturation), float64(c.Brightness), float64(c.Alpha))
}

// ColorFromBW returns an opaque greyscale platform color.
func ColorFromBW[T Float](c BW[T]) paint.Color {
	return paint.NewWhite(float64(c.White), 1)
}

// ColorFromBWA returns a greyscale platform color.
func ColorFromBWA[T Float](c BWA[T]) paint.Color {
	return paint.NewWhite(float64(c.White), float64(c.Alpha))
}

// ColorFromHex parses a hex string (see ParseHex) into a platform color.
func ColorFromHex(s string) (paint.Color, error) {
	c, err := ParseHex(s)
	if err != nil {
		return nil, err
	}
	return ColorFromRGBA(ConvertRGBA[float64](c)), nil
}

// RGBOf reads the primaries of a platform color, discarding alpha.
func RGBOf[T Float](p paint.Color) (RGB[T], bool) {
	c, ok := RGBAOf[T](p)
	return c.Opaque(), ok
}

// RGBAOf reads the primaries and alpha of a platform color.
func RGBAOf[T Float](p paint.Color) (RGBA[T], bool) {
	r, g, b, a, ok := p.AsRGBA()
	if !ok {
		return RGBA[T]{}, false
	}
	return RGBA[T]{Red: T(r), Green: T(g), Blue: T(b), Alpha: T(a)}, true
}

// HSBOf reads the hue, saturation and brightness of a platform color.
func HSBOf[T Float](p paint.Color) (HSB[T], bool) {
	c, ok := HSBAOf[T](p)
	return c.Opaque(), ok
}

// HSBAOf reads the hue, saturation, brightness and alpha of a platform color.
func HSBAOf[T Float](p paint.Color) (HSBA[T], bool) {
	h, s, v, a, ok := p.AsHSBA()
	if !ok {
		return HSBA[T]{}, false
	}
	return HSBA[T]{Hue: T(h), Saturation: T(s), Brightness: T(v), Alpha: T(a)}, true
}

// BWOf reads the white level of a greyscale platform color.
func BWOf[T Float](p paint.Color) (BW[T], bool) {
	c, ok := BWAOf[T](p)
	return c.Opaque(), ok
}

// BWAOf reads the white level and alpha of a greyscale platform color.
func BWAOf[T Float](p paint.Color) (BWA[T], bool) {
	w, a, ok := p.AsWhite()
	if !ok {
		return BWA[T]{}, false
	}
	return BWA[T]{White: T(w), Alpha: T(a)}, true
}

// UpdateRGBA overwrites dst with the RGBA decomposition of p. When p has none,
// dst is left unchanged and false is returned.
func UpdateRGBA[T Float](dst *RGBA[T], p paint.Color) bool {
	c, ok := RGBAOf[T](p)
	if ok {
		*dst = c
	}
	return ok
}

// UpdateHSBA overwrites dst with the HSBA decomposition of p, leaving it
// unchanged on failure.
func UpdateHSBA[T Float](dst *HSBA[T], p paint.Color) bool {
	c, ok := HSBAOf[T](p)
	if ok {
		*dst = c
	}
	return ok
}

// UpdateBWA overwrites dst with the greyscale decomposition of p, leaving it
// unchanged on failure.
func UpdateBWA[T Float](dst *BWA[T], p paint.Color) bool {
	c, ok := BWAOf[T](p)
	if ok {
		*dst = c
	}
	return ok
}
