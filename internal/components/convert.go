package components

// Conversions between color models. Each keeps the storage type of its
// input; use the Convert functions below to change storage.

// HSBFromRGB converts an RGB color to HSB.
//
// It panics if none of red, green or blue equals their maximum, which can only
// happen for NaN channels.
func HSBFromRGB[T Channel](c RGB[T]) HSB[T] {
	h, s, v := rgbToHSB(unit(c.Red), unit(c.Green), unit(c.Blue))
	return HSB[T]{Hue: fromUnit[T](h), Saturation: fromUnit[T](s), Brightness: fromUnit[T](v)}
}

// HSBAFromRGBA converts an RGBA color to HSBA, carrying alpha over.
func HSBAFromRGBA[T Channel](c RGBA[T]) HSBA[T] {
	return HSBFromRGB(c.Opaque()).WithAlpha(c.Alpha)
}

// RGBFromHSB converts an HSB color to RGB.
func RGBFromHSB[T Channel](c HSB[T]) RGB[T] {
	r, g, b := hsbToRGB(unit(c.Hue), unit(c.Saturation), unit(c.Brightness))
	return RGB[T]{Red: fromUnit[T](r), Green: fromUnit[T](g), Blue: fromUnit[T](b)}
}

// RGBAFromHSBA converts an HSBA color to RGBA, carrying alpha over.
func RGBAFromHSBA[T Channel](c HSBA[T]) RGBA[T] {
	return RGBFromHSB(c.Opaque()).WithAlpha(c.Alpha)
}

// BWFromRGB converts an RGB color to greyscale using its perceptual luma.
func BWFromRGB[T Channel](c RGB[T]) BW[T] {
	return BW[T]{White: c.Brightness()}
}

// BWAFromRGBA converts an RGBA color to greyscale, carrying alpha over.
func BWAFromRGBA[T Channel](c RGBA[T]) BWA[T] {
	return BWFromRGB(c.Opaque()).WithAlpha(c.Alpha)
}

// RGBFromBW spreads white over all three primaries.
func RGBFromBW[T Channel](c BW[T]) RGB[T] {
	return RGB[T]{Red: c.White, Green: c.White, Blue: c.White}
}

// RGBAFromBWA spreads white over all three primaries, carrying alpha over.
func RGBAFromBWA[T Channel](c BWA[T]) RGBA[T] {
	return RGBFromBW(c.Opaque()).WithAlpha(c.Alpha)
}

// BWFromHSB keeps only the brightness channel.
func BWFromHSB[T Channel](c HSB[T]) BW[T] {
	return BW[T]{White: c.Brightness}
}

// BWAFromHSBA keeps only the brightness and alpha channels.
func BWAFromHSBA[T Channel](c HSBA[T]) BWA[T] {
	return BWA[T]{White: c.Brightness, Alpha: c.Alpha}
}

// HSBFromBW returns an achromatic HSB color with white as its brightness.
func HSBFromBW[T Channel](c BW[T]) HSB[T] {
	return HSB[T]{Brightness: c.White}
}

// HSBAFromBWA returns an achromatic HSBA color with white as its brightness.
func HSBAFromBWA[T Channel](c BWA[T]) HSBA[T] {
	return HSBA[T]{Brightness: c.White, Alpha: c.Alpha}
}

// Conversions between storage types. The plain form is lossy; the Exactly
// form reports ok=false as soon as one channel would lose precision.

// ConvertRGB changes the storage type of an RGB color.
func ConvertRGB[To, From Channel](c RGB[From]) RGB[To] {
	return RGB[To]{
		Red:   convertChannel[To](c.Red),
		Green: convertChannel[To](c.Green),
		Blue:  convertChannel[To](c.Blue),
	}
}

// ConvertRGBExactly changes the storage type of an RGB color without loss.
func ConvertRGBExactly[To, From Channel](c RGB[From]) (RGB[To], bool) {
	var out RGB[To]
	ok := convertInto(&out.Red, c.Red) &&
		convertInto(&out.Green, c.Green) &&
		convertInto(&out.Blue, c.Blue)
	if !ok {
		return RGB[To]{}, false
	}
	return out, true
}

// ConvertRGBA changes the storage type of an RGBA color.
func ConvertRGBA[To, From Channel](c RGBA[From]) RGBA[To] {
	return ConvertRGB[To](c.Opaque()).WithAlpha(convertChannel[To](c.Alpha))
}

// ConvertRGBAExactly changes the storage type of an RGBA color without loss.
func ConvertRGBAExactly[To, From Channel](c RGBA[From]) (RGBA[To], bool) {
	rgb, ok := ConvertRGBExactly[To](c.Opaque())
	if !ok {
		return RGBA[To]{}, false
	}
	alpha, ok := convertChannelExactly[To](c.Alpha)
	if !ok {
		return RGBA[To]{}, false
	}
	return rgb.WithAlpha(alpha), true
}

// ConvertHSB changes the storage type of an HSB color.
func ConvertHSB[To, From Channel](c HSB[From]) HSB[To] {
	return HSB[To]{
		Hue:        convertChannel[To](c.Hue),
		Saturation: convertChannel[To](c.Saturation),
		Brightness: convertChannel[To](c.Brightness),
	}
}

// ConvertHSBExactly changes the storage type of an HSB color without loss.
func ConvertHSBExactly[To, From Channel](c HSB[From]) (HSB[To], bool) {
	var out HSB[To]
	ok := convertInto(&out.Hue, c.Hue) &&
		convertInto(&out.Saturation, c.Saturation) &&
		convertInto(&out.Brightness, c.Brightness)
	if !ok {
		return HSB[To]{}, false
	}
	return out, true
}

// ConvertHSBA changes the storage type of an HSBA color.
func ConvertHSBA[To, From Channel](c HSBA[From]) HSBA[To] {
	return ConvertHSB[To](c.Opaque()).WithAlpha(convertChannel[To](c.Alpha))
}

// ConvertHSBAExactly changes the storage type of an HSBA color without loss.
func ConvertHSBAExactly[To, From Channel](c HSBA[From]) (HSBA[To], bool) {
	hsb, ok := ConvertHSBExactly[To](c.Opaque())
	if !ok {
		return HSBA[To]{}, false
	}
	alpha, ok := convertChannelExactly[To](c.Alpha)
	if !ok {
		return HSBA[To]{}, false
	}
	return hsb.WithAlpha(alpha), true
}

// ConvertBW changes the storage type of a greyscale color.
func ConvertBW[To, From Channel](c BW[From]) BW[To] {
	return BW[To]{White: convertChannel[To](c.White)}
}

// ConvertBWExactly changes the storage type of a greyscale color without loss.
func ConvertBWExactly[To, From Channel](c BW[From]) (BW[To], bool) {
	white, ok := convertChannelExactly[To](c.White)
	if !ok {
		return BW[To]{}, false
	}
	return BW[To]{White: white}, true
}

// ConvertBWA changes the storage type of a greyscale color with alpha.
func ConvertBWA[To, From Channel](c BWA[From]) BWA[To] {
	return BWA[To]{White: convertChannel[To](c.White), Alpha: convertChannel[To](c.Alpha)}
}

// ConvertBWAExactly changes the storage type of a greyscale color with alpha
// without loss.
func ConvertBWAExactly[To, From Channel](c BWA[From]) (BWA[To], bool) {
	var out BWA[To]
	if !convertInto(&out.White, c.White) || !convertInto(&out.Alpha, c.Alpha) {
		return BWA[To]{}, false
	}
	return out, true
}

func convertInto[To, From Channel](dst *To, v From) bool {
	out, ok := convertChannelExactly[To](v)
	if ok {
		*dst = out
	}
	return ok
}
