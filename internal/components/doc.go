// Package components models colors as plain component sets.
//
// Three color models are provided, each with an opaque and an alpha-bearing
// form:
//   - RGB / RGBA: red, green and blue primaries
//   - HSB / HSBA: hue, saturation and brightness
//   - BW / BWA: a single white (greyscale) channel
//
// Every type is generic over its channel storage (see Channel). A discrete
// channel is a byte in 0-255; a normalized channel is a float in 0.0-1.0.
// Hue is normalized as well: a full turn around the color wheel is 1.0.
//
// # Conversions
//
// Conversions between models (HSBFromRGB, RGBFromHSB, ...) keep the storage
// type. Conversions between storage types come in two forms:
//   - ConvertRGB and friends are lossy: float to byte rounds and clamps.
//   - ConvertRGBExactly and friends return ok=false when the value cannot be
//     represented without loss, e.g. a float that is not a multiple of 1/255.
//
// # Hexadecimal
//
// RGBFromHex and RGBAFromHex decompose 0xRRGGBB and 0xRRGGBBAA integers.
// ParseHex accepts an optional "#" or "0x" prefix followed by exactly six or
// eight hex digits; a missing alpha is fully opaque.
//
// # Platform colors
//
// Float-backed components can be turned into a paint.Color and read back from
// one. Reading fails when the color cannot supply the requested model, such
// as a pattern color asked for its RGB decomposition.
//
// All types are immutable values. Methods that "change" a color return the
// adjusted copy.
package components

// OpaqueComponents is implemented by every component set.
type OpaqueComponents interface {
	// Brightness01 is the perceived brightness on the normalized 0-1 scale.
	Brightness01() float64
	IsDarkColor() bool
	IsClearColor() bool
}

// Components is an OpaqueComponents that also carries alpha.
type Components interface {
	OpaqueComponents
	// Alpha01 is the opacity on the normalized 0-1 scale.
	Alpha01() float64
}

var (
	_ OpaqueComponents = RGB[float64]{}
	_ OpaqueComponents = HSB[float64]{}
	_ OpaqueComponents = BW[uint8]{}
	_ Components       = RGBA[float64]{}
	_ Components       = HSBA[uint8]{}
	_ Components       = BWA[float32]{}
)

// darkThreshold separates dark colors from light ones. A brightness exactly at
// the threshold is light.
const darkThreshold = 0.5
