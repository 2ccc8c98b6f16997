package components

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidHexLength is returned by ParseHex when the digits after the
	// optional prefix are not exactly six or eight characters long.
	ErrInvalidHexLength = errors.New("hex color must have 6 or 8 digits")

	// ErrInvalidHexDigit is returned by ParseHex for characters outside
	// 0-9, a-f and A-F.
	ErrInvalidHexDigit = errors.New("hex color contains a non-hex digit")
)

// RGBFromHex decomposes a 24-bit 0xRRGGBB integer. Bits above 24 are ignored.
func RGBFromHex(hex uint32) RGB[uint8] {
	return RGB[uint8]{
		Red:   uint8(hex >> 16),
		Green: uint8(hex >> 8),
		Blue:  uint8(hex),
	}
}

// RGBAFromHex decomposes a 32-bit 0xRRGGBBAA integer.
func RGBAFromHex(hex uint32) RGBA[uint8] {
	return RGBA[uint8]{
		Red:   uint8(hex >> 24),
		Green: uint8(hex >> 16),
		Blue:  uint8(hex >> 8),
		Alpha: uint8(hex),
	}
}

// Hex packs the color into a 0xRRGGBB integer. Float channels are rounded to
// the nearest byte.
func (c RGB[T]) Hex() uint32 {
	b := ConvertRGB[uint8](c)
	return uint32(b.Red)<<16 | uint32(b.Green)<<8 | uint32(b.Blue)
}

// Hex packs the color into a 0xRRGGBBAA integer.
func (c RGBA[T]) Hex() uint32 {
	return c.Opaque().Hex()<<8 | uint32(convertChannel[uint8](c.Alpha))
}

// HexString renders the color as six hex digits, RRGGBB, without a prefix.
func (c RGB[T]) HexString(uppercase bool) string {
	return formatHex(c.Hex(), 6, uppercase)
}

// HexString renders the color as eight hex digits, RRGGBBAA, without a prefix.
func (c RGBA[T]) HexString(uppercase bool) string {
	return formatHex(c.Hex(), 8, uppercase)
}

func formatHex(v uint32, digits int, uppercase bool) string {
	if uppercase {
		return fmt.Sprintf("%0*X", digits, v)
	}
	return fmt.Sprintf("%0*x", digits, v)
}

// ParseHex parses "#RRGGBB", "0xRRGGBBAA" and the unprefixed forms, case
// insensitively. Six digits yield a fully opaque color.
func ParseHex(s string) (RGBA[uint8], error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) == len(s) {
		digits = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	}

	if len(digits) != 6 && len(digits) != 8 {
		return RGBA[uint8]{}, fmt.Errorf("parse %q: %w", s, ErrInvalidHexLength)
	}
	for _, r := range digits {
		if !isHexDigit(r) {
			return RGBA[uint8]{}, fmt.Errorf("parse %q: %w", s, ErrInvalidHexDigit)
		}
	}

	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return RGBA[uint8]{}, fmt.Errorf("parse %q: %w", s, err)
	}
	if len(digits) == 6 {
		return RGBFromHex(uint32(v)).WithAlpha(0xFF), nil
	}
	return RGBAFromHex(uint32(v)), nil
}

// MustParseHex is ParseHex for literals known to be valid. It panics on
// malformed input.
func MustParseHex(s string) RGBA[uint8] {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
