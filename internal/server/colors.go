package server

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/ironsheep/swatchkit/internal/components"
	"github.com/ironsheep/swatchkit/internal/imaging"
)

// Color models and storages accepted by color_convert.
const (
	modelRGB = "rgb"
	modelHSB = "hsb"
	modelBW  = "bw"

	storageUint8 = "uint8"
	storageFloat = "float"
)

// channelCount is the number of channels of each model, alpha excluded.
var channelCount = map[string]int{
	modelRGB: 3,
	modelHSB: 3,
	modelBW:  1,
}

// === Color Component Handlers ===

type colorParseArgs struct {
	Hex string `json:"hex"`
}

// colorParseResult is a color expressed in every model. The embedded
// ColorResult carries the 8-bit and display forms; the remaining fields are
// normalized float components.
type colorParseResult struct {
	imaging.ColorResult
	RGBAUnit components.RGBA[float64] `json:"rgba_unit"`
	HSBA     components.HSBA[float64] `json:"hsba"`
	BWA      components.BWA[float64]  `json:"bwa"`
	Platform string                   `json:"platform"`
}

func (s *Server) handleColorParse(args json.RawMessage) (interface{}, error) {
	var a colorParseArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := components.ParseHex(a.Hex)
	if err != nil {
		return nil, &argsError{err: err}
	}
	return describeAll(c), nil
}

func describeAll(c components.RGBA[uint8]) *colorParseResult {
	unit := components.ConvertRGBA[float64](c)
	return &colorParseResult{
		ColorResult: imaging.DescribeColor(c),
		RGBAUnit:    unit,
		HSBA:        components.HSBAFromRGBA(unit),
		BWA:         components.BWAFromRGBA(unit),
		Platform:    components.ColorFromRGBA(unit).String(),
	}
}

type colorConvertArgs struct {
	Model     string    `json:"model"`
	Storage   string    `json:"storage"`
	Values    []float64 `json:"values"`
	ToModel   string    `json:"to_model"`
	ToStorage string    `json:"to_storage"`
	Exact     bool      `json:"exact"`
}

type colorConvertResult struct {
	Model   string `json:"model"`
	Storage string `json:"storage"`

	// Components is nil when an exact conversion was requested and the color
	// has no exact representation in the target storage.
	Components  interface{} `json:"components"`
	Exact       bool        `json:"exact"`
	Hex         string      `json:"hex"`
	Description string      `json:"description,omitempty"`
}

func (s *Server) handleColorConvert(args json.RawMessage) (interface{}, error) {
	var a colorConvertArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Storage == "" {
		a.Storage = storageFloat
	}
	if a.ToModel == "" {
		a.ToModel = a.Model
	}
	if a.ToStorage == "" {
		a.ToStorage = a.Storage
	}

	src, err := decodeColor(a.Model, a.Storage, a.Values)
	if err != nil {
		return nil, err
	}
	if _, ok := channelCount[a.ToModel]; !ok {
		return nil, invalidArgs("unknown to_model %q (want rgb, hsb or bw)", a.ToModel)
	}
	if a.ToStorage != storageUint8 && a.ToStorage != storageFloat {
		return nil, invalidArgs("unknown to_storage %q (want uint8 or float)", a.ToStorage)
	}
	converted := convertModel(src, a.ToModel)

	result := &colorConvertResult{
		Model:   a.ToModel,
		Storage: a.ToStorage,
		Exact:   true,
		Hex:     "#" + components.ConvertRGBA[uint8](rgbaOf(converted)).HexString(true),
	}
	if a.ToStorage == storageFloat {
		result.Components = converted
	} else if a.Exact {
		result.Components, result.Exact = exactBytes(converted)
	} else {
		result.Components = lossyBytes(converted)
		_, result.Exact = exactBytes(converted)
	}
	if result.Components != nil {
		result.Description = fmt.Sprint(result.Components)
	}
	return result, nil
}

// decodeColor builds a float color of the given model from raw channel
// values. Alpha is optional and defaults to opaque. uint8 values must be
// integers in 0-255 and float values must lie in 0-1.
func decodeColor(model, storage string, values []float64) (interface{}, error) {
	n, ok := channelCount[model]
	if !ok {
		return nil, invalidArgs("unknown model %q (want rgb, hsb or bw)", model)
	}
	if storage != storageUint8 && storage != storageFloat {
		return nil, invalidArgs("unknown storage %q (want uint8 or float)", storage)
	}
	if len(values) != n && len(values) != n+1 {
		return nil, invalidArgs("%s takes %d or %d values, got %d", model, n, n+1, len(values))
	}

	discrete := storage == storageUint8
	v := slices.Clone(values)
	if len(v) == n {
		if discrete {
			v = append(v, 255)
		} else {
			v = append(v, 1)
		}
	}
	for i, x := range v {
		if discrete && (x != math.Trunc(x) || x < 0 || x > 255) {
			return nil, invalidArgs("value %d (%g) is not an integer in 0-255", i, x)
		}
		if !discrete && (x < 0 || x > 1) {
			return nil, invalidArgs("value %d (%g) is outside 0-1", i, x)
		}
	}

	if discrete {
		u := func(i int) uint8 { return uint8(v[i]) }
		switch model {
		case modelRGB:
			return components.ConvertRGBA[float64](components.RGBA[uint8]{Red: u(0), Green: u(1), Blue: u(2), Alpha: u(3)}), nil
		case modelHSB:
			return components.ConvertHSBA[float64](components.HSBA[uint8]{Hue: u(0), Saturation: u(1), Brightness: u(2), Alpha: u(3)}), nil
		default:
			return components.ConvertBWA[float64](components.BWA[uint8]{White: u(0), Alpha: u(1)}), nil
		}
	}
	switch model {
	case modelRGB:
		return components.RGBA[float64]{Red: v[0], Green: v[1], Blue: v[2], Alpha: v[3]}, nil
	case modelHSB:
		return components.HSBA[float64]{Hue: v[0], Saturation: v[1], Brightness: v[2], Alpha: v[3]}, nil
	default:
		return components.BWA[float64]{White: v[0], Alpha: v[1]}, nil
	}
}

// convertModel converts a float color returned by decodeColor to model.
func convertModel(c interface{}, model string) interface{} {
	switch c := c.(type) {
	case components.RGBA[float64]:
		switch model {
		case modelHSB:
			return components.HSBAFromRGBA(c)
		case modelBW:
			return components.BWAFromRGBA(c)
		}
	case components.HSBA[float64]:
		switch model {
		case modelRGB:
			return components.RGBAFromHSBA(c)
		case modelBW:
			return components.BWAFromHSBA(c)
		}
	case components.BWA[float64]:
		switch model {
		case modelRGB:
			return components.RGBAFromBWA(c)
		case modelHSB:
			return components.HSBAFromBWA(c)
		}
	}
	return c
}

func rgbaOf(c interface{}) components.RGBA[float64] {
	switch c := c.(type) {
	case components.HSBA[float64]:
		return components.RGBAFromHSBA(c)
	case components.BWA[float64]:
		return components.RGBAFromBWA(c)
	}
	return c.(components.RGBA[float64])
}

func lossyBytes(c interface{}) interface{} {
	switch c := c.(type) {
	case components.HSBA[float64]:
		return components.ConvertHSBA[uint8](c)
	case components.BWA[float64]:
		return components.ConvertBWA[uint8](c)
	}
	return components.ConvertRGBA[uint8](c.(components.RGBA[float64]))
}

// exactBytes returns the 8-bit form of c, or nil and false when a channel
// does not land on a whole step of 1/255.
func exactBytes(c interface{}) (interface{}, bool) {
	var out interface{}
	var ok bool
	switch c := c.(type) {
	case components.HSBA[float64]:
		out, ok = components.ConvertHSBAExactly[uint8](c)
	case components.BWA[float64]:
		out, ok = components.ConvertBWAExactly[uint8](c)
	default:
		out, ok = components.ConvertRGBAExactly[uint8](c.(components.RGBA[float64]))
	}
	if !ok {
		return nil, false
	}
	return out, true
}

type colorAdjustBrightnessArgs struct {
	Color   string  `json:"color"`
	Percent float64 `json:"percent"`
}

// colorAdjustBrightnessResult shows both adjustment rules side by side. RGB
// shifts each primary, HSB shifts the brightness channel only.
type colorAdjustBrightnessResult struct {
	Original    imaging.ColorResult `json:"original"`
	Percent     float64             `json:"percent"`
	RGBAdjusted imaging.ColorResult `json:"rgb_adjusted"`
	HSBAdjusted imaging.ColorResult `json:"hsb_adjusted"`
}

func (s *Server) handleColorAdjustBrightness(args json.RawMessage) (interface{}, error) {
	var a colorAdjustBrightnessArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	c, err := components.ParseHex(a.Color)
	if err != nil {
		return nil, &argsError{err: err}
	}

	unit := components.ConvertRGBA[float64](c)
	rgb := unit.ChangeBrightness(a.Percent)
	hsb := components.RGBAFromHSBA(components.HSBAFromRGBA(unit).ChangeBrightness(a.Percent))

	return &colorAdjustBrightnessResult{
		Original:    imaging.DescribeColor(c),
		Percent:     a.Percent,
		RGBAdjusted: imaging.DescribeColor(components.ConvertRGBA[uint8](rgb)),
		HSBAdjusted: imaging.DescribeColor(components.ConvertRGBA[uint8](hsb)),
	}, nil
}

type colorCompareArgs struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

func (s *Server) handleColorCompare(args json.RawMessage) (interface{}, error) {
	var a colorCompareArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	first, err := components.ParseHex(a.First)
	if err != nil {
		return nil, invalidArgs("first: %w", err)
	}
	second, err := components.ParseHex(a.Second)
	if err != nil {
		return nil, invalidArgs("second: %w", err)
	}
	return imaging.CompareColors(first, second), nil
}
