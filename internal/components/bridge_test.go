package components

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/swatchkit/internal/paint"
)

func TestBridge_RoundTrip(t *testing.T) {
	t.Run("rgba", func(t *testing.T) {
		in := RGBA[float64]{0.1, 0.2, 0.3, 0.4}
		out, ok := RGBAOf[float64](ColorFromRGBA(in))
		require.True(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("hsba", func(t *testing.T) {
		in := HSBA[float32]{0.25, 0.5, 0.75, 1}
		out, ok := HSBAOf[float32](ColorFromHSBA(in))
		require.True(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("bwa", func(t *testing.T) {
		in := BWA[float64]{0.6, 0.3}
		out, ok := BWAOf[float64](ColorFromBWA(in))
		require.True(t, ok)
		assert.Equal(t, in, out)
	})

	t.Run("opaque forms", func(t *testing.T) {
		rgb, ok := RGBOf[float64](ColorFromRGB(RGB[float64]{1, 0.5, 0}))
		require.True(t, ok)
		assert.Equal(t, RGB[float64]{1, 0.5, 0}, rgb)

		hsb, ok := HSBOf[float64](ColorFromHSB(HSB[float64]{0.5, 0.5, 0.5}))
		require.True(t, ok)
		assert.Equal(t, HSB[float64]{0.5, 0.5, 0.5}, hsb)

		bw, ok := BWOf[float64](ColorFromBW(BW[float64]{0.9}))
		require.True(t, ok)
		assert.Equal(t, BW[float64]{0.9}, bw)
	})
}

func TestBridge_CrossModelQueries(t *testing.T) {
	hsb := HSBA[float64]{0.25, 0.5, 0.75, 1}
	rgb, ok := RGBAOf[float64](ColorFromHSBA(hsb))
	require.True(t, ok)

	want := RGBAFromHSBA(hsb)
	assert.InDelta(t, want.Red, rgb.Red, 1e-9)
	assert.InDelta(t, want.Green, rgb.Green, 1e-9)
	assert.InDelta(t, want.Blue, rgb.Blue, 1e-9)

	back, ok := HSBAOf[float64](ColorFromRGBA(rgb))
	require.True(t, ok)
	assert.InDelta(t, hsb.Hue, back.Hue, 1e-9)
	assert.InDelta(t, hsb.Saturation, back.Saturation, 1e-9)
	assert.InDelta(t, hsb.Brightness, back.Brightness, 1e-9)
}

func TestBridge_UnrepresentableModels(t *testing.T) {
	pattern := paint.NewPattern(image.NewRGBA(image.Rect(0, 0, 2, 2)))

	_, ok := RGBAOf[float64](pattern)
	assert.False(t, ok)
	_, ok = HSBOf[float64](pattern)
	assert.False(t, ok)
	_, ok = BWAOf[float32](pattern)
	assert.False(t, ok)

	_, ok = BWOf[float64](ColorFromRGB(RGB[float64]{1, 0, 0}))
	assert.False(t, ok, "a chromatic color has no greyscale form")

	bw, ok := BWOf[float64](ColorFromRGB(RGB[float64]{0.3, 0.3, 0.3}))
	require.True(t, ok)
	assert.Equal(t, BW[float64]{0.3}, bw)
}

func TestUpdate_LeavesDestinationOnFailure(t *testing.T) {
	pattern := paint.NewPattern(nil)

	rgba := RGBA[float64]{0.1, 0.2, 0.3, 0.4}
	assert.False(t, UpdateRGBA(&rgba, pattern))
	assert.Equal(t, RGBA[float64]{0.1, 0.2, 0.3, 0.4}, rgba)

	hsba := HSBA[float64]{0.1, 0.2, 0.3, 0.4}
	assert.False(t, UpdateHSBA(&hsba, pattern))
	assert.Equal(t, HSBA[float64]{0.1, 0.2, 0.3, 0.4}, hsba)

	bwa := BWA[float64]{0.1, 0.2}
	assert.False(t, UpdateBWA(&bwa, ColorFromRGB(RGB[float64]{0, 0, 1})))
	assert.Equal(t, BWA[float64]{0.1, 0.2}, bwa)
}

func TestUpdate_OverwritesOnSuccess(t *testing.T) {
	var rgba RGBA[float64]
	require.True(t, UpdateRGBA(&rgba, paint.NewWhite(0.5, 1)))
	assert.Equal(t, RGBA[float64]{0.5, 0.5, 0.5, 1}, rgba)

	var hsba HSBA[float64]
	require.True(t, UpdateHSBA(&hsba, paint.NewWhite(0.5, 1)))
	assert.Equal(t, HSBA[float64]{0, 0, 0.5, 1}, hsba)

	var bwa BWA[float64]
	require.True(t, UpdateBWA(&bwa, paint.NewHSB(0.7, 0, 0.2, 0.5)))
	assert.Equal(t, BWA[float64]{0.2, 0.5}, bwa)
}

func TestColorFromHex_Invalid(t *testing.T) {
	_, err := ColorFromHex("#12")
	assert.ErrorIs(t, err, ErrInvalidHexLength)
}
