package colors_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/visiongo/internal/capability"
	"github.com/vk/visiongo/internal/testutil"
	"github.com/vk/visiongo/modules/colors"
)

func TestRGB2Gray_UsesLuminanceWeights(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	out, err := colors.RGB2Gray(src)
	require.NoError(t, err)

	gray, ok := out.(*image.Gray)
	require.True(t, ok)
	want := color.GrayModel.Convert(color.RGBA{R: 255, A: 255}).(color.Gray)
	require.Equal(t, want.Y, gray.GrayAt(0, 0).Y)
}

func TestLinearRangeMapping_StretchesToFullRange(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 50, G: 50, B: 50, A: 255})
	src.SetRGBA(1, 0, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	out, err := colors.LinearRangeMapping(src)
	require.NoError(t, err)

	rgba := out.(*image.RGBA)
	require.Equal(t, color.RGBA{R: 0, G: 0, B: 0, A: 255}, rgba.RGBAAt(0, 0))
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba.RGBAAt(1, 0))
}

func TestLinearRangeMapping_ConstantImageUnchanged(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 42, G: 42, B: 42, A: 255})
		}
	}

	out, err := colors.LinearRangeMapping(src)
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 42, G: 42, B: 42, A: 255}, out.(*image.RGBA).RGBAAt(1, 1))
}

func TestBrightness_ShiftsAndClamps(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 100, B: 100, A: 200})
	src.SetRGBA(1, 0, color.RGBA{R: 250, G: 250, B: 250, A: 255})

	out, err := colors.Brightness(src, 20)
	require.NoError(t, err)

	rgba := out.(*image.RGBA)
	require.Equal(t, color.RGBA{R: 120, G: 120, B: 120, A: 200}, rgba.RGBAAt(0, 0),
		"alpha must pass through untouched")
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba.RGBAAt(1, 0))
}

func TestBrightness_SubImageInput(t *testing.T) {
	src := testutil.InteriorRGBA(3, 3,
		color.RGBA{R: 100, G: 100, B: 100, A: 255},
		color.RGBA{R: 9, G: 9, B: 9, A: 255})

	out, err := colors.Brightness(src, 50)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), out.Bounds())

	rgba := out.(*image.RGBA)
	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			require.Equal(t, color.RGBA{R: 150, G: 150, B: 150, A: 255}, rgba.RGBAAt(x, y))
		}
	}
}

func TestLinearRangeMapping_SubImageInput(t *testing.T) {
	src := testutil.InteriorRGBA(2, 1,
		color.RGBA{R: 50, G: 50, B: 50, A: 255},
		color.RGBA{A: 255})
	b := src.Bounds()
	src.SetRGBA(b.Min.X+1, b.Min.Y, color.RGBA{R: 100, G: 100, B: 100, A: 255})

	out, err := colors.LinearRangeMapping(src)
	require.NoError(t, err)

	rgba := out.(*image.RGBA)
	require.Equal(t, color.RGBA{A: 255}, rgba.RGBAAt(b.Min.X, b.Min.Y))
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgba.RGBAAt(b.Min.X+1, b.Min.Y))
}

func TestLinearRangeMapping_ConstantResultIsACopy(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, color.RGBA{R: 42, G: 42, B: 42, A: 255})
		}
	}

	out, err := colors.LinearRangeMapping(src)
	require.NoError(t, err)

	rgba := out.(*image.RGBA)
	require.NotSame(t, src, rgba)
	rgba.SetRGBA(0, 0, color.RGBA{R: 1, A: 255})
	require.Equal(t, color.RGBA{R: 42, G: 42, B: 42, A: 255}, src.RGBAAt(0, 0))
}

func TestBrightness_RejectsOutOfRangeOffset(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))

	_, err := colors.Brightness(src, 300)
	require.ErrorContains(t, err, "out of range")

	_, err = colors.Brightness(src, -256)
	require.ErrorContains(t, err, "out of range")
}

func TestModule_BrightnessArgs(t *testing.T) {
	ctx, _ := testutil.Context()
	h, err := colors.Module{}.Load(ctx)
	require.NoError(t, err)

	attr, err := h.Attr("brightness")
	require.NoError(t, err)
	brightness := attr.(capability.Operation)

	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	_, err = brightness(ctx, src, nil)
	require.ErrorContains(t, err, `missing required arg "offset"`)

	_, err = brightness(ctx, src, map[string]string{"offset": "dim"})
	require.ErrorContains(t, err, `invalid offset "dim"`)

	_, err = brightness(ctx, src, map[string]string{"offset": "-30"})
	require.NoError(t, err)
}
