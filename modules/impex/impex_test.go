package impex_test

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/visiongo/modules/impex"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: uint8(y * 80), B: 128, A: 255})
		}
	}
	return img
}

func TestWriteThenReadPNG_RoundTripsPixels(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.png")
	src := testImage()

	require.NoError(t, impex.WriteImage(ctx, src, path))

	got, err := impex.ReadImage(ctx, path)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), got.Bounds())

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			wr, wg, wb, _ := src.At(x, y).RGBA()
			gr, gg, gb, _ := got.At(x, y).RGBA()
			require.Equal(t, wr, gr)
			require.Equal(t, wg, gg)
			require.Equal(t, wb, gb)
		}
	}
}

func TestWriteThenReadJPEG_PreservesDimensions(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.jpg")
	src := testImage()

	require.NoError(t, impex.WriteImage(ctx, src, path))

	got, err := impex.ReadImage(ctx, path)
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), got.Bounds())
}

func TestWriteImage_RejectsUnknownExtension(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.tiff")

	err := impex.WriteImage(ctx, testImage(), path)
	require.ErrorContains(t, err, `unsupported image format ".tiff"`)

	_, statErr := os.Stat(path)
	require.ErrorIs(t, statErr, os.ErrNotExist, "rejected write must not leave a file behind")
}

func TestReadImage_MissingFile(t *testing.T) {
	_, err := impex.ReadImage(context.Background(), filepath.Join(t.TempDir(), "absent.png"))
	require.ErrorContains(t, err, "readImage")
}

func TestReadImage_NotAnImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := impex.ReadImage(context.Background(), path)
	require.ErrorContains(t, err, "failed to decode")
}

func TestListFormats(t *testing.T) {
	require.Equal(t, []string{"jpeg", "png"}, impex.ListFormats())
}
