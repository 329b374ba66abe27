// Package sampling provides the resampling capability: bilinear resize and
// integral-factor resampling.
package sampling

import (
	"fmt"
	"image"

	"github.com/vk/visiongo/internal/imgutil"
)

// Resize scales src to the given dimensions with bilinear interpolation.
func Resize(src image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resize: target size must be positive, got %dx%d", width, height)
	}
	in := imgutil.ToRGBA(src)
	b := in.Bounds()
	srcW := b.Dx()
	srcH := b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		fy := mapCoord(y, height, srcH)
		y0 := int(fy)
		y1 := min(y0+1, srcH-1)
		wy := fy - float64(y0)
		for x := 0; x < width; x++ {
			fx := mapCoord(x, width, srcW)
			x0 := int(fx)
			x1 := min(x0+1, srcW-1)
			wx := fx - float64(x0)

			o := out.PixOffset(x, y)
			for ch := 0; ch < 4; ch++ {
				p00 := float64(in.Pix[in.PixOffset(b.Min.X+x0, b.Min.Y+y0)+ch])
				p10 := float64(in.Pix[in.PixOffset(b.Min.X+x1, b.Min.Y+y0)+ch])
				p01 := float64(in.Pix[in.PixOffset(b.Min.X+x0, b.Min.Y+y1)+ch])
				p11 := float64(in.Pix[in.PixOffset(b.Min.X+x1, b.Min.Y+y1)+ch])
				top := p00 + (p10-p00)*wx
				bot := p01 + (p11-p01)*wx
				out.Pix[o+ch] = imgutil.ClampUint8(top + (bot-top)*wy)
			}
		}
	}
	return out, nil
}

// ResampleImage scales src by an integral factor with nearest-neighbour
// sampling: factor > 0 enlarges, factor < 0 shrinks by |factor|.
func ResampleImage(src image.Image, factor int) (image.Image, error) {
	if factor == 0 || factor == -1 {
		return nil, fmt.Errorf("resampleImage: invalid factor %d", factor)
	}
	in := imgutil.ToRGBA(src)
	b := in.Bounds()

	var dstW, dstH int
	if factor > 0 {
		dstW, dstH = b.Dx()*factor, b.Dy()*factor
	} else {
		dstW, dstH = b.Dx()/(-factor), b.Dy()/(-factor)
		if dstW == 0 || dstH == 0 {
			return nil, fmt.Errorf("resampleImage: factor %d collapses %dx%d image", factor, b.Dx(), b.Dy())
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		var sy int
		if factor > 0 {
			sy = y / factor
		} else {
			sy = y * (-factor)
		}
		for x := 0; x < dstW; x++ {
			var sx int
			if factor > 0 {
				sx = x / factor
			} else {
				sx = x * (-factor)
			}
			so := in.PixOffset(b.Min.X+sx, b.Min.Y+sy)
			do := out.PixOffset(x, y)
			copy(out.Pix[do:do+4], in.Pix[so:so+4])
		}
	}
	return out, nil
}

// mapCoord maps a destination index into continuous source coordinates with
// centre alignment.
func mapCoord(i, dstSize, srcSize int) float64 {
	if dstSize == 1 {
		return 0
	}
	f := (float64(i) + 0.5) * float64(srcSize) / float64(dstSize)
	f -= 0.5
	if f < 0 {
		return 0
	}
	if f > float64(srcSize-1) {
		return float64(srcSize - 1)
	}
	return f
}
