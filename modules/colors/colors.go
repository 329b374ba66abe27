// Package colors provides the colour-transformation capability.
package colors

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/vk/visiongo/internal/imgutil"
)

// RGB2Gray converts src to a single-channel grayscale image.
func RGB2Gray(src image.Image) (image.Image, error) {
	return imgutil.ToGray(src), nil
}

// LinearRangeMapping stretches each channel's observed [min, max] range to
// the full [0, 255] range. A constant image is copied unchanged.
func LinearRangeMapping(src image.Image) (image.Image, error) {
	in := imgutil.ToRGBA(src)
	b := in.Bounds()

	lo, hi := uint8(255), uint8(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o := in.PixOffset(x, y)
			for ch := 0; ch < 3; ch++ {
				v := in.Pix[o+ch]
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
		}
	}
	out := image.NewRGBA(b)
	if hi <= lo {
		draw.Draw(out, b, in, b.Min, draw.Src)
		return out, nil
	}

	scale := 255.0 / float64(hi-lo)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// in may be a sub-image view; its offsets do not line up with
			// out's layout.
			so := in.PixOffset(x, y)
			do := out.PixOffset(x, y)
			for ch := 0; ch < 3; ch++ {
				out.Pix[do+ch] = imgutil.ClampUint8(float64(in.Pix[so+ch]-lo) * scale)
			}
			out.Pix[do+3] = in.Pix[so+3]
		}
	}
	return out, nil
}

// Brightness shifts every colour channel by the given offset.
func Brightness(src image.Image, offset float64) (image.Image, error) {
	if offset < -255 || offset > 255 {
		return nil, fmt.Errorf("brightness: offset %g out of range [-255, 255]", offset)
	}
	in := imgutil.ToRGBA(src)
	b := in.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			so := in.PixOffset(x, y)
			do := out.PixOffset(x, y)
			for ch := 0; ch < 3; ch++ {
				out.Pix[do+ch] = imgutil.ClampUint8(float64(in.Pix[so+ch]) + offset)
			}
			out.Pix[do+3] = in.Pix[so+3]
		}
	}
	return out, nil
}
