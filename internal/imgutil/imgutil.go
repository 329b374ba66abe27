// Package imgutil holds the pixel-level helpers shared by the capability
// modules: colour-model normalization and channel clamping.
package imgutil

import (
	"image"
	"image/color"
	"image/draw"
)

// ToRGBA returns src as an *image.RGBA, copying only when necessary.
func ToRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// ToGray returns src as an *image.Gray using the standard luminance weights.
func ToGray(src image.Image) *image.Gray {
	if gray, ok := src.(*image.Gray); ok {
		return gray
	}
	b := src.Bounds()
	dst := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, color.GrayModel.Convert(src.At(x, y)))
		}
	}
	return dst
}

// ClampUint8 clamps v into the displayable [0, 255] range.
func ClampUint8(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
