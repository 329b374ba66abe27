// Package histogram provides the histogram capability: per-channel counts
// and grayscale equalization.
package histogram

import (
	"image"

	"github.com/vk/visiongo/internal/imgutil"
)

// Channels is the set of channel names reported by Histogram.
var Channels = []string{"red", "green", "blue"}

// Histogram counts the 8-bit values of each colour channel.
func Histogram(src image.Image) map[string][]int {
	in := imgutil.ToRGBA(src)
	b := in.Bounds()

	counts := make(map[string][]int, len(Channels))
	for _, ch := range Channels {
		counts[ch] = make([]int, 256)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			o := in.PixOffset(x, y)
			counts["red"][in.Pix[o]]++
			counts["green"][in.Pix[o+1]]++
			counts["blue"][in.Pix[o+2]]++
		}
	}
	return counts
}

// Equalize applies histogram equalization to the grayscale rendition of src.
func Equalize(src image.Image) (image.Image, error) {
	gray := imgutil.ToGray(src)
	b := gray.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return gray, nil
	}

	// Walk the bounds rather than Pix: gray may be a sub-image view whose
	// buffer carries stride padding outside the visible rectangle.
	var counts [256]int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			counts[gray.Pix[gray.PixOffset(x, y)]]++
		}
	}

	// Cumulative distribution mapped back onto [0, 255].
	var lut [256]uint8
	cum := 0
	for i := 0; i < 256; i++ {
		cum += counts[i]
		lut[i] = imgutil.ClampUint8(float64(cum) * 255.0 / float64(total))
	}

	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Pix[out.PixOffset(x, y)] = lut[gray.Pix[gray.PixOffset(x, y)]]
		}
	}
	return out, nil
}
