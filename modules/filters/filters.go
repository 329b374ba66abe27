// Package filters provides the spatial-filtering capability: convolution
// against arbitrary kernels, Gaussian smoothing and gradient magnitude.
package filters

import (
	"fmt"
	"image"
	"math"

	"github.com/vk/visiongo/internal/imgutil"
)

// Convolve applies a 2D kernel to every channel of src. The kernel must be
// rectangular with odd dimensions. Border pixels use clamped sampling.
func Convolve(src image.Image, kernel [][]float64) (image.Image, error) {
	kh := len(kernel)
	if kh == 0 || kh%2 == 0 {
		return nil, fmt.Errorf("convolve: kernel height must be odd, got %d", kh)
	}
	kw := len(kernel[0])
	if kw == 0 || kw%2 == 0 {
		return nil, fmt.Errorf("convolve: kernel width must be odd, got %d", kw)
	}
	for i, row := range kernel {
		if len(row) != kw {
			return nil, fmt.Errorf("convolve: kernel row %d has %d entries, want %d", i, len(row), kw)
		}
	}

	in := imgutil.ToRGBA(src)
	b := in.Bounds()
	out := image.NewRGBA(b)
	ry, rx := kh/2, kw/2

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var sr, sg, sb float64
			for ky := 0; ky < kh; ky++ {
				for kx := 0; kx < kw; kx++ {
					sx := clamp(x+kx-rx, b.Min.X, b.Max.X-1)
					sy := clamp(y+ky-ry, b.Min.Y, b.Max.Y-1)
					o := in.PixOffset(sx, sy)
					w := kernel[ky][kx]
					sr += w * float64(in.Pix[o])
					sg += w * float64(in.Pix[o+1])
					sb += w * float64(in.Pix[o+2])
				}
			}
			o := out.PixOffset(x, y)
			out.Pix[o] = imgutil.ClampUint8(sr)
			out.Pix[o+1] = imgutil.ClampUint8(sg)
			out.Pix[o+2] = imgutil.ClampUint8(sb)
			out.Pix[o+3] = in.Pix[in.PixOffset(x, y)+3]
		}
	}
	return out, nil
}

// GaussianSmoothing convolves src with a normalized Gaussian kernel of the
// given standard deviation.
func GaussianSmoothing(src image.Image, sigma float64) (image.Image, error) {
	kernel, err := gaussianKernel(sigma)
	if err != nil {
		return nil, err
	}
	return Convolve(src, kernel)
}

// GaussianGradientMagnitude smooths src with the given sigma and returns
// the Sobel gradient magnitude of the result as a grayscale image.
func GaussianGradientMagnitude(src image.Image, sigma float64) (image.Image, error) {
	smoothed, err := GaussianSmoothing(src, sigma)
	if err != nil {
		return nil, err
	}
	gray := imgutil.ToGray(smoothed)
	b := gray.Bounds()
	out := image.NewGray(b)

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gx := sobelAt(gray, x, y, sobelX)
			gy := sobelAt(gray, x, y, sobelY)
			out.Pix[out.PixOffset(x, y)] = imgutil.ClampUint8(math.Hypot(gx, gy))
		}
	}
	return out, nil
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

func sobelAt(gray *image.Gray, x, y int, k [3][3]float64) float64 {
	b := gray.Bounds()
	var sum float64
	for ky := 0; ky < 3; ky++ {
		for kx := 0; kx < 3; kx++ {
			sx := clamp(x+kx-1, b.Min.X, b.Max.X-1)
			sy := clamp(y+ky-1, b.Min.Y, b.Max.Y-1)
			sum += k[ky][kx] * float64(gray.Pix[gray.PixOffset(sx, sy)])
		}
	}
	return sum
}

// gaussianKernel builds a normalized 2D kernel with radius ceil(3*sigma).
func gaussianKernel(sigma float64) ([][]float64, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("gaussianSmoothing: sigma must be positive, got %g", sigma)
	}
	radius := int(math.Ceil(3 * sigma))
	size := 2*radius + 1
	kernel := make([][]float64, size)
	var total float64
	for y := 0; y < size; y++ {
		kernel[y] = make([]float64, size)
		for x := 0; x < size; x++ {
			dx := float64(x - radius)
			dy := float64(y - radius)
			v := math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
			kernel[y][x] = v
			total += v
		}
	}
	for y := range kernel {
		for x := range kernel[y] {
			kernel[y][x] /= total
		}
	}
	return kernel, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
