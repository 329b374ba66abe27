// Package fourier provides the Fourier-transform capability. It binds only
// when the FFTW native library is present on the host; the manifests declare
// that requirement and the loader defers the capability otherwise.
package fourier

import (
	"fmt"
	"image"
	"math"
	"math/cmplx"

	"github.com/vk/visiongo/internal/imgutil"
)

// FourierTransform computes the 2D DFT of the grayscale rendition of src.
// The result is indexed [y][x].
func FourierTransform(src image.Image) ([][]complex128, error) {
	gray := imgutil.ToGray(src)
	b := gray.Bounds()
	h, w := b.Dy(), b.Dx()
	if h == 0 || w == 0 {
		return nil, fmt.Errorf("fourierTransform: empty image")
	}

	rows := make([][]complex128, h)
	for y := 0; y < h; y++ {
		row := make([]complex128, w)
		for x := 0; x < w; x++ {
			row[x] = complex(float64(gray.Pix[gray.PixOffset(b.Min.X+x, b.Min.Y+y)]), 0)
		}
		rows[y] = dft(row)
	}

	out := make([][]complex128, h)
	for y := range out {
		out[y] = make([]complex128, w)
	}
	col := make([]complex128, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			col[y] = rows[y][x]
		}
		t := dft(col)
		for y := 0; y < h; y++ {
			out[y][x] = t[y]
		}
	}
	return out, nil
}

// PowerSpectrum renders the centre-shifted, log-scaled magnitude of the DFT
// of src as a grayscale image.
func PowerSpectrum(src image.Image) (image.Image, error) {
	spectrum, err := FourierTransform(src)
	if err != nil {
		return nil, err
	}
	h := len(spectrum)
	w := len(spectrum[0])

	mags := make([][]float64, h)
	maxMag := 0.0
	for y := 0; y < h; y++ {
		mags[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			m := math.Log1p(cmplx.Abs(spectrum[y][x]))
			mags[y][x] = m
			if m > maxMag {
				maxMag = m
			}
		}
	}
	if maxMag == 0 {
		maxMag = 1
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Shift the zero-frequency bin to the image centre.
			sy := (y + h/2) % h
			sx := (x + w/2) % w
			out.Pix[out.PixOffset(sx, sy)] = imgutil.ClampUint8(mags[y][x] * 255.0 / maxMag)
		}
	}
	return out, nil
}

// dft is a direct O(n^2) transform; image dimensions stay small enough that
// an FFT is not worth the complexity for the pure-Go reference path.
func dft(in []complex128) []complex128 {
	n := len(in)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for t := 0; t < n; t++ {
			angle := -2 * math.Pi * float64(k) * float64(t) / float64(n)
			sum += in[t] * cmplx.Exp(complex(0, angle))
		}
		out[k] = sum
	}
	return out
}
