// Package impex provides the image import/export capability: reading and
// writing images by file extension.
package impex

import (
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// jpegQuality is used for every JPEG encode.
const jpegQuality = 90

// ReadImage decodes a PNG or JPEG file into an image.
func ReadImage(ctx context.Context, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("readImage: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("readImage: failed to decode %s: %w", path, err)
	}
	return img, nil
}

// WriteImage encodes an image to the given path, choosing the format from
// the extension. An unsupported extension fails before any file is created.
func WriteImage(ctx context.Context, img image.Image, path string) error {
	ext := strings.ToLower(filepath.Ext(path))

	var encode func(io.Writer, image.Image) error
	switch ext {
	case ".png":
		encode = png.Encode
	case ".jpg", ".jpeg":
		encode = func(w io.Writer, m image.Image) error {
			return jpeg.Encode(w, m, &jpeg.Options{Quality: jpegQuality})
		}
	default:
		return fmt.Errorf("writeImage: unsupported image format %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writeImage: %w", err)
	}
	defer f.Close()

	if err := encode(f, img); err != nil {
		return fmt.Errorf("writeImage: failed to encode %s: %w", path, err)
	}
	return nil
}

// ListFormats returns the supported format names.
func ListFormats() []string {
	return []string{"jpeg", "png"}
}
