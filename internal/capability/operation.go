package capability

import (
	"context"
	"image"
)

// Operation is the uniform shape of a dynamically accessible image
// transform. Arguments arrive as raw strings (typically from the CLI) and
// are parsed by the operation itself; manifests declare their expected
// types so callers can validate before invoking.
type Operation func(ctx context.Context, src image.Image, args map[string]string) (image.Image, error)

// Reader loads an image from a file path.
type Reader func(ctx context.Context, path string) (image.Image, error)

// Writer encodes an image to a file path, choosing the format from the
// path's extension.
type Writer func(ctx context.Context, img image.Image, path string) error
