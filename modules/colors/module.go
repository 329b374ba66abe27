package colors

import (
	"context"
	"fmt"
	"image"
	"strconv"

	"github.com/vk/visiongo/internal/capability"
)

// Module implements the capability.Module interface for this package.
type Module struct{}

// Name returns the capability identifier.
func (Module) Name() string {
	return "colors"
}

// Load binds the colors capability.
func (Module) Load(ctx context.Context) (capability.Handle, error) {
	return capability.NewHandle("colors", "Color space transformations.", map[string]any{
		"rgb2gray":           capability.Operation(opRGB2Gray),
		"linearRangeMapping": capability.Operation(opLinearRangeMapping),
		"brightness":         capability.Operation(opBrightness),
	}), nil
}

func opRGB2Gray(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	return RGB2Gray(src)
}

func opLinearRangeMapping(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	return LinearRangeMapping(src)
}

func opBrightness(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	raw, ok := args["offset"]
	if !ok {
		return nil, fmt.Errorf("brightness: missing required arg %q", "offset")
	}
	offset, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid offset %q: %w", raw, err)
	}
	return Brightness(src, offset)
}
