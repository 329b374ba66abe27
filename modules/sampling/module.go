package sampling

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
	return "sampling"
}

// Load binds the sampling capability.
func (Module) Load(ctx context.Context) (capability.Handle, error) {
	return capability.NewHandle("sampling", "Image re-sampling and interpolation.", map[string]any{
		"resize":        capability.Operation(opResize),
		"resampleImage": capability.Operation(opResampleImage),
	}), nil
}

func opResize(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	width, err := intArg(args, "width")
	if err != nil {
		return nil, err
	}
	height, err := intArg(args, "height")
	if err != nil {
		return nil, err
	}
	return Resize(src, width, height)
}

func opResampleImage(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	factor, err := intArg(args, "factor")
	if err != nil {
		return nil, err
	}
	return ResampleImage(src, factor)
}

func intArg(args map[string]string, name string) (int, error) {
	raw, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("missing required arg %q", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}
