package histogram

import (
	"context"
	"image"

	"github.com/vk/visiongo/internal/capability"
)

// Module implements the capability.Module interface for this package.
type Module struct{}

// Name returns the capability identifier.
func (Module) Name() string {
	return "histogram"
}

// Load binds the histogram capability.
func (Module) Load(ctx context.Context) (capability.Handle, error) {
	return capability.NewHandle("histogram", "Histograms and channel statistics.", map[string]any{
		"histogram": Histogram,
		"equalize":  capability.Operation(opEqualize),
	}), nil
}

func opEqualize(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	return Equalize(src)
}
