package fourier

import (
	"context"
	"image"

	"github.com/vk/visiongo/internal/capability"
)

// Module implements the capability.Module interface for this package.
type Module struct{}

// Name returns the capability identifier.
func (Module) Name() string {
	return "fourier"
}

// Load binds the fourier capability.
func (Module) Load(ctx context.Context) (capability.Handle, error) {
	return capability.NewHandle("fourier", "Fourier transform and Fourier-domain filters.", map[string]any{
		"fourierTransform": FourierTransform,
		"powerSpectrum":    capability.Operation(opPowerSpectrum),
	}), nil
}

func opPowerSpectrum(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	return PowerSpectrum(src)
}
