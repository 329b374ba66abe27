package filters

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/vk/visiongo/internal/capability"
)

// Module implements the capability.Module interface for this package.
type Module struct{}

// Name returns the capability identifier.
func (Module) Name() string {
	return "filters"
}

// Load binds the filters capability.
func (Module) Load(ctx context.Context) (capability.Handle, error) {
	return capability.NewHandle("filters", "Spatial filtering (convolution, smoothing, gradients).", map[string]any{
		"convolve":                  capability.Operation(opConvolve),
		"gaussianSmoothing":         capability.Operation(opGaussianSmoothing),
		"gaussianGradientMagnitude": capability.Operation(opGaussianGradientMagnitude),
	}), nil
}

func opConvolve(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	spec, ok := args["kernel"]
	if !ok {
		return nil, fmt.Errorf("convolve: missing required arg %q", "kernel")
	}
	kernel, err := parseKernel(spec)
	if err != nil {
		return nil, err
	}
	return Convolve(src, kernel)
}

func opGaussianSmoothing(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	sigma, err := sigmaArg(args)
	if err != nil {
		return nil, err
	}
	return GaussianSmoothing(src, sigma)
}

func opGaussianGradientMagnitude(ctx context.Context, src image.Image, args map[string]string) (image.Image, error) {
	sigma, err := sigmaArg(args)
	if err != nil {
		return nil, err
	}
	return GaussianGradientMagnitude(src, sigma)
}

func sigmaArg(args map[string]string) (float64, error) {
	raw, ok := args["sigma"]
	if !ok {
		return 1.0, nil
	}
	sigma, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid sigma %q: %w", raw, err)
	}
	return sigma, nil
}

// parseKernel reads a kernel literal of the form "0,1,0;1,-4,1;0,1,0":
// rows separated by semicolons, entries by commas.
func parseKernel(spec string) ([][]float64, error) {
	rows := strings.Split(spec, ";")
	kernel := make([][]float64, 0, len(rows))
	for _, row := range rows {
		cells := strings.Split(row, ",")
		entries := make([]float64, 0, len(cells))
		for _, cell := range cells {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid kernel entry %q: %w", cell, err)
			}
			entries = append(entries, v)
		}
		kernel = append(kernel, entries)
	}
	return kernel, nil
}
