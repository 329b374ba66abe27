package impex

import (
	"context"

	"github.com/vk/visiongo/internal/capability"
)

// Module implements the capability.Module interface for this package.
type Module struct{}

// Name returns the capability identifier.
func (Module) Name() string {
	return "impex"
}

// Load binds the impex capability.
func (Module) Load(ctx context.Context) (capability.Handle, error) {
	return capability.NewHandle("impex", "Image and array import/export.", map[string]any{
		"readImage":   capability.Reader(ReadImage),
		"writeImage":  capability.Writer(WriteImage),
		"listFormats": ListFormats,
	}), nil
}
