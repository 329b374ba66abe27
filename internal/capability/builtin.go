package capability

import (
	"context"
	"fmt"

	"github.com/vk/visiongo/internal/ctxlog"
	"github.com/vk/visiongo/internal/manifest"
	"github.com/vk/visiongo/internal/nativecore"
)

// Module is the interface compiled-in capability packages implement.
type Module interface {
	// Name returns the capability identifier the module binds under.
	Name() string
	// Load builds the module's attribute handle. An error means the
	// capability stays deferred; it must describe what is missing.
	Load(ctx context.Context) (Handle, error)
}

// BuiltinImporter is the Importer over the compiled-in module set. Before a
// module's own Load hook runs, the importer checks the capability's manifest:
// the declared core-version constraint against the probed core, and every
// declared native-library requirement against the library probe.
type BuiltinImporter struct {
	modules   map[string]Module
	manifests *manifest.Model
	core      *nativecore.Info
	probe     *nativecore.Probe
}

// NewBuiltinImporter indexes the given modules by name. core may be nil;
// the loader never invokes an importer when the core is unavailable.
func NewBuiltinImporter(modules []Module, manifests *manifest.Model, core *nativecore.Info, probe *nativecore.Probe) *BuiltinImporter {
	byName := make(map[string]Module, len(modules))
	for _, mod := range modules {
		byName[mod.Name()] = mod
	}
	return &BuiltinImporter{
		modules:   byName,
		manifests: manifests,
		core:      core,
		probe:     probe,
	}
}

// Import implements the Importer interface.
func (b *BuiltinImporter) Import(ctx context.Context, name string) (Handle, error) {
	logger := ctxlog.FromContext(ctx)

	mod, ok := b.modules[name]
	if !ok {
		return nil, fmt.Errorf("no compiled-in module for capability %q", name)
	}

	def, ok := b.manifests.Capabilities[name]
	if !ok {
		return nil, fmt.Errorf("no manifest found for capability %q", name)
	}

	if def.CoreConstraint != nil && b.core != nil {
		if !def.CoreConstraint.Check(b.core.Version) {
			return nil, fmt.Errorf("requires core version %q, found %s",
				def.CoreVersion, b.core.Version)
		}
	}

	for _, lib := range def.Requires {
		path, err := b.probe.Library(lib)
		if err != nil {
			return nil, err
		}
		logger.Debug("Native requirement satisfied.", "capability", name, "library", lib, "path", path)
	}

	return mod.Load(ctx)
}
