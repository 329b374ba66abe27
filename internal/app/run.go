package app

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/visiongo/internal/capability"
	"github.com/vk/visiongo/internal/ctxlog"
)

// Run executes the selected mode: version, search, a dynamic operation, or
// the default capability report.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.MetricsPort > 0 {
		a.startMetricsServer(appConfig.MetricsPort)
		defer a.closeMetricsServer(ctx)
	}

	switch {
	case appConfig.ShowVersion:
		a.printVersion()
		return nil
	case appConfig.Search != "":
		a.runSearch(appConfig.Search)
		return nil
	case appConfig.Op != "":
		return a.runOp(ctx, appConfig)
	default:
		a.describe()
		return nil
	}
}

func (a *App) printVersion() {
	fmt.Fprintf(a.outW, "visiongo %s\n", Version)
	if a.core != nil {
		fmt.Fprintf(a.outW, "native core %s (%s)\n", a.core.Version, a.core.Path)
	} else {
		fmt.Fprintf(a.outW, "native core unavailable: %v\n", a.coreErr)
	}
}

// describe prints one line per capability with its binding state, mirroring
// the registry's load order.
func (a *App) describe() {
	if a.coreErr != nil {
		fmt.Fprintf(a.outW, "core         deferred  %v\n", a.coreErr)
	} else {
		fmt.Fprintf(a.outW, "core         bound     version %s\n", a.core.Version)
	}
	for _, name := range a.registry.Names() {
		entry, _ := a.registry.Lookup(name)
		if entry.State() == capability.StateBound {
			fmt.Fprintf(a.outW, "%-12s bound     %s\n", name, entry.Doc())
		} else {
			fmt.Fprintf(a.outW, "%-12s deferred  %s\n", name, entry.Reason())
		}
	}
}

func (a *App) runSearch(substr string) {
	hits := a.registry.Search(substr)
	if len(hits) == 0 {
		fmt.Fprintf(a.outW, "no attribute matching %q found\n", substr)
		return
	}
	for _, hit := range hits {
		fmt.Fprintln(a.outW, hit)
	}
}

// runOp resolves "capability.attribute" through the registry, validates the
// provided params against the manifest's declared types, and applies the
// operation to the input image.
func (a *App) runOp(ctx context.Context, appConfig *Config) error {
	capName, attr, ok := strings.Cut(appConfig.Op, ".")
	if !ok || capName == "" || attr == "" {
		return fmt.Errorf("invalid -op %q: want capability.attribute", appConfig.Op)
	}

	if err := a.checkParams(capName, attr, appConfig.Params); err != nil {
		return err
	}

	val, err := a.registry.Access(capName, attr)
	if err != nil {
		return err
	}
	op, ok := val.(capability.Operation)
	if !ok {
		return fmt.Errorf("attribute %s.%s is not an image operation", capName, attr)
	}

	src, err := a.readImage(ctx, appConfig.InPath)
	if err != nil {
		return err
	}

	a.logger.Info("Applying operation.", "op", appConfig.Op, "in", appConfig.InPath, "out", appConfig.OutPath)
	dst, err := op(ctx, src, appConfig.Params)
	if err != nil {
		return fmt.Errorf("operation %s failed: %w", appConfig.Op, err)
	}

	return a.writeImage(ctx, dst, appConfig.OutPath)
}

// checkParams validates CLI params against the manifest's declared types by
// round-tripping each raw string through a cty conversion. Unknown params
// and unconvertible values are user errors, caught before the operation
// runs.
func (a *App) checkParams(capName, attr string, params map[string]string) error {
	def, ok := a.manifests.Capabilities[capName]
	if !ok {
		return nil
	}
	opDef, ok := def.Operations[attr]
	if !ok {
		return nil
	}
	for name, raw := range params {
		paramDef, ok := opDef.Params[name]
		if !ok {
			return fmt.Errorf("operation %s.%s does not accept param %q", capName, attr, name)
		}
		if _, err := convert.Convert(cty.StringVal(raw), paramDef.Type); err != nil {
			return fmt.Errorf("param %q: %q is not a valid %s: %w",
				name, raw, paramDef.Type.FriendlyName(), err)
		}
	}
	return nil
}

// readImage and writeImage go through the impex capability rather than
// calling the package directly, so a broken I/O capability surfaces the
// same deferred error a library consumer would see.
func (a *App) readImage(ctx context.Context, path string) (image.Image, error) {
	val, err := a.registry.Access("impex", "readImage")
	if err != nil {
		return nil, err
	}
	read, ok := val.(capability.Reader)
	if !ok {
		return nil, fmt.Errorf("impex.readImage has unexpected type %T", val)
	}
	return read(ctx, path)
}

func (a *App) writeImage(ctx context.Context, img image.Image, path string) error {
	val, err := a.registry.Access("impex", "writeImage")
	if err != nil {
		return err
	}
	write, ok := val.(capability.Writer)
	if !ok {
		return fmt.Errorf("impex.writeImage has unexpected type %T", val)
	}
	return write(ctx, img, path)
}
