package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/visiongo/internal/capability"
	"github.com/vk/visiongo/internal/ctxlog"
	"github.com/vk/visiongo/internal/manifest"
	"github.com/vk/visiongo/internal/nativecore"
)

// Version is the toolkit release this binary was built from.
const Version = "0.4.0"

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *capability.Registry
	manifests  *manifest.Model
	core       *nativecore.Info
	coreErr    error
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a fully
// populated capability registry. Capability failures never abort
// construction; only malformed manifests and registry/manifest parity
// violations do (programmer or deployment errors, reported via panic and
// recovered in the CLI entrypoint).
func NewApp(outW io.Writer, appConfig *Config, modules ...capability.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	manifests, err := manifest.LoadDir(ctx, appConfig.ManifestsPath)
	if err != nil {
		panic(fmt.Errorf("failed to load capability manifests: %w", err))
	}

	if len(modules) == 0 {
		modules = coreCapabilities
	}
	names := make([]string, 0, len(modules))
	for _, mod := range modules {
		names = append(names, mod.Name())
	}

	probe := nativecore.NewProbe()
	core, coreErr := probe.Core(ctx)
	if coreErr != nil {
		logger.Warn("Native core failed to load; every capability will be deferred.",
			"error", coreErr)
	}

	importer := capability.NewBuiltinImporter(modules, manifests, core, probe)
	registry := capability.Load(ctx, names, coreErr == nil, importer)

	if err := capability.Validate(ctx, registry, manifests); err != nil {
		// Mismatch between compiled-in attribute tables and shipped
		// manifests is a programmer error.
		panic(err)
	}
	logger.Debug("Capability validation passed.")

	return &App{
		outW:      outW,
		logger:    logger,
		registry:  registry,
		manifests: manifests,
		core:      core,
		coreErr:   coreErr,
	}
}

// Registry returns the application's capability registry. This is primarily
// for testing.
func (a *App) Registry() *capability.Registry {
	return a.registry
}

// CoreAvailable reports whether the native core probe succeeded.
func (a *App) CoreAvailable() bool {
	return a.coreErr == nil
}
