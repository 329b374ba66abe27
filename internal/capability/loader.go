package capability

import (
	"context"
	"fmt"

	"github.com/vk/visiongo/internal/ctxlog"
)

// Importer is the per-capability import mechanism. Given a capability name
// it returns either a bound attribute handle or an error describing why the
// capability cannot be used. "Capability missing" is an expected outcome and
// must be reported as an error return, never a panic.
type Importer interface {
	Import(ctx context.Context, name string) (Handle, error)
}

// ImporterFunc adapts a plain function to the Importer interface.
type ImporterFunc func(ctx context.Context, name string) (Handle, error)

// Import implements Importer for ImporterFunc.
func (f ImporterFunc) Import(ctx context.Context, name string) (Handle, error) {
	return f(ctx, name)
}

// Load attempts every requested capability name and returns the resulting
// Registry. The call never fails as a whole: each load failure is folded
// into a Deferred entry plus one warning, and the process continues.
//
// When coreAvailable is false no import is attempted at all; every entry is
// pre-marked Deferred with a core-failure reason, avoiding a cascade of
// redundant secondary errors.
func Load(ctx context.Context, names []string, coreAvailable bool, imp Importer) *Registry {
	logger := ctxlog.FromContext(ctx)
	reg := newRegistry(len(names))

	for _, name := range names {
		if _, dup := reg.caps[name]; dup {
			logger.Debug("Duplicate capability name requested, keeping first entry.", "capability", name)
			continue
		}

		if !coreAvailable {
			reg.install(newDeferred(name,
				fmt.Sprintf("capability %q not available because the native core failed to load", name)))
			loadsTotal.WithLabelValues(StateDeferred.String()).Inc()
			continue
		}

		handle, err := imp.Import(ctx, name)
		if err != nil {
			lerr := &LoadError{Capability: name, Err: err}
			logger.Warn("Capability failed to load, deferring to first use.",
				"capability", name, "error", err)
			loadFailures.WithLabelValues(name).Inc()
			loadsTotal.WithLabelValues(StateDeferred.String()).Inc()
			reg.install(newDeferred(name, lerr.Err.Error()))
			continue
		}

		reg.install(newBound(name, handle))
		loadsTotal.WithLabelValues(StateBound.String()).Inc()
		logger.Debug("Capability bound.", "capability", name)
	}

	logger.Info("Capability registry populated.",
		"requested", len(names), "entries", reg.Len())
	return reg
}
