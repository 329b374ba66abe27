package capability

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/vk/visiongo/internal/ctxlog"
	"github.com/vk/visiongo/internal/manifest"
)

// Validate performs a strict parity check between manifests and the bound
// attribute tables: every operation a manifest declares must exist on the
// handle, and every attribute a handle exports must be declared. Deferred
// entries are skipped; their tables never materialized.
func Validate(ctx context.Context, reg *Registry, manifests *manifest.Model) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range reg.Names() {
		entry, _ := reg.Lookup(name)
		if entry.State() != StateBound {
			continue
		}

		def, ok := manifests.Capabilities[name]
		if !ok {
			// The importer requires a manifest before binding, so a bound
			// entry without one can only come from a custom importer.
			logger.Warn("Bound capability has no manifest; skipping parity check.", "capability", name)
			continue
		}

		exported := make(map[string]struct{})
		for _, attr := range entry.handle.Attrs() {
			exported[attr] = struct{}{}
			if _, declared := def.Operations[attr]; !declared {
				errs = append(errs, fmt.Sprintf(
					"capability %q: exports attribute %q which is not declared in its manifest", name, attr))
			}
		}

		for opName := range def.Operations {
			if _, ok := exported[opName]; !ok {
				errs = append(errs, fmt.Sprintf(
					"capability %q: manifest declares operation %q which the module does not export", name, opName))
				continue
			}
			val, err := entry.handle.Attr(opName)
			if err != nil || val == nil {
				errs = append(errs, fmt.Sprintf(
					"capability %q: operation %q resolved to no value", name, opName))
				continue
			}
			if len(def.Operations[opName].Params) > 0 && reflect.TypeOf(val).Kind() != reflect.Func {
				errs = append(errs, fmt.Sprintf(
					"capability %q: operation %q declares params but the exported attribute is a %s, not a function",
					name, opName, reflect.TypeOf(val).Kind()))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("capability validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
