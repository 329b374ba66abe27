package capability

import (
	"fmt"
	"sort"
	"strings"
)

// BindingState tags a Capability as either Bound or Deferred.
type BindingState int

const (
	// StateBound means the capability loaded and its attributes forward to
	// the real module.
	StateBound BindingState = iota
	// StateDeferred means the load attempt failed; attribute access raises
	// an UnavailableError carrying the stored failure reason.
	StateDeferred
)

// String implements fmt.Stringer for BindingState.
func (s BindingState) String() string {
	switch s {
	case StateBound:
		return "bound"
	case StateDeferred:
		return "deferred"
	default:
		return fmt.Sprintf("BindingState(%d)", int(s))
	}
}

// Handle is the attribute surface of a successfully bound capability module.
type Handle interface {
	// Name returns the capability identifier the handle was built for.
	Name() string
	// Doc returns the capability's one-line description.
	Doc() string
	// Attr resolves a named attribute, or fails with AttrNotFoundError.
	Attr(name string) (any, error)
	// Attrs lists the exported attribute names in sorted order.
	Attrs() []string
}

// Capability is one entry in the Registry: a tagged Bound|Deferred variant.
// Obtaining or passing around a deferred Capability never fails; only
// attribute access does.
type Capability struct {
	name          string
	state         BindingState
	handle        Handle
	failureReason string
}

func newBound(name string, h Handle) *Capability {
	return &Capability{name: name, state: StateBound, handle: h}
}

func newDeferred(name, reason string) *Capability {
	return &Capability{name: name, state: StateDeferred, failureReason: reason}
}

// Name returns the capability identifier.
func (c *Capability) Name() string {
	return c.name
}

// State returns the binding state tag.
func (c *Capability) State() BindingState {
	return c.state
}

// Reason returns the stored load-failure diagnostic. It is empty for a
// bound capability.
func (c *Capability) Reason() string {
	return c.failureReason
}

// Doc returns the bound module's description, or the failure diagnostic for
// a deferred entry.
func (c *Capability) Doc() string {
	if c.state == StateBound {
		return c.handle.Doc()
	}
	return c.failureReason
}

// Attr resolves an attribute on the capability. Introspection names (those
// with a "__" prefix, e.g. "__name__" and "__doc__") succeed on both states
// and return the entry's own metadata, so tooling can inspect a deferred
// placeholder without triggering the deferred error. A failed access mutates
// nothing; repeating it yields the same error content.
func (c *Capability) Attr(attr string) (any, error) {
	if strings.HasPrefix(attr, "__") {
		return c.introspect(attr), nil
	}
	if c.state == StateDeferred {
		deferredAccesses.WithLabelValues(c.name).Inc()
		return nil, &UnavailableError{Capability: c.name, Attr: attr, Reason: c.failureReason}
	}
	return c.handle.Attr(attr)
}

func (c *Capability) introspect(attr string) string {
	switch attr {
	case "__name__":
		return c.name
	case "__doc__":
		return c.Doc()
	}
	return ""
}

// staticHandle is the Handle implementation used by compiled-in modules: a
// fixed attribute table built once at load time.
type staticHandle struct {
	name  string
	doc   string
	attrs map[string]any
	names []string
}

// NewHandle builds a Handle from a static attribute table.
func NewHandle(name, doc string, attrs map[string]any) Handle {
	names := make([]string, 0, len(attrs))
	for n := range attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	return &staticHandle{name: name, doc: doc, attrs: attrs, names: names}
}

func (h *staticHandle) Name() string {
	return h.name
}

func (h *staticHandle) Doc() string {
	return h.doc
}

func (h *staticHandle) Attr(name string) (any, error) {
	v, ok := h.attrs[name]
	if !ok {
		return nil, &AttrNotFoundError{Capability: h.name, Attr: name}
	}
	return v, nil
}

func (h *staticHandle) Attrs() []string {
	return h.names
}
