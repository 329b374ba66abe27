package capability

import "strings"

// Registry maps capability names to their load outcomes. It is populated
// exactly once by Load and read-only afterwards: every requested name has
// exactly one entry, either Bound or Deferred, never absent.
type Registry struct {
	caps  map[string]*Capability
	order []string
}

func newRegistry(size int) *Registry {
	return &Registry{caps: make(map[string]*Capability, size)}
}

func (r *Registry) install(c *Capability) {
	r.caps[c.name] = c
	r.order = append(r.order, c.name)
}

// Lookup returns the entry for a capability name.
func (r *Registry) Lookup(name string) (*Capability, bool) {
	c, ok := r.caps[name]
	return c, ok
}

// Names returns the capability names in load order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registry entries.
func (r *Registry) Len() int {
	return len(r.caps)
}

// Access resolves an attribute on a named capability: it forwards to the
// bound module, or fails with UnavailableError when the entry is deferred.
func (r *Registry) Access(name, attr string) (any, error) {
	c, ok := r.caps[name]
	if !ok {
		return nil, &UnknownCapabilityError{Name: name}
	}
	return c.Attr(attr)
}

// Search scans every bound capability's attribute table for names containing
// the given substring (case-insensitive) and returns the matches as
// "capability.attribute" strings in load order.
func (r *Registry) Search(substr string) []string {
	needle := strings.ToUpper(substr)
	var hits []string
	for _, name := range r.order {
		c := r.caps[name]
		if c.state != StateBound {
			continue
		}
		for _, attr := range c.handle.Attrs() {
			if strings.Contains(strings.ToUpper(attr), needle) {
				hits = append(hits, name+"."+attr)
			}
		}
	}
	return hits
}
