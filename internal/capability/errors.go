package capability

import "fmt"

// LoadError reports that an individual capability failed to load while the
// native core was available. It is non-fatal and isolated to that capability.
type LoadError struct {
	Capability string
	Err        error
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	return fmt.Sprintf("capability %q failed to load: %v", e.Capability, e.Err)
}

// Unwrap exposes the underlying load failure.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnavailableError is raised lazily when code accesses an attribute of a
// Deferred capability. It carries the original load-failure context.
type UnavailableError struct {
	Capability string
	Attr       string
	Reason     string
}

// Error implements the error interface for UnavailableError.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s.%s: capability %q is not available: %s", e.Capability, e.Attr, e.Capability, e.Reason)
}

// AttrNotFoundError is an ordinary missing-attribute failure on a
// successfully bound capability. It is distinct from UnavailableError: the
// capability itself loaded fine, the caller just asked for an attribute it
// does not export.
type AttrNotFoundError struct {
	Capability string
	Attr       string
}

// Error implements the error interface for AttrNotFoundError.
func (e *AttrNotFoundError) Error() string {
	return fmt.Sprintf("capability %q has no attribute %q", e.Capability, e.Attr)
}

// UnknownCapabilityError reports an Access call against a name that was
// never part of the requested capability set.
type UnknownCapabilityError struct {
	Name string
}

// Error implements the error interface for UnknownCapabilityError.
func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown capability %q", e.Name)
}
