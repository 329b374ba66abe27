// Package manifest loads and validates the HCL capability manifests that
// describe each optional module: its operations, its native-library
// requirements, and the core version range it supports.
package manifest

import (
	"github.com/Masterminds/semver/v3"
	"github.com/zclconf/go-cty/cty"
)

// Param is the validated form of a declared operation argument.
type Param struct {
	Name        string
	Type        cty.Type
	Description string
}

// Operation is the validated form of a declared capability attribute.
type Operation struct {
	Name        string
	Description string
	Params      map[string]*Param
}

// Definition is the validated, format-agnostic form of one capability
// manifest.
type Definition struct {
	Name        string
	Description string
	Requires    []string
	CoreVersion string
	// CoreConstraint is nil when the manifest does not constrain the core
	// version.
	CoreConstraint *semver.Constraints
	Operations     map[string]*Operation
}

// Model holds every capability definition discovered under the manifests
// path, keyed by capability name.
type Model struct {
	Capabilities map[string]*Definition
}

// NewModel returns an empty manifest model.
func NewModel() *Model {
	return &Model{Capabilities: make(map[string]*Definition)}
}

// paramTypes maps the type names allowed in a `param` block to cty types.
var paramTypes = map[string]cty.Type{
	"string": cty.String,
	"number": cty.Number,
	"bool":   cty.Bool,
}
