package manifest

// --- HCL manifest schemas ---

// ParamSchema declares a single named argument accepted by an operation.
type ParamSchema struct {
	Name        string `hcl:"name,label"`
	Type        string `hcl:"type,optional"`
	Description string `hcl:"description,optional"`
}

// OperationSchema declares one attribute exported by a capability.
type OperationSchema struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	Params      []*ParamSchema `hcl:"param,block"`
}

// CapabilitySchema is the `capability` block of a manifest file.
type CapabilitySchema struct {
	Name        string             `hcl:"name,label"`
	Description string             `hcl:"description,optional"`
	CoreVersion string             `hcl:"core_version,optional"`
	Requires    []string           `hcl:"requires,optional"`
	Operations  []*OperationSchema `hcl:"operation,block"`
}

// FileSchema is the top-level structure of a capability manifest file.
type FileSchema struct {
	Capabilities []*CapabilitySchema `hcl:"capability,block"`
}
