package manifest

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/visiongo/internal/ctxlog"
	"github.com/vk/visiongo/internal/fsutil"
)

// LoadDir parses every .hcl manifest found recursively under path and
// translates it into the validated Model. Malformed HCL, duplicate
// capability or operation names, and invalid constraints are hard errors:
// a corrupt manifest set is a deployment defect, unlike a merely absent
// capability.
func LoadDir(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading capability manifests...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to walk manifests directory %s: %w", path, err)
	}
	if len(filePaths) == 0 {
		logger.Warn("No .hcl manifest files found in path", "path", path)
		return NewModel(), nil
	}

	model := NewModel()
	parser := hclparse.NewParser()

	for _, filePath := range filePaths {
		hclFile, diags := parser.ParseHCLFile(filePath)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", filePath, diags)
		}

		var file FileSchema
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &file); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", filePath, diags)
		}

		for _, capSchema := range file.Capabilities {
			def, err := translateCapability(capSchema)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", filePath, err)
			}
			if _, exists := model.Capabilities[def.Name]; exists {
				return nil, fmt.Errorf("manifest %s: capability %q declared more than once", filePath, def.Name)
			}
			model.Capabilities[def.Name] = def
			logger.Debug("Loaded capability manifest.", "capability", def.Name, "file", filePath)
		}
	}

	logger.Info("Capability manifests loaded.", "capabilities", len(model.Capabilities))
	return model, nil
}

func translateCapability(s *CapabilitySchema) (*Definition, error) {
	def := &Definition{
		Name:        s.Name,
		Description: s.Description,
		Requires:    s.Requires,
		CoreVersion: s.CoreVersion,
		Operations:  make(map[string]*Operation, len(s.Operations)),
	}

	if s.CoreVersion != "" {
		c, err := semver.NewConstraint(s.CoreVersion)
		if err != nil {
			return nil, fmt.Errorf("capability %q: invalid core_version %q: %w", s.Name, s.CoreVersion, err)
		}
		def.CoreConstraint = c
	}

	for _, opSchema := range s.Operations {
		if _, exists := def.Operations[opSchema.Name]; exists {
			return nil, fmt.Errorf("capability %q: operation %q declared more than once", s.Name, opSchema.Name)
		}
		op := &Operation{
			Name:        opSchema.Name,
			Description: opSchema.Description,
			Params:      make(map[string]*Param, len(opSchema.Params)),
		}
		for _, paramSchema := range opSchema.Params {
			if _, exists := op.Params[paramSchema.Name]; exists {
				return nil, fmt.Errorf("capability %q: operation %q: param %q declared more than once",
					s.Name, opSchema.Name, paramSchema.Name)
			}
			ty, err := translateParamType(paramSchema.Type)
			if err != nil {
				return nil, fmt.Errorf("capability %q: operation %q: param %q: %w",
					s.Name, opSchema.Name, paramSchema.Name, err)
			}
			op.Params[paramSchema.Name] = &Param{
				Name:        paramSchema.Name,
				Type:        ty,
				Description: paramSchema.Description,
			}
		}
		def.Operations[opSchema.Name] = op
	}

	return def, nil
}

func translateParamType(name string) (cty.Type, error) {
	if name == "" {
		return cty.String, nil
	}
	ty, ok := paramTypes[name]
	if !ok {
		return cty.NilType, fmt.Errorf("unsupported param type %q (want string, number or bool)", name)
	}
	return ty, nil
}
