// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes HCL module definition files into Descriptors.
package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modorder/internal/ctxlog"
)

// rootSchema defines the top-level structure of a definition file, expecting
// one or more 'module' blocks.
type rootSchema struct {
	Modules []*hclModule `hcl:"module,block"`
}

// hclModule represents a single 'module' block in the HCL file for decoding purposes.
type hclModule struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// moduleBodySchema defines the schema for the *body* of a 'module' block.
var moduleBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "description"},
		{Name: "depends_on"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "settings"},
	},
}

// ParseFile reads and decodes one HCL definition file into Descriptors.
func ParseFile(ctx context.Context, filePath string) ([]*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing module definitions from file.", "file_path", filePath)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, diags)
	}

	descriptors, diags := decodeFile(hclFile, filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filePath, diags)
	}

	logger.Debug("Module definitions parsed.", "file_path", filePath, "count", len(descriptors))
	return descriptors, nil
}

// decodeFile translates a parsed HCL file into Descriptors.
func decodeFile(hclFile *hcl.File, filePath string) ([]*Descriptor, hcl.Diagnostics) {
	var allDiags hcl.Diagnostics
	if hclFile == nil {
		allDiags = append(allDiags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "HCL file is nil",
		})
		return nil, allDiags
	}

	schema := &rootSchema{}
	diags := gohcl.DecodeBody(hclFile.Body, nil, schema)
	allDiags = append(allDiags, diags...)
	if diags.HasErrors() {
		return nil, allDiags
	}

	descriptors := make([]*Descriptor, 0, len(schema.Modules))
	for _, parsed := range schema.Modules {
		desc, descDiags := decodeModule(parsed, filePath)
		allDiags = append(allDiags, descDiags...)
		if descDiags.HasErrors() {
			continue
		}
		descriptors = append(descriptors, desc)
	}

	if allDiags.HasErrors() {
		return nil, allDiags
	}
	return descriptors, nil
}

// decodeModule translates one 'module' block into a Descriptor.
func decodeModule(parsed *hclModule, filePath string) (*Descriptor, hcl.Diagnostics) {
	bodyContent, diags := parsed.Body.Content(moduleBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	desc := &Descriptor{
		Name:   parsed.Name,
		Source: filePath,
	}

	if attr, ok := bodyContent.Attributes["description"]; ok {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if !valDiags.HasErrors() && val.Type() == cty.String && !val.IsNull() {
			desc.Description = val.AsString()
		}
	}

	deps, depDiags := parseDependsOn(bodyContent.Attributes)
	diags = append(diags, depDiags...)
	desc.DependsOn = deps

	for _, block := range bodyContent.Blocks {
		if block.Type != "settings" {
			continue
		}
		settings, settingsDiags := decodeSettings(block.Body)
		diags = append(diags, settingsDiags...)
		desc.Settings = settings
	}

	if diags.HasErrors() {
		return nil, diags
	}
	return desc, nil
}

// decodeSettings captures the free-form attributes of a 'settings' block as
// opaque cty values.
func decodeSettings(body hcl.Body) (map[string]cty.Value, hcl.Diagnostics) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	settings := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		settings[name] = val
	}
	return settings, diags
}
