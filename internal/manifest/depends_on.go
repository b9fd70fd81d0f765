// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file contains the specific parsing and validation logic for the
// `depends_on` attribute.
//
// Why a special parser for depends_on?
//
// Unlike simple value attributes, `depends_on` has a critical structural
// role: it defines the edges of the import dependency graph. This parser
// ensures the attribute's value is a list literal of quoted module names, as
// required for building the graph before any module is activated.
package manifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// parseDependsOn finds the "depends_on" attribute and returns the declared
// module names in declaration order. It validates that the expression is a
// list literal and that every element evaluates to a string.
func parseDependsOn(attrs hcl.Attributes) ([]string, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	dependsOnAttr, exists := attrs["depends_on"]
	if !exists {
		// The attribute is optional, so it's not an error if it's missing.
		return nil, diags
	}
	expr := dependsOnAttr.Expr

	// The expression must be a tuple constructor, i.e., a list literal like `[...]`.
	if syntaxExpr, ok := expr.(hclsyntax.Expression); ok {
		if _, isTuple := syntaxExpr.(*hclsyntax.TupleConsExpr); !isTuple {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid depends_on value",
				Detail:   "The 'depends_on' attribute must be a list of module names.",
				Subject:  expr.Range().Ptr(),
			})
			return nil, diags
		}
	}

	elemExprs, elemDiags := hcl.ExprList(expr)
	diags = append(diags, elemDiags...)
	if elemDiags.HasErrors() {
		return nil, diags
	}

	names := make([]string, 0, len(elemExprs))
	for _, elemExpr := range elemExprs {
		val, valDiags := elemExpr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		if val.Type() != cty.String || val.IsNull() {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid depends_on element",
				Detail:   "Each element of 'depends_on' must be a quoted module name.",
				Subject:  elemExpr.Range().Ptr(),
			})
			continue
		}
		names = append(names, val.AsString())
	}

	return names, diags
}
