// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Descriptor, the format-agnostic representation of a
// single `module` block.
//
// Why distinguish between a Descriptor and a registry entry?
//
// A Descriptor is a pure parse result: one per `module` block, immutable
// after creation, carrying only what the author declared. Registration,
// dependency resolution, and ordering are later concerns layered on top of
// it. Keeping the parse result free of pipeline state means a Descriptor can
// be constructed in tests without touching the registry or the graph.
package manifest

import "github.com/zclconf/go-cty/cty"

// Descriptor is the format-agnostic representation of a module definition.
type Descriptor struct {
	// Name is the unique module name, taken from the block label.
	Name string
	// Description is an optional human-readable summary.
	Description string
	// DependsOn lists the names of modules that must be imported before
	// this one, in declaration order.
	DependsOn []string
	// Settings carries the module's opaque configuration values. The
	// discovery pipeline never interprets them; they are handed through to
	// whatever imports the module.
	Settings map[string]cty.Value
	// Source is the path of the file the block was parsed from.
	Source string
}
