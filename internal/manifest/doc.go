// Package manifest is the "Definition Layer" of the application. It parses
// HCL module definition files into format-agnostic Descriptors that the rest
// of the discovery pipeline consumes. Nothing outside this package touches
// HCL syntax for module definitions.
package manifest
