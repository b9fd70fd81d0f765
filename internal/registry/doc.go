// Package registry provides the central store for discovered modules.
//
// The Registry maps module names to their parsed descriptors and preserves
// the order in which descriptors were registered. That order is load-bearing:
// the cycle detector and the sorter traverse it so that repeated discovery
// runs over the same input produce identical reports.
//
// A registry is built once per discovery run and is read-only afterwards.
package registry
