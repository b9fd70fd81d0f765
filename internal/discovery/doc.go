// Package discovery orchestrates one end-to-end discovery run:
// scan -> register -> graph -> validate -> sort.
//
// A run happens once at process start. Its outcome is a Snapshot: an
// immutable value holding the registry, the computed import order, and the
// validation report. The snapshot is published via a single assignment and
// every later query is a read over that frozen value, so concurrent readers
// never observe partial state.
package discovery
