// Package depgraph is the "Ordering Layer" of the application. It takes the
// built registry, derives the directed dependency graph, detects circular
// dependency chains, and computes a deterministic import order for the
// subset of modules that can actually be imported.
//
// Everything here is sequential and runs exactly once per discovery run,
// after the scanner has collected every descriptor. Determinism is a
// contract: traversal follows registry insertion order and ties are broken
// alphabetically, so two runs over the same input produce identical cycle
// reports and identical orders.
package depgraph
