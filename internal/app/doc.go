// Package app wires the discovery pipeline into a runnable application:
// configuration, logging, the discovery run itself, audit persistence, the
// optional HTTP query server, and the fail-fast versus degraded-mode
// startup decision.
package app
