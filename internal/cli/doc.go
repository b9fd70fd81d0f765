// Package cli translates command-line arguments and MODORDER_* environment
// variables into a validated app.Config.
package cli
