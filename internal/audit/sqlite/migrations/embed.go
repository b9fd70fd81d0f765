// Package migrations embeds the SQL migrations for the audit store.
package migrations

import "embed"

// FS holds every .sql migration file, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
