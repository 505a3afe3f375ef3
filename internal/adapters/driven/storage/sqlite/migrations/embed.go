// Package migrations embeds the audit database schema.
//
// Files are named NNN_name.up.sql and NNN_name.down.sql; NNN is the
// version recorded in schema_migrations once the up script has run.
package migrations

import "embed"

// FS holds the up and down scripts.
//
//go:embed *.up.sql *.down.sql
var FS embed.FS
