// Package migrations embeds the goose SQL migrations applied at startup.
package migrations

import "embed"

// Files holds the SQL migration scripts.
//
//go:embed *.sql
var Files embed.FS
