// Package migrations embeds the reach SQLite schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
