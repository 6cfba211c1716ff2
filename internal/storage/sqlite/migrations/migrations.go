// Package migrations embeds the goose migrations for the SQLite vault.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
