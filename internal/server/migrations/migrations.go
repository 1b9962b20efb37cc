// Package migrations embeds the server PostgreSQL schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
