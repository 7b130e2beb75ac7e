// Package migrations embeds the semantic index schema.
package migrations

import "embed"

// FS holds the numbered up/down SQL files applied by the SQLite store.
//
//go:embed *.sql
var FS embed.FS
