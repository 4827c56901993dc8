// Package migrations embeds the commission ledger schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
