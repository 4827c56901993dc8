// Package migrations embeds the payment session schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
